package version

// Version can be overridden at build time with
// -ldflags "-X seqio/internal/version.Version=...".
var Version = "0.3.0"

// Package pipeline fans a per-file function out over several inputs.
//
// Each file gets its own stream; nothing is shared between workers. Results
// come back in input order regardless of completion order.
package pipeline

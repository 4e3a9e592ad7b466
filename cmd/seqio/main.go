// cmd/seqio/main.go
package main

import (
	"seqio/internal/app"
	"seqio/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}

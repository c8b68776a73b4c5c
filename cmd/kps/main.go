// Package main provides the kps CLI tool.
//
// Usage:
//
//	kps [flags] <command> [args]
//
// Commands:
//
//	decode   - Decode fixed-size binary records from a stream
//	inspect  - Fill a ring from a stream and render its storage
//	hash     - Hash the tail of a stream through a ring window
//	config   - Configuration management
//	version  - Show version information
//
// Configuration:
//
//	The CLI stores configuration in ~/.kps/kps/
//	Use 'kps config' commands to manage profiles.
package main

import (
	"os"

	"github.com/Foxcapades/kps/cmd/kps/commands"
	"github.com/Foxcapades/kps/pkg/cli"
)

func main() {
	if err := commands.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}

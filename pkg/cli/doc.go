// Package cli provides the shared pieces of the kps command-line tools.
//
// This package includes:
//   - Configuration management with named profiles, similar to kubectl contexts
//   - Output encoding (YAML, JSON, MessagePack, raw, hex)
//   - YAML/JSON document loading for layout files
//   - A lipgloss view of a byte ring's storage
//
// Configuration is stored in ~/.kps/<app>/config.yaml.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("kps")
//
//	// Named profile, current profile, or built-in defaults
//	p, err := cfg.ResolveProfile(name)
//
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli

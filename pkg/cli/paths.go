package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Paths locates a kps app's files under the user's home directory.
type Paths struct {
	// AppName is the application name
	AppName string

	// HomeDir is the user's home directory
	HomeDir string
}

// NewPaths creates a new Paths instance for the given app
func NewPaths(appName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{
		AppName: appName,
		HomeDir: home,
	}, nil
}

// BaseDir returns ~/.kps
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// AppDir returns ~/.kps/<app>
func (p *Paths) AppDir() string {
	return filepath.Join(p.BaseDir(), p.AppName)
}

// ConfigFile returns ~/.kps/<app>/config.yaml
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir(), DefaultConfigFile)
}

// LayoutDir returns ~/.kps/<app>/layouts, where named layout files live.
func (p *Paths) LayoutDir() string {
	return filepath.Join(p.AppDir(), "layouts")
}

// LayoutPath returns the file of a named layout. Names without an extension
// get ".yaml".
func (p *Paths) LayoutPath(name string) string {
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	return filepath.Join(p.LayoutDir(), name)
}

// ResolveLayout maps a "@name" reference to its layout file. Any other
// value is returned unchanged.
func (p *Paths) ResolveLayout(ref string) string {
	if name, ok := strings.CutPrefix(ref, "@"); ok {
		return p.LayoutPath(name)
	}
	return ref
}

// EnsureLayoutDir creates the layout directory if it doesn't exist
func (p *Paths) EnsureLayoutDir() error {
	return os.MkdirAll(p.LayoutDir(), 0755)
}

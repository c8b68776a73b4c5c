package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/Foxcapades/kps/pkg/buffer"
)

const (
	// DefaultBaseDir is the base configuration directory name
	DefaultBaseDir = ".kps"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
	// DefaultCapacity is the ring capacity used when a profile sets none
	DefaultCapacity = 4096
)

// ErrProfileNotFound is returned when a named profile does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// Config is the on-disk configuration of a kps command. It holds named
// profiles, one of which may be current.
type Config struct {
	// AppName is the application name (e.g., "kps")
	AppName string `yaml:"-"`

	// CurrentProfile is the name of the active profile
	CurrentProfile string `yaml:"current_profile,omitempty"`

	// Profiles maps profile name to its settings
	Profiles map[string]*Profile `yaml:"profiles,omitempty"`

	configPath string
}

// Profile carries defaults for reading and decoding a stream. Zero fields
// fall back to the built-in defaults.
type Profile struct {
	Name string `yaml:"name"`

	// Capacity is the ring capacity in bytes
	Capacity int `yaml:"capacity,omitempty"`

	// ByteOrder is "big" or "little"
	ByteOrder string `yaml:"byte_order,omitempty"`

	// Format is the output format (yaml, json, msgpack, raw)
	Format string `yaml:"format,omitempty"`

	// Compression is the source compression (none, auto, gzip, zstd, snappy)
	Compression string `yaml:"compression,omitempty"`

	// Layout is a layout expression or a path to a layout file
	Layout string `yaml:"layout,omitempty"`
}

// DefaultProfile returns the profile used when none is configured.
func DefaultProfile() *Profile {
	return &Profile{
		Name:        "default",
		Capacity:    DefaultCapacity,
		ByteOrder:   buffer.BigEndian.String(),
		Format:      string(FormatYAML),
		Compression: "auto",
	}
}

// LoadConfig loads or creates configuration for the specified app
func LoadConfig(appName string) (*Config, error) {
	return LoadConfigWithPath(appName, "")
}

// LoadConfigWithPath loads configuration from a custom path. A missing file
// is created empty.
func LoadConfigWithPath(appName, customPath string) (*Config, error) {
	configPath := customPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, DefaultBaseDir, appName, DefaultConfigFile)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		AppName:    appName,
		Profiles:   make(map[string]*Profile),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}
	for name, p := range cfg.Profiles {
		if p == nil {
			cfg.Profiles[name] = &Profile{Name: name}
			continue
		}
		p.Name = name
	}
	cfg.AppName = appName
	cfg.configPath = configPath

	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory path
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// AddProfile validates p, stores it under name and saves the config.
func (c *Config) AddProfile(name string, p *Profile) error {
	if name == "" {
		return errors.New("profile name is required")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", name, err)
	}
	p.Name = name
	c.Profiles[name] = p
	return c.Save()
}

// DeleteProfile removes a profile, clearing it as current if needed.
func (c *Config) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrProfileNotFound)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return c.Save()
}

// UseProfile sets the current profile
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrProfileNotFound)
	}
	c.CurrentProfile = name
	return c.Save()
}

// Profile returns a specific profile
func (c *Config) Profile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrProfileNotFound)
	}
	return p, nil
}

// ResolveProfile returns the named profile, or the current one if name is
// empty. With neither, it returns DefaultProfile. The result has every
// unset field filled from DefaultProfile.
func (c *Config) ResolveProfile(name string) (*Profile, error) {
	if name == "" {
		name = c.CurrentProfile
	}
	if name == "" {
		return DefaultProfile(), nil
	}
	p, err := c.Profile(name)
	if err != nil {
		return nil, err
	}
	return p.withDefaults(), nil
}

// ListProfiles returns all profile names in sorted order.
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks the profile's enumerated fields.
func (p *Profile) Validate() error {
	if p.Capacity < 0 {
		return fmt.Errorf("capacity %d: %w", p.Capacity, buffer.ErrInvalidArgument)
	}
	if _, err := buffer.ParseByteOrder(p.ByteOrder); err != nil {
		return err
	}
	switch OutputFormat(p.Format) {
	case "", FormatYAML, FormatJSON, FormatMsgpack, FormatRaw:
	default:
		return fmt.Errorf("unsupported output format: %s", p.Format)
	}
	return nil
}

// Order returns the profile's byte order.
func (p *Profile) Order() (buffer.ByteOrder, error) {
	return buffer.ParseByteOrder(p.ByteOrder)
}

func (p *Profile) withDefaults() *Profile {
	d := DefaultProfile()
	out := *p
	if out.Capacity == 0 {
		out.Capacity = d.Capacity
	}
	if out.ByteOrder == "" {
		out.ByteOrder = d.ByteOrder
	}
	if out.Format == "" {
		out.Format = d.Format
	}
	if out.Compression == "" {
		out.Compression = d.Compression
	}
	return &out
}

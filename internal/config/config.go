// Package config loads the render server settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	imagepkg "github.com/youruser/teeapp/internal/image"
	"github.com/youruser/teeapp/internal/layout"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Listen        string        `yaml:"listen"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	MaxFetchBytes int64         `yaml:"max_fetch_bytes"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	DefaultEyes   string        `yaml:"default_eyes"`
	DefaultFormat string        `yaml:"default_format"`
	QRSize        int           `yaml:"qr_size"`
	// LayoutFile optionally replaces the built-in tee layouts.
	LayoutFile string `yaml:"layout_file"`
	// PublicURL is the base used in share links; the request host is used when empty.
	PublicURL string `yaml:"public_url"`
}

func Default() *Config {
	return &Config{
		Listen:        ":8080",
		FetchTimeout:  12 * time.Second,
		MaxFetchBytes: imagepkg.DefaultMaxFetchBytes,
		MaxBodyBytes:  imagepkg.DefaultMaxFetchBytes,
		DefaultEyes:   "happy",
		DefaultFormat: "png",
		QRSize:        256,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	// an empty document keeps the defaults
	if err := yaml.NewDecoder(f).Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

func (c *Config) Validate() error {
	if _, err := layout.ParseEyes(c.DefaultEyes); err != nil {
		return err
	}
	f, err := imagepkg.ParseFormat(c.DefaultFormat)
	if err != nil {
		return err
	}
	if !f.CanEncode() {
		return fmt.Errorf("default_format %v cannot be encoded", f)
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch_timeout must be positive")
	}
	if c.MaxFetchBytes <= 0 {
		return errors.New("max_fetch_bytes must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be positive")
	}
	return nil
}

// Eyes returns the configured default eye expression.
func (c *Config) Eyes() layout.PartID {
	id, err := layout.ParseEyes(c.DefaultEyes)
	if err != nil {
		return layout.EyesHappy
	}
	return id
}

// Format returns the configured default output format.
func (c *Config) Format() imagepkg.Format {
	f, err := imagepkg.ParseFormat(c.DefaultFormat)
	if err != nil {
		return imagepkg.FormatPNG
	}
	return f
}

// Layouts returns the tee layouts, replaced by those in LayoutFile when set. A layout
// file may override only one of the two.
func (c *Config) Layouts() (*layout.UVLayout, *layout.SkinLayout, error) {
	uv, skin := layout.TeeUV, layout.TeeSkin
	if c.LayoutFile == "" {
		return uv, skin, nil
	}
	f, err := layout.LoadFile(c.LayoutFile)
	if err != nil {
		return nil, nil, err
	}
	if f.UV != nil {
		uv = f.UV
	}
	if f.Skin != nil {
		skin = f.Skin
	}
	return uv, skin, nil
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandelzoom/internal/camera"
	"github.com/san-kum/mandelzoom/internal/cplx"
	"github.com/san-kum/mandelzoom/internal/gradient"
)

const (
	DefaultWidth         = 400
	DefaultHeight        = 400
	DefaultMaxIterations = 100
	DefaultDamping       = 0.1
	DefaultZoomDamping   = 0.1
	DefaultWheelStep     = 0.24
	DefaultFrameRate     = 60
	DefaultZoom          = -1.5
	DefaultPalette       = "classic"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Width         int            `yaml:"width"`
	Height        int            `yaml:"height"`
	MaxIterations int            `yaml:"max_iterations"`
	Damping       float64        `yaml:"damping"`
	ZoomDamping   float64        `yaml:"zoom_damping"`
	WheelStep     float64        `yaml:"wheel_step"`
	FrameRate     int            `yaml:"fps"`
	Workers       int            `yaml:"workers"`
	Camera        CameraConfig   `yaml:"camera"`
	Gradient      GradientConfig `yaml:"gradient"`
}

type CameraConfig struct {
	Real float64 `yaml:"real"`
	Imag float64 `yaml:"imag"`
	Zoom float64 `yaml:"zoom"`
}

type GradientConfig struct {
	Period  float64      `yaml:"period"`
	Initial string       `yaml:"initial"`
	Stops   []StopConfig `yaml:"stops"`
	Final   string       `yaml:"final"`
	Falloff float64      `yaml:"falloff"`
	Cache   int          `yaml:"cache"`
}

type StopConfig struct {
	Offset float64 `yaml:"offset"`
	Color  string  `yaml:"color"`
}

func DefaultConfig() *Config {
	pal, _ := GetPalette(DefaultPalette)
	return &Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		MaxIterations: DefaultMaxIterations,
		Damping:       DefaultDamping,
		ZoomDamping:   DefaultZoomDamping,
		WheelStep:     DefaultWheelStep,
		FrameRate:     DefaultFrameRate,
		Camera:        CameraConfig{Zoom: DefaultZoom},
		Gradient:      pal,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and that the gradient can be built.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: size %dx%d: %w", c.Width, c.Height, ErrInvalid)
	case c.MaxIterations < 0:
		return fmt.Errorf("config: max_iterations %d: %w", c.MaxIterations, ErrInvalid)
	case !(c.Damping > 0 && c.Damping <= 1):
		return fmt.Errorf("config: damping %g outside (0, 1]: %w", c.Damping, ErrInvalid)
	case !(c.ZoomDamping > 0 && c.ZoomDamping <= 1):
		return fmt.Errorf("config: zoom_damping %g outside (0, 1]: %w", c.ZoomDamping, ErrInvalid)
	case c.FrameRate <= 0:
		return fmt.Errorf("config: fps %d: %w", c.FrameRate, ErrInvalid)
	case c.Workers < 0:
		return fmt.Errorf("config: workers %d: %w", c.Workers, ErrInvalid)
	}
	if _, err := c.BuildGradient(); err != nil {
		return err
	}
	return nil
}

// BuildGradient parses the gradient section.
func (c *Config) BuildGradient() (*gradient.Gradient, error) {
	gc := c.Gradient

	initial, err := gradient.ParseHex(gc.Initial)
	if err != nil {
		return nil, fmt.Errorf("config: gradient initial %q: %w", gc.Initial, err)
	}
	final, err := gradient.ParseHex(gc.Final)
	if err != nil {
		return nil, fmt.Errorf("config: gradient final %q: %w", gc.Final, err)
	}

	stops := make([]gradient.Stop, len(gc.Stops))
	for i, s := range gc.Stops {
		col, err := gradient.ParseHex(s.Color)
		if err != nil {
			return nil, fmt.Errorf("config: gradient stop %d color %q: %w", i, s.Color, err)
		}
		stops[i] = gradient.Stop{Offset: s.Offset, Color: col}
	}

	g, err := gradient.New(gc.Period, initial, stops, final, gc.Falloff)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if gc.Cache > 0 {
		return g.Cached(gc.Cache)
	}
	return g, nil
}

// InitialCamera returns the configured camera at rest.
func (c *Config) InitialCamera() camera.Camera {
	return camera.New(cplx.New(c.Camera.Real, c.Camera.Imag), c.Camera.Zoom)
}

// UsePalette replaces the gradient section with a named palette, keeping
// the configured cache size.
func (c *Config) UsePalette(name string) error {
	pal, ok := GetPalette(name)
	if !ok {
		return fmt.Errorf("unknown palette: %s (available: %v)", name, ListPalettes())
	}
	pal.Cache = c.Gradient.Cache
	c.Gradient = pal
	return nil
}

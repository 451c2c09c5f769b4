package tilegrid

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default tile size, matching the classic 40x40 grid.
const defaultTileSize = 40

// Config describes a tile map. Every field can be changed later through the
// TileMap accessors or Configure.
type Config struct {
	Name       string     `yaml:"name"`
	TileWidth  float64    `yaml:"tile_width"`
	TileHeight float64    `yaml:"tile_height"`
	Projection Projection `yaml:"projection"`
	Anchor     TileAnchor `yaml:"anchor"`

	// GridDrawCount is the number of grid cells (per axis) drawn by the debug
	// grid overlay, starting at tile (0,0). Zero disables the grid.
	GridDrawCount int `yaml:"grid_draw_count"`
	// HighlightOccupied fills every occupied cell.
	HighlightOccupied bool `yaml:"highlight_occupied"`
	// DrawPointer fills the cell under the pointer.
	DrawPointer bool `yaml:"draw_pointer"`

	// Overlay colors. Zero values fall back to white, red and violet.
	GridColor     Color `yaml:"grid_color"`
	OccupiedColor Color `yaml:"occupied_color"`
	PointerColor  Color `yaml:"pointer_color"`
}

// DefaultConfig returns a 40x40 orthogonal, center-anchored configuration with
// all overlays disabled.
func DefaultConfig() Config {
	return Config{
		TileWidth:     defaultTileSize,
		TileHeight:    defaultTileSize,
		GridColor:     ColorWhite,
		OccupiedColor: defaultOccupiedColor,
		PointerColor:  defaultPointerColor,
	}
}

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if err := c.transformer().Validate(); err != nil {
		return err
	}
	if c.GridDrawCount < 0 {
		return fmt.Errorf("tilegrid: grid draw count %d: %w", c.GridDrawCount, ErrInvalidGridCount)
	}
	return nil
}

func (c Config) transformer() Transformer {
	return Transformer{
		TileWidth:  c.TileWidth,
		TileHeight: c.TileHeight,
		Projection: c.Projection,
		Anchor:     c.Anchor,
	}
}

// withDefaults fills unset colors.
func (c Config) withDefaults() Config {
	if c.GridColor == (Color{}) {
		c.GridColor = ColorWhite
	}
	if c.OccupiedColor == (Color{}) {
		c.OccupiedColor = defaultOccupiedColor
	}
	if c.PointerColor == (Color{}) {
		c.PointerColor = defaultPointerColor
	}
	return c
}

// ParseConfig decodes a YAML tile map configuration. Fields absent from data
// keep their DefaultConfig values. The result is validated.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tilegrid: parse config: %w", err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("tilegrid: load config: %w", err)
	}
	return ParseConfig(data)
}

// MustLoadConfig loads the configuration and panics on error.
func MustLoadConfig(filename string) Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// UnmarshalYAML accepts "orthogonal" or "isometric".
func (p *Projection) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(value.Value) {
	case "", "orthogonal", "ortho", "2d":
		*p = ProjectionOrthogonal
	case "isometric", "iso":
		*p = ProjectionIsometric
	default:
		return fmt.Errorf("tilegrid: line %d: %q: %w", value.Line, value.Value, ErrInvalidProjection)
	}
	return nil
}

// UnmarshalYAML accepts "center" or "corner".
func (a *TileAnchor) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(value.Value) {
	case "", "center", "centre":
		*a = AnchorCenter
	case "corner":
		*a = AnchorCorner
	default:
		return fmt.Errorf("tilegrid: line %d: %q: %w", value.Line, value.Value, ErrInvalidAnchor)
	}
	return nil
}

// UnmarshalYAML accepts "#rrggbb" or "#rrggbbaa" hex strings.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	clr, err := ParseHexColor(value.Value)
	if err != nil {
		return fmt.Errorf("tilegrid: line %d: %w", value.Line, err)
	}
	*c = clr
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

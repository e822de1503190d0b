package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"digital-stamp-go/internal/models"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

type ColorConfig struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

type PaletteConfig struct {
	Colors []ColorConfig `yaml:"colors"`
}

// Palette maps lower-case color names to RGB values.
type Palette map[string]models.Color

// DefaultPalette is used when no palette file is present.
func DefaultPalette() Palette {
	return Palette{
		"blue":  models.ColorBlue,
		"red":   {R: 0xff},
		"green": {G: 0x80},
		"black": {},
		"gold":  {R: 0xff, G: 0xd7},
	}
}

// LoadPalette reads a YAML palette and layers it over the defaults. A
// missing file is not an error.
func LoadPalette(paletteFile string) (Palette, error) {
	palette := DefaultPalette()
	if paletteFile == "" {
		return palette, nil
	}

	var palettePath string
	if filepath.IsAbs(paletteFile) {
		palettePath = paletteFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		palettePath = filepath.Join(wd, paletteFile)
	}

	data, err := os.ReadFile(palettePath)
	if errors.Is(err, fs.ErrNotExist) {
		zap.L().Debug("No palette file, using defaults", zap.String("file", paletteFile))
		return palette, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", paletteFile, err)
	}

	var config PaletteConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", paletteFile, err)
	}

	for i, entry := range config.Colors {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("color at index %d missing name", i)
		}
		c, err := models.ParseColor(entry.Hex)
		if err != nil {
			return nil, fmt.Errorf("color %s at index %d: %w", entry.Name, i, err)
		}
		palette[strings.ToLower(strings.TrimSpace(entry.Name))] = c
	}

	return palette, nil
}

// Resolve accepts a palette name or a hex value.
func (p Palette) Resolve(s string) (models.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := p[strings.ToLower(s)]; ok {
		return c, nil
	}
	c, err := models.ParseColor(s)
	if err != nil {
		return models.Color{}, models.NewValidationError("color", fmt.Sprintf("unknown color %q (use #RRGGBB or one of: %s)", s, strings.Join(p.Names(), ", ")))
	}
	return c, nil
}

// Names returns the palette names sorted.
func (p Palette) Names() []string {
	names := lo.Keys(p)
	sort.Strings(names)
	return names
}

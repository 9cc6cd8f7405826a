package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/orgverse/internal/collection"
	"github.com/atomicstack/orgverse/internal/scene"
	"github.com/atomicstack/orgverse/internal/visualizer"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// layoutFile is the on-disk shape of a --layout file:
//
//	visualizers:
//	  issues:
//	    page_size: 5
//	    spacing: 2
//	    axis: x
//	    centered: true
//	    rotation: {axis: y, degrees: 90}
//	    slide_duration: 400ms
//	    slide_distance: 15
//	    anchor: {x: 0, y: 0, z: 3}
type layoutFile struct {
	Visualizers map[string]layoutEntry `yaml:"visualizers"`
}

type layoutEntry struct {
	PageSize      *int           `yaml:"page_size"`
	Spacing       *float64       `yaml:"spacing"`
	Axis          *string        `yaml:"axis"`
	Rotation      *rotationEntry `yaml:"rotation"`
	Centered      *bool          `yaml:"centered"`
	SlideDuration *time.Duration `yaml:"slide_duration"`
	SlideDistance *float64       `yaml:"slide_distance"`
	Anchor        *vecEntry      `yaml:"anchor"`
}

type rotationEntry struct {
	Axis    string  `yaml:"axis"`
	Degrees float64 `yaml:"degrees"`
}

type vecEntry struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// LoadLayout reads a layout file and returns options for every kind. Kinds
// the file leaves out, and fields an entry leaves out, keep their defaults.
func LoadLayout(path string) (map[string]visualizer.Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	layouts, err := ParseLayout(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layouts, nil
}

// ParseLayout decodes a layout document. Unknown keys and unknown kinds are
// rejected.
func ParseLayout(r io.Reader) (map[string]visualizer.Options, error) {
	var file layoutFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	out := collection.Defaults()
	for id, entry := range file.Visualizers {
		base, ok := out[id]
		if !ok {
			return nil, fmt.Errorf("unknown visualizer %q", id)
		}
		opts, err := entry.apply(base)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		out[id] = opts
	}
	return out, nil
}

func (e layoutEntry) apply(opts visualizer.Options) (visualizer.Options, error) {
	if e.PageSize != nil {
		opts.PageSize = *e.PageSize
	}
	if e.Spacing != nil {
		opts.Spacing = *e.Spacing
	}
	if e.Axis != nil {
		axis, err := scene.ParseAxis(*e.Axis)
		if err != nil {
			return opts, err
		}
		opts.Axis = axis
	}
	if e.Rotation != nil {
		axis, err := scene.ParseAxis(e.Rotation.Axis)
		if err != nil {
			return opts, fmt.Errorf("rotation: %w", err)
		}
		opts.Rotation = scene.RotationAbout(axis, e.Rotation.Degrees)
	}
	if e.Centered != nil {
		opts.Centered = *e.Centered
	}
	if e.SlideDuration != nil {
		opts.SlideDuration = *e.SlideDuration
	}
	if e.SlideDistance != nil {
		opts.SlideDistance = *e.SlideDistance
	}
	if e.Anchor != nil {
		opts.Anchor = r3.Vec{X: e.Anchor.X, Y: e.Anchor.Y, Z: e.Anchor.Z}
	}
	return opts, opts.Validate()
}

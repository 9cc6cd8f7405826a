package visualizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/orgverse/internal/layout"
	"github.com/atomicstack/orgverse/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultPageSize      = 5
	DefaultSpacing       = 1.0
	DefaultSlideDuration = 500 * time.Millisecond
	DefaultSlideDistance = 15.0
)

// Options configures one visualizer. Kinds differ only in these values.
type Options struct {
	PageSize      int
	Spacing       float64
	Axis          scene.Axis
	Rotation      r3.Rotation
	Centered      bool
	SlideDuration time.Duration
	SlideDistance float64
	Anchor        r3.Vec
}

// DefaultOptions returns five records per page laid along X one unit apart.
func DefaultOptions() Options {
	return Options{
		PageSize:      DefaultPageSize,
		Spacing:       DefaultSpacing,
		Axis:          scene.AxisX,
		Rotation:      scene.Identity,
		SlideDuration: DefaultSlideDuration,
		SlideDistance: DefaultSlideDistance,
	}
}

// Validate reports every invalid field at once.
func (o Options) Validate() error {
	var errs []error
	if o.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be at least 1, got %d", o.PageSize))
	}
	if o.Spacing < 0 {
		errs = append(errs, fmt.Errorf("spacing must not be negative, got %g", o.Spacing))
	}
	if !o.Axis.IsValid() {
		errs = append(errs, fmt.Errorf("invalid axis %s", o.Axis))
	}
	if o.SlideDuration < 0 {
		errs = append(errs, fmt.Errorf("slide duration must not be negative, got %s", o.SlideDuration))
	}
	if o.SlideDistance < 0 {
		errs = append(errs, fmt.Errorf("slide distance must not be negative, got %g", o.SlideDistance))
	}
	return errors.Join(errs...)
}

// ExitOffset moves a proxy backwards along the layout axis.
func (o Options) ExitOffset() r3.Vec {
	return r3.Scale(-o.SlideDistance, o.Axis.Unit())
}

// EntryOffset is the staging offset, opposite the exit direction.
func (o Options) EntryOffset() r3.Vec {
	return r3.Scale(o.SlideDistance, o.Axis.Unit())
}

func (o Options) policy() layout.Policy {
	rot := o.Rotation
	if rot == (r3.Rotation{}) {
		rot = scene.Identity
	}
	return layout.Policy{
		Anchor:   o.Anchor,
		Spacing:  o.Spacing,
		Axis:     o.Axis,
		Rotation: rot,
		Centered: o.Centered,
	}
}

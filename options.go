package charts

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	DefaultWidth    = 800.0
	DefaultCapacity = 20
	DefaultInterval = 30 * time.Millisecond
	DefaultTicks    = 5
)

var DefaultPadding = Padding{
	Top:    20,
	Right:  20,
	Bottom: 20,
	Left:   30,
}

type Kind string

const (
	KindLine    Kind = "line"
	KindArea    Kind = "area"
	KindScatter Kind = "scatter"
	KindBar     Kind = "bar"
)

func (k Kind) valid() bool {
	switch k {
	case KindLine, KindArea, KindScatter, KindBar:
		return true
	default:
		return false
	}
}

type ScaleKind string

const (
	ScaleLinear  ScaleKind = "linear"
	ScaleTime    ScaleKind = "time"
	ScaleOrdinal ScaleKind = "ordinal"
)

type AxisOptions struct {
	Kind  ScaleKind `yaml:"type"`
	Key   string    `yaml:"key"`
	Label string    `yaml:"label"`
	Ticks int       `yaml:"ticks"`
	// Format is the layout of time keys, used to parse and to display them.
	Format string `yaml:"format"`
}

type Options struct {
	Title    string        `yaml:"title"`
	Kind     Kind          `yaml:"kind"`
	Width    float64       `yaml:"width"`
	Height   float64       `yaml:"height"`
	Padding  Padding       `yaml:"padding"`
	Capacity int           `yaml:"capacity"`
	Interval time.Duration `yaml:"interval"`

	X     AxisOptions `yaml:"x"`
	Y     AxisOptions `yaml:"y"`
	Style Style       `yaml:"style"`
}

func DefaultOptions() Options {
	return Options{
		Kind:     KindLine,
		Width:    DefaultWidth,
		Padding:  DefaultPadding,
		Capacity: DefaultCapacity,
		Interval: DefaultInterval,
		X: AxisOptions{
			Kind:  ScaleLinear,
			Ticks: DefaultTicks,
		},
		Y: AxisOptions{
			Kind:  ScaleLinear,
			Ticks: DefaultTicks,
		},
		Style: DefaultStyle(),
	}
}

// LoadOptions reads YAML options on top of DefaultOptions and validates
// them.
func LoadOptions(r io.Reader) (Options, error) {
	opts, err := DecodeOptions(r)
	if err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// DecodeOptions is LoadOptions without validation, for callers that complete
// the options afterwards.
func DecodeOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	buf, err := io.ReadAll(r)
	if err != nil {
		return opts, errors.Wrap(err, "fail to read options")
	}
	if err := yaml.UnmarshalStrict(buf, &opts); err != nil {
		return opts, errors.Wrap(err, "fail to decode options")
	}
	return opts, nil
}

func (o Options) Validate() error {
	if o.X.Key == "" {
		return invalidConfig("x.key", "missing field selector")
	}
	if o.Y.Key == "" {
		return invalidConfig("y.key", "missing field selector")
	}
	if o.Width <= 0 {
		return invalidConfig("width", "must be greater than zero")
	}
	if o.Height < 0 {
		return invalidConfig("height", "can not be negative")
	}
	if o.Capacity < 0 {
		return invalidConfig("capacity", "can not be negative")
	}
	if !o.Kind.valid() {
		return invalidConfig("kind", string(o.Kind)+": unknown chart kind")
	}
	if o.DrawingWidth() <= 0 || o.DrawingHeight() <= 0 {
		return invalidConfig("padding", "no space left for drawing")
	}
	return o.Style.validate()
}

// ChartHeight is the height of the chart, derived from its width when not
// set.
func (o Options) ChartHeight() float64 {
	if o.Height > 0 {
		return o.Height
	}
	return o.Width * 0.2
}

func (o Options) DrawingWidth() float64 {
	return o.Width - o.Padding.Horizontal()
}

func (o Options) DrawingHeight() float64 {
	return o.ChartHeight() - o.Padding.Vertical()
}

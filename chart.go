package charts

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/midbel/svg"
	log "github.com/sirupsen/logrus"
)

type Padding struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Chart holds the series of a chart and everything needed to lay them out.
// Its methods are safe for concurrent use.
type Chart[T Key] struct {
	mu      sync.Mutex
	options Options
	buffer  *Buffer[T]
	xscale  Scaler[T]
	yscale  Scaler[float64]
	palette Palette
	watcher *Watcher
	logger  log.FieldLogger
}

// New creates a chart. When a width source is given, the chart takes its
// width from it if the options have none, and starts polling it. Close must
// then be called to stop polling.
func New[T Key](opts Options, options ...Option) (*Chart[T], error) {
	set := makeSettings(options)
	if set.width != nil && opts.Width == 0 {
		opts.Width = set.width()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.Height = opts.ChartHeight()
	c := &Chart[T]{
		options: opts,
		buffer:  NewBuffer[T](opts.Capacity, options...),
		palette: opts.Style.getPalette(),
		logger:  set.logger,
	}
	if err := c.rescale(); err != nil {
		return nil, err
	}
	if set.width != nil {
		c.watcher = &Watcher{
			Interval: opts.Interval,
			Width:    set.width,
			OnResize: c.Resize,
		}
		c.watcher.Start(context.Background())
	}
	return c, nil
}

func (c *Chart[T]) Close() error {
	if c.watcher != nil {
		c.watcher.Stop()
	}
	return nil
}

func (c *Chart[T]) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options
}

// Add registers a new empty serie. A serie without color gets one from the
// palette.
func (c *Chart[T]) Add(id, color string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if color == "" {
		color = c.palette.At(c.buffer.Len())
	}
	return c.buffer.AddSerie(id, color)
}

func (c *Chart[T]) Remove(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(ids) == 0 {
		return
	}
	c.buffer.RemoveSeries(ids...)
	c.updateScales()
}

func (c *Chart[T]) Update(points map[string][]Point[T, float64]) Update[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := c.buffer.Merge(points)
	c.updateScales()
	return u
}

func (c *Chart[T]) Series() []Serie[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.Series()
}

func (c *Chart[T]) Extent() (Extent[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.Extent()
}

func (c *Chart[T]) Locate(x T) []Nearest[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.Locate(x)
}

// LocateAt is Locate for a horizontal position given in pixels from the left
// edge of the drawing area.
func (c *Chart[T]) LocateAt(px float64) []Nearest[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.Locate(c.xscale.Invert(px))
}

// Resize changes the width of the chart and its x range. The height is fixed
// when the chart is created. A width leaving no room for drawing is ignored.
func (c *Chart[T]) Resize(width float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width-c.options.Padding.Horizontal() <= 0 {
		c.logger.WithField("width", width).Warn("width too small, resize ignored")
		return
	}
	c.options.Width = width
	c.xscale = c.xscale.replace(NewRange(0, c.options.DrawingWidth()))
	c.logger.WithField("width", width).Debug("chart resized")
}

func (c *Chart[T]) Render(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.render(w, nil)
}

// RenderAt renders the chart with the tooltip of the points nearest to x.
func (c *Chart[T]) RenderAt(w io.Writer, x T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.render(w, &x)
}

func (c *Chart[T]) render(w io.Writer, at *T) error {
	el := svg.NewSVG(svg.WithDimension(c.options.Width, c.options.ChartHeight()))
	el.OmitProlog = true

	if c.options.Title != "" {
		el.Append(c.drawTitle())
	}
	el.Append(c.drawAxis())

	var (
		area  = c.getArea()
		count = c.buffer.Len()
	)
	for i, s := range c.buffer.series {
		rdr := rendererFor[T](c.options.Kind, c.options.Style, i, count)
		area.Append(rdr.Render(s, c.xscale, c.yscale))
	}
	if at != nil {
		list := c.buffer.Locate(*at)
		tip := drawTooltip(list, c.xscale.Scale(*at), c.options.DrawingHeight(), c.xscale, c.yscale)
		area.Append(tip)
	}
	el.Append(area.AsElement())

	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

func (c *Chart[T]) updateScales() {
	if err := c.rescale(); err != nil {
		c.logger.WithError(err).Warn("fail to update scales")
	}
}

func (c *Chart[T]) rescale() error {
	xs, err := keyScaler(c.options.X.Kind, c.buffer.series, NewRange(0, c.options.DrawingWidth()))
	if err != nil {
		return err
	}
	ys, err := valueScaler(c.options.Y.Kind, c.buffer.series, NewRange(c.options.DrawingHeight(), 0))
	if err != nil {
		return err
	}
	c.xscale, c.yscale = xs, ys
	return nil
}

func (c *Chart[T]) getArea() svg.Group {
	var g svg.Group
	g.Class = append(g.Class, "area")
	g.Transform = svg.Translate(c.options.Padding.Left, c.options.Padding.Top)
	return g
}

func (c *Chart[T]) drawTitle() svg.Element {
	txt := svg.NewText(c.options.Title)
	txt.Font = svg.NewFont(FontSize)
	txt.Pos = svg.NewPos(c.options.Padding.Left+c.options.DrawingWidth()/2, c.options.Padding.Top/2)
	txt.Anchor = "middle"
	txt.Baseline = "middle"
	return txt.AsElement()
}

func (c *Chart[T]) drawAxis() svg.Element {
	var (
		g      = svg.NewGroup(svg.WithID("axis"))
		width  = c.options.DrawingWidth()
		height = c.options.DrawingHeight()
		pad    = c.options.Padding
	)
	bottom := Axis[T]{
		Label:          c.options.X.Label,
		Orientation:    OrientBottom,
		Ticks:          c.options.X.Ticks,
		Scaler:         c.xscale,
		Format:         keyFormat[T](c.options.X.Format),
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	g.Append(bottom.Render(width, height, pad.Left, c.options.ChartHeight()-pad.Bottom))

	left := Axis[float64]{
		Label:          c.options.Y.Label,
		Orientation:    OrientLeft,
		Ticks:          c.options.Y.Ticks,
		Scaler:         c.yscale,
		WithInnerTicks: true,
		WithLabelTicks: true,
		WithOuterTicks: true,
	}
	g.Append(left.Render(height, width, pad.Left, pad.Top))
	return g.AsElement()
}

func keyFormat[T Key](layout string) func(T) string {
	if layout == "" {
		return nil
	}
	return func(v T) string {
		if t, ok := any(v).(time.Time); ok {
			return t.Format(layout)
		}
		return formatValue(v)
	}
}

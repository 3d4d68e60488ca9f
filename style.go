package charts

import (
	"github.com/midbel/svg"
)

type LineStyle string

const (
	StyleStraight LineStyle = "straight"
	StyleDotted   LineStyle = "dotted"
	StyleDashed   LineStyle = "dashed"
)

// Style holds the drawing settings shared by the series of a chart.
type Style struct {
	Line struct {
		Style LineStyle `yaml:"style"`
		Width float64   `yaml:"width"`
	} `yaml:"line"`
	Fill struct {
		Opacity float64 `yaml:"opacity"`
	} `yaml:"fill"`
	// Point is the marker drawn on each point: circle, square or diamond.
	Point string  `yaml:"point"`
	Size  float64 `yaml:"size"`
	// Text puts the id of a serie before its first point or after its last.
	Text    string   `yaml:"text"`
	Palette []string `yaml:"palette"`
}

func DefaultStyle() Style {
	var s Style
	s.Line.Style = StyleStraight
	s.Line.Width = 1
	s.Fill.Opacity = 0.5
	s.Size = DefaultSize
	return s
}

func (s Style) validate() error {
	switch s.Line.Style {
	case "", StyleStraight, StyleDotted, StyleDashed:
	default:
		return invalidConfig("style.line.style", string(s.Line.Style)+": unknown line style")
	}
	if s.Line.Width < 0 {
		return invalidConfig("style.line.width", "can not be negative")
	}
	if s.Fill.Opacity < 0 || s.Fill.Opacity > 1 {
		return invalidConfig("style.fill.opacity", "must be between 0 and 1")
	}
	if _, ok := markers[s.Point]; !ok && s.Point != "" && s.Point != "none" {
		return invalidConfig("style.point", s.Point+": unknown marker")
	}
	if s.Size < 0 {
		return invalidConfig("style.size", "can not be negative")
	}
	switch s.Text {
	case "", "none", "before", "after":
	default:
		return invalidConfig("style.text", s.Text+": unknown position")
	}
	return nil
}

func (s Style) getPointFunc() PointFunc {
	return markers[s.Point]
}

func (s Style) getSize() float64 {
	if s.Size <= 0 {
		return DefaultSize
	}
	return s.Size
}

func (s Style) getTextPosition() TextPosition {
	switch s.Text {
	case "before":
		return TextBefore
	case "after":
		return TextAfter
	default:
		return 0
	}
}

func (s Style) getPalette() Palette {
	if len(s.Palette) == 0 {
		return Category10
	}
	return Palette(s.Palette)
}

func (s Style) getStroke() svg.Stroke {
	width := s.Line.Width
	if width <= 0 {
		width = 1
	}
	sk := svg.NewStroke(currentColor, width)
	switch s.Line.Style {
	case StyleDotted:
		sk.DashArray(2)
	case StyleDashed:
		sk.DashArray(8)
	default:
	}
	return sk
}

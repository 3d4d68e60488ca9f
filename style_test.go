package charts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStyle(t *testing.T) {
	const doc = `
x:
  key: x
y:
  key: y
style:
  line:
    style: dashed
    width: 2
  point: square
  text: after
  palette: ["#123456", "#654321"]
`
	opts, err := LoadOptions(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, StyleDashed, opts.Style.Line.Style)
	assert.Equal(t, 2.0, opts.Style.Line.Width)
	assert.Equal(t, 0.5, opts.Style.Fill.Opacity)
	assert.Equal(t, TextAfter, opts.Style.getTextPosition())
	assert.NotNil(t, opts.Style.getPointFunc())
	assert.Equal(t, "#654321", opts.Style.getPalette().At(1))
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		Field  string
		Change func(*Style)
	}{
		{
			Field:  "style.line.style",
			Change: func(s *Style) { s.Line.Style = "wavy" },
		},
		{
			Field:  "style.line.width",
			Change: func(s *Style) { s.Line.Width = -1 },
		},
		{
			Field:  "style.fill.opacity",
			Change: func(s *Style) { s.Fill.Opacity = 2 },
		},
		{
			Field:  "style.point",
			Change: func(s *Style) { s.Point = "star" },
		},
		{
			Field:  "style.text",
			Change: func(s *Style) { s.Text = "middle" },
		},
		{
			Field:  "style.size",
			Change: func(s *Style) { s.Size = -2 },
		},
	}
	for _, tt := range tests {
		opts := chartOptions(KindLine)
		tt.Change(&opts.Style)
		err := opts.Validate()
		var cfg *InvalidConfigurationError
		require.True(t, errors.As(err, &cfg), tt.Field)
		assert.Equal(t, tt.Field, cfg.Field)
	}
	assert.NoError(t, DefaultStyle().validate())
}

func TestRenderStyle(t *testing.T) {
	opts := chartOptions(KindLine)
	opts.Style.Point = "circle"
	opts.Style.Text = "after"
	opts.Style.Palette = []string{"#123456"}

	c, err := New[float64](opts)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Add("cpu", ""))
	c.Update(map[string][]Point[float64, float64]{
		"cpu": {NumberPoint(1, 10), NumberPoint(2, 20)},
	})

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	str := buf.String()
	assert.Contains(t, str, "#123456")
	assert.Contains(t, str, "<circle")
	assert.GreaterOrEqual(t, strings.Count(str, "cpu"), 2)
}

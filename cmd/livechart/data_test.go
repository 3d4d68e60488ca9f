package main

import (
	"os"
	"path/filepath"
	"testing"

	charts "github.com/midbel/livecharts"
	"github.com/midbel/livecharts/load"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func testOptions(capacity int) charts.Options {
	opts := charts.DefaultOptions()
	opts.Capacity = capacity
	opts.X.Key = "x"
	opts.Y.Key = "y"
	return opts
}

func TestReadDataset(t *testing.T) {
	var (
		cpu = writeFile(t, "cpu.csv", "x,y\n1,10\n2,20\n3,30\n")
		mem = writeFile(t, "mem.json", `[{"x": 1, "y": 5}, {"x": 2, "y": 6}]`)
	)
	dec, err := load.NewDecoder[float64](testOptions(0))
	require.NoError(t, err)

	ds, err := readDataset([]string{cpu, mem}, dec, load.Limit{Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu", "mem"}, ds.ids)
	assert.Len(t, ds.groups["cpu"], 2)
	assert.Len(t, ds.groups["mem"], 1)

	_, err = readDataset([]string{filepath.Join(t.TempDir(), "missing.csv")}, dec, load.Limit{})
	assert.Error(t, err)
}

func TestReadDatasetGrouped(t *testing.T) {
	file := writeFile(t, "hosts.csv", "host,x,y\nweb,1,1\ndb,1,2\nweb,2,3\n")
	dec, err := load.NewDecoder[float64](testOptions(0))
	require.NoError(t, err)
	dec.Serie = "host"

	ds, err := readDataset([]string{file}, dec, load.Limit{})
	require.NoError(t, err)
	assert.Equal(t, []string{"web", "db"}, ds.ids)
	assert.Len(t, ds.groups["web"], 2)
}

func TestFeed(t *testing.T) {
	ds := &dataset[float64]{
		ids: []string{"a", "b"},
		groups: map[string][]charts.Point[float64, float64]{
			"a": {
				charts.NumberPoint(1, 1),
				charts.NumberPoint(2, 2),
				charts.NumberPoint(3, 3),
				charts.NumberPoint(4, 4),
				charts.NumberPoint(5, 5),
			},
			"b": {
				charts.NumberPoint(4, 1),
				charts.NumberPoint(5, 2),
			},
		},
	}
	tests := []struct {
		Batch int
		Cap   int
		Want  map[string][]float64
	}{
		{
			Batch: 0,
			Cap:   0,
			Want: map[string][]float64{
				"a": {1, 2, 3, 4, 5},
				"b": {4, 5},
			},
		},
		{
			Batch: 2,
			Cap:   3,
			Want: map[string][]float64{
				"a": {4, 5},
				"b": {4, 5},
			},
		},
	}
	for _, tt := range tests {
		ch, err := charts.New[float64](testOptions(tt.Cap))
		require.NoError(t, err)
		require.NoError(t, feed(ch, ds, tt.Batch))

		got := make(map[string][]float64)
		for _, s := range ch.Series() {
			xs := []float64{}
			for _, pt := range s.Points {
				xs = append(xs, pt.X)
			}
			got[s.ID] = xs
		}
		assert.Equal(t, tt.Want, got, "batch %d, capacity %d", tt.Batch, tt.Cap)
		require.NoError(t, ch.Close())
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		Format string
		File   string
		Want   string
		Err    bool
	}{
		{File: "", Want: formatSVG},
		{File: "chart.PNG", Want: formatPNG},
		{File: "chart.svg", Want: formatSVG},
		{Format: "png", File: "chart.svg", Want: formatPNG},
		{File: "chart.pdf", Err: true},
	}
	for _, tt := range tests {
		got, err := outputFormat(tt.Format, tt.File)
		if tt.Err {
			assert.Error(t, err, tt.File)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.Want, got)
	}
}

func TestChartFlags(t *testing.T) {
	config := writeFile(t, "chart.yml", "title: from config\nkind: area\nx:\n  key: when\n  type: time\ny:\n  key: value\n")

	var (
		flags chartFlags
		set   = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)
	flags.register(set)
	require.NoError(t, set.Parse([]string{"--config", config, "--kind", "bar", "--y-key", "value * 2"}))

	opts, err := flags.options(set)
	require.NoError(t, err)
	assert.Equal(t, "from config", opts.Title)
	assert.Equal(t, charts.KindBar, opts.Kind)
	assert.Equal(t, charts.ScaleTime, opts.X.Kind)
	assert.Equal(t, "when", opts.X.Key)
	assert.Equal(t, "value * 2", opts.Y.Key)
	assert.True(t, isTime(opts))

	set = pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.register(set)
	require.NoError(t, set.Parse([]string{"--x-key", "x"}))
	_, err = flags.options(set)
	var cfg *charts.InvalidConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Equal(t, "y.key", cfg.Field)
}

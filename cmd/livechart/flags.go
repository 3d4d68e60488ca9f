package main

import (
	"os"
	"path/filepath"
	"strings"

	charts "github.com/midbel/livecharts"
	"github.com/midbel/livecharts/load"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// chartFlags are the flags shared by the commands that build a chart. Flags
// set on the command line take precedence over the config file.
type chartFlags struct {
	Config     string
	Title      string
	Kind       string
	Width      float64
	Height     float64
	Capacity   int
	XKey       string
	XType      string
	XFormat    string
	YKey       string
	SerieField string
	Offset     int
	Count      int
}

const (
	flagConfigName     = "config"
	flagTitleName      = "title"
	flagKindName       = "kind"
	flagWidthName      = "width"
	flagHeightName     = "height"
	flagCapacityName   = "capacity"
	flagXKeyName       = "x-key"
	flagXTypeName      = "x-type"
	flagXFormatName    = "x-format"
	flagYKeyName       = "y-key"
	flagSerieFieldName = "serie-field"
	flagOffsetName     = "offset"
	flagCountName      = "count"
)

func (f *chartFlags) register(set *pflag.FlagSet) {
	set.StringVarP(&f.Config, flagConfigName, "c", "", "chart options file (yaml)")
	set.StringVar(&f.Title, flagTitleName, "", "chart title")
	set.StringVar(&f.Kind, flagKindName, string(charts.KindLine), "chart kind: line, area, scatter or bar")
	set.Float64Var(&f.Width, flagWidthName, charts.DefaultWidth, "chart width")
	set.Float64Var(&f.Height, flagHeightName, 0, "chart height, a fifth of the width when not set")
	set.IntVar(&f.Capacity, flagCapacityName, charts.DefaultCapacity, "maximum number of points kept per serie, 0 for no limit")
	set.StringVar(&f.XKey, flagXKeyName, "", "expression selecting the x value of a record")
	set.StringVar(&f.XType, flagXTypeName, string(charts.ScaleLinear), "x scale: linear, time or ordinal")
	set.StringVar(&f.XFormat, flagXFormatName, "", "layout of time values")
	set.StringVar(&f.YKey, flagYKeyName, "", "expression selecting the y value of a record")
	set.StringVar(&f.SerieField, flagSerieFieldName, "", "field giving the serie of a record, one serie per file when not set")
	set.IntVar(&f.Offset, flagOffsetName, 0, "records to skip in each file, negative counts from the end")
	set.IntVar(&f.Count, flagCountName, 0, "records to read in each file, 0 for all")
}

func (f *chartFlags) options(set *pflag.FlagSet) (charts.Options, error) {
	opts := charts.DefaultOptions()
	if f.Config != "" {
		r, err := os.Open(f.Config)
		if err != nil {
			return opts, err
		}
		defer r.Close()
		if opts, err = charts.DecodeOptions(r); err != nil {
			return opts, errors.Wrapf(err, "%s", f.Config)
		}
	}
	if f.Config == "" || set.Changed(flagTitleName) {
		opts.Title = f.Title
	}
	if f.Config == "" || set.Changed(flagKindName) {
		opts.Kind = charts.Kind(f.Kind)
	}
	if f.Config == "" || set.Changed(flagWidthName) {
		opts.Width = f.Width
	}
	if f.Config == "" || set.Changed(flagHeightName) {
		opts.Height = f.Height
	}
	if f.Config == "" || set.Changed(flagCapacityName) {
		opts.Capacity = f.Capacity
	}
	if f.Config == "" || set.Changed(flagXTypeName) {
		opts.X.Kind = charts.ScaleKind(f.XType)
	}
	if set.Changed(flagXKeyName) {
		opts.X.Key = f.XKey
	}
	if set.Changed(flagXFormatName) {
		opts.X.Format = f.XFormat
	}
	if set.Changed(flagYKeyName) {
		opts.Y.Key = f.YKey
	}
	return opts, opts.Validate()
}

func (f *chartFlags) limit() load.Limit {
	return load.Limit{
		Offset: f.Offset,
		Count:  f.Count,
	}
}

// isTime tells whether the x-keys of a chart are times.
func isTime(opts charts.Options) bool {
	return opts.X.Kind == charts.ScaleTime
}

// openOutput returns the writer of the given file, stdout when empty.
func openOutput(file string) (*os.File, error) {
	if file == "" || file == "-" {
		return os.Stdout, nil
	}
	return os.Create(file)
}

func closeOutput(f *os.File) error {
	if f == os.Stdout {
		return nil
	}
	return f.Close()
}

func serieName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func requireFiles(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.Errorf("%s: at least one input file is required", cmd.Name())
	}
	return nil
}

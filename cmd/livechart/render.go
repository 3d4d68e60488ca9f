package main

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	charts "github.com/midbel/livecharts"
	"github.com/midbel/livecharts/export"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

var renderCmd = &cobra.Command{
	Use:     "render [flags] file...",
	Short:   "Render the series read from files to a svg or png image",
	PreRunE: requireFiles,
	RunE:    runRender,
}

var (
	renderFlags  chartFlags
	flagBatch    int
	flagOutput   string
	flagFormat   string
	flagRenderAt string
)

const (
	flagBatchName    = "batch"
	flagOutputName   = "output"
	flagFormatName   = "format"
	flagRenderAtName = "at"
)

func init() {
	renderFlags.register(renderCmd.Flags())
	renderCmd.Flags().IntVar(&flagBatch, flagBatchName, 0, "points sent per serie and per update, 0 to send all points at once")
	renderCmd.Flags().StringVarP(&flagOutput, flagOutputName, "o", "", "output file, stdout when not set")
	renderCmd.Flags().StringVar(&flagFormat, flagFormatName, "", "output format: svg or png, guessed from the output file when not set")
	renderCmd.Flags().StringVar(&flagRenderAt, flagRenderAtName, "", "x value where to draw the nearest points of each serie")
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := renderFlags.options(cmd.Flags())
	if err != nil {
		return err
	}
	format, err := outputFormat(flagFormat, flagOutput)
	if err != nil {
		return err
	}
	w, err := openOutput(flagOutput)
	if err != nil {
		return err
	}
	defer closeOutput(w)

	if isTime(opts) {
		err = render[time.Time](w, opts, format, args)
	} else {
		err = render[float64](w, opts, format, args)
	}
	if err == nil {
		log.WithFields(log.Fields{
			"format": format,
			"output": flagOutput,
		}).Debug("chart rendered")
	}
	return err
}

func render[T charts.Key](w io.Writer, opts charts.Options, format string, files []string) error {
	ch, err := buildChart[T](opts, &renderFlags, flagBatch, files)
	if err != nil {
		return err
	}
	defer ch.Close()

	if format == formatPNG {
		return export.PNG(w, opts, ch.Series())
	}
	if flagRenderAt == "" {
		return ch.Render(w)
	}
	x, err := parseKey[T](opts, flagRenderAt)
	if err != nil {
		return err
	}
	return ch.RenderAt(w, x)
}

func outputFormat(format, file string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
	}
	switch format {
	case "", formatSVG:
		return formatSVG, nil
	case formatPNG:
		return formatPNG, nil
	default:
		return "", errors.Errorf("%s: unsupported output format", format)
	}
}

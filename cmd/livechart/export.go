package main

import (
	"io"
	"time"

	charts "github.com/midbel/livecharts"
	"github.com/midbel/livecharts/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export [flags] file...",
	Short:   "Write the series kept by the chart window to a xlsx workbook",
	PreRunE: requireFiles,
	RunE:    runExport,
}

var (
	exportFlags      chartFlags
	flagExportBatch  int
	flagExportOutput string
)

func init() {
	exportFlags.register(exportCmd.Flags())
	exportCmd.Flags().IntVar(&flagExportBatch, flagBatchName, 0, "points sent per serie and per update, 0 to send all points at once")
	exportCmd.Flags().StringVarP(&flagExportOutput, flagOutputName, "o", "", "output file, stdout when not set")
}

func runExport(cmd *cobra.Command, args []string) error {
	opts, err := exportFlags.options(cmd.Flags())
	if err != nil {
		return err
	}
	w, err := openOutput(flagExportOutput)
	if err != nil {
		return err
	}
	defer closeOutput(w)

	if isTime(opts) {
		return exportSeries[time.Time](w, opts, args)
	}
	return exportSeries[float64](w, opts, args)
}

func exportSeries[T charts.Key](w io.Writer, opts charts.Options, files []string) error {
	ch, err := buildChart[T](opts, &exportFlags, flagExportBatch, files)
	if err != nil {
		return err
	}
	defer ch.Close()
	return export.Excel(w, ch.Series())
}

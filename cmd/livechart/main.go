package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const appName = "livechart"

var examples = []string{
	fmt.Sprintf("  Render a line chart of a csv file:       $ %s render --x-key time --x-type time --y-key value data.csv", appName),
	fmt.Sprintf("  Slide a window of 50 points over a file: $ %s render --capacity 50 --batch 10 -o chart.svg data.csv", appName),
	fmt.Sprintf("  Export the last window to a workbook:    $ %s export --config chart.yml -o data.xlsx data.csv", appName),
	fmt.Sprintf("  Serve a live chart:                      $ %s serve --config chart.yml --addr :8080", appName),
}

var rootCmd = &cobra.Command{
	Use:               appName,
	Short:             appName,
	Long:              fmt.Sprintf("%s draws line, area, scatter and bar charts over series of points kept in a sliding window.", appName),
	Example:           strings.Join(examples, "\n"),
	PersistentPreRunE: initializeApplication,
	SilenceUsage:      true,
}

var flagDebug bool

const flagDebugName = "debug"

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.PersistentFlags().BoolVar(&flagDebug, flagDebugName, false, "enable debug logging")
}

func initializeApplication(cmd *cobra.Command, args []string) error {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:          true,
		DisableLevelTruncation: true,
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	if flagDebug {
		log.SetLevel(log.DebugLevel)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

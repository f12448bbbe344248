// Command encdump decodes S-57 ENC cells and prints their contents.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jamessvoss/XNautical-sub006/pkg/s57"
)

var (
	verbose     bool
	classFilter []string
)

func newParser() s57.Parser {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return s57.NewParserWithLogger(logger)
}

func parseChart(path string) (*s57.Chart, error) {
	opts := s57.DefaultParseOptions()
	opts.ObjectClassFilter = classFilter
	chart, err := newParser().ParseWithOptions(path, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return chart, nil
}

var rootCmd = &cobra.Command{
	Use:           "encdump",
	Short:         "Inspect S-57 Electronic Navigational Chart cells",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var infoCmd = &cobra.Command{
	Use:   "info <cell.000>",
	Short: "Print dataset identification and parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chart, err := parseChart(args[0])
		if err != nil {
			return err
		}

		b := chart.Bounds()
		fmt.Printf("Dataset:      %s\n", chart.DatasetName())
		fmt.Printf("Edition:      %s (update %s)\n", chart.Edition(), chart.UpdateNumber())
		fmt.Printf("Issued:       %s\n", chart.IssueDate())
		fmt.Printf("S-57 edition: %s\n", chart.S57Edition())
		fmt.Printf("Agency:       %d\n", chart.ProducingAgency())
		fmt.Printf("Purpose:      %s\n", chart.ExchangePurpose())
		fmt.Printf("Usage band:   %s\n", chart.UsageBand())
		fmt.Printf("Scale:        1:%d\n", chart.CompilationScale())
		fmt.Printf("Bounds:       %.5f,%.5f to %.5f,%.5f (lon,lat)\n",
			b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
		fmt.Printf("Features:     %d\n", chart.FeatureCount())
		if n := len(chart.Diagnostics()); n > 0 {
			fmt.Printf("Diagnostics:  %d (rerun with --verbose for details)\n", n)
			for _, d := range chart.Diagnostics() {
				if verbose {
					fmt.Printf("  record %d (id %d) %s: %s\n", d.Record, d.RecordID, d.Tag, d.Message)
				}
			}
		}
		return nil
	},
}

var featuresCmd = &cobra.Command{
	Use:   "features <cell.000>",
	Short: "Summarize features by object class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chart, err := parseChart(args[0])
		if err != nil {
			return err
		}

		counts := make(map[string]int)
		for _, f := range chart.Features() {
			counts[f.ObjectClass()]++
		}
		classes := make([]string, 0, len(counts))
		for class := range counts {
			classes = append(classes, class)
		}
		sort.Strings(classes)

		for _, class := range classes {
			fmt.Printf("%-8s %6d\n", class, counts[class])
		}
		fmt.Printf("total    %6d\n", chart.FeatureCount())
		return nil
	},
}

var geometryCmd = &cobra.Command{
	Use:   "geometry <cell.000> <feature-id>",
	Short: "Print a feature's resolved geometry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chart, err := parseChart(args[0])
		if err != nil {
			return err
		}

		var id int64
		if _, err := fmt.Sscanf(args[1], "%d", &id); err != nil {
			return fmt.Errorf("feature id %q is not a number", args[1])
		}

		for _, f := range chart.Features() {
			if f.ID() != id {
				continue
			}
			geom := f.Geometry()
			fmt.Printf("Feature %d %s (%s)\n", f.ID(), f.ObjectClass(), geom.Type)
			printPositions("point", geom.Points)
			printPositions("line", geom.Line)
			for i, ring := range geom.Exterior {
				printPositions(fmt.Sprintf("exterior[%d]", i), ring)
			}
			for i, ring := range geom.Interiors {
				printPositions(fmt.Sprintf("interior[%d]", i), ring)
			}
			for code, value := range f.Attributes() {
				fmt.Printf("  attr %d = %s\n", code, value)
			}
			return nil
		}
		return fmt.Errorf("feature %d not found in %s", id, chart.DatasetName())
	},
}

func printPositions(label string, positions []s57.Position) {
	for _, p := range positions {
		if p.HasDepth {
			fmt.Printf("  %s %.7f,%.7f depth %.1f\n", label, p.Lon, p.Lat, p.Depth)
		} else {
			fmt.Printf("  %s %.7f,%.7f\n", label, p.Lon, p.Lat)
		}
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-record diagnostics")
	rootCmd.PersistentFlags().StringSliceVar(&classFilter, "class", nil, "restrict to object class acronyms (e.g. DEPARE,SOUNDG)")
	rootCmd.AddCommand(infoCmd, featuresCmd, geometryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

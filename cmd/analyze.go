package cmd

import (
	"fmt"

	"github.com/KaramelBytes/cacscope/internal/analysis"
	"github.com/KaramelBytes/cacscope/internal/charts"
	"github.com/KaramelBytes/cacscope/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaSheetName  string
	anaSheetIndex int
	anaZeroPolicy string
	anaFormat     string
	anaOutDir     string
	anaNoCharts   bool
	anaNoProfile  bool
	anaSampleRows int
	anaOutliers   bool
	anaOutlierThr float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Derive CAC metrics, print the profile and channel summary, render charts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		req := loadRequest{
			Path:       resolvePath(args, c),
			SheetName:  c.SheetName,
			SheetIndex: c.SheetIndex,
			Policy:     c.ZeroPolicy,
		}
		if f.Changed("sheet-name") {
			req.SheetName = anaSheetName
		}
		if f.Changed("sheet-index") {
			req.SheetIndex = anaSheetIndex
		}
		if f.Changed("zero-policy") {
			req.Policy = anaZeroPolicy
		}

		d, err := loadAndDerive(req)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if !anaNoProfile {
			opt := analysis.DefaultProfileOptions()
			opt.SampleRows = c.SampleRows
			if f.Changed("sample-rows") {
				opt.SampleRows = anaSampleRows
			}
			opt.Outliers = anaOutliers
			if anaOutlierThr > 0 {
				opt.OutlierThreshold = anaOutlierThr
			}
			opt.Warnings = d.Result.Warnings()
			rep, err := analysis.Profile(d.Result.Table, opt)
			if err != nil {
				return fmt.Errorf("profile: %w", err)
			}
			fmt.Fprintln(out, rep.Markdown())
		}

		if err := printSummary(out, d); err != nil {
			return err
		}

		if anaNoCharts || (!c.ChartsEnabled && !f.Changed("format")) {
			return nil
		}
		format := c.ChartFormat
		if f.Changed("format") {
			format = anaFormat
		}
		dir := c.OutputDir
		if f.Changed("out-dir") {
			dir = anaOutDir
		}
		if dir == "" {
			dir = utils.DefaultOutputDir()
		}
		r, err := charts.NewRenderer(format, dir, d.RunID)
		if err != nil {
			return err
		}
		files, err := charts.RenderAll(r, charts.Catalog(), d.Sorted, d.Result.Table)
		if err != nil {
			return err
		}
		d.Log.WithField("files", len(files)).Debug("charts rendered")
		fmt.Fprintf(out, "✓ Wrote %d chart file(s) to %s\n", len(files), dir)
		for _, p := range files {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeCmd.Flags().StringVar(&anaZeroPolicy, "zero-policy", "propagate", "zero denominators: propagate | reject | exclude")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "html", "chart output: html | png")
	analyzeCmd.Flags().StringVar(&anaOutDir, "out-dir", "", "directory for chart files (default $TMPDIR/cacscope)")
	analyzeCmd.Flags().BoolVar(&anaNoCharts, "no-charts", false, "skip chart rendering")
	analyzeCmd.Flags().BoolVar(&anaNoProfile, "no-profile", false, "skip the dataset profile")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include")
	analyzeCmd.Flags().BoolVar(&anaOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	analyzeCmd.Flags().Float64Var(&anaOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	sumSheetName  string
	sumSheetIndex int
	sumZeroPolicy string
)

var summaryCmd = &cobra.Command{
	Use:   "summary [file]",
	Short: "Print the per-channel CAC summary table",
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
			req.SheetName = sumSheetName
		}
		if f.Changed("sheet-index") {
			req.SheetIndex = sumSheetIndex
		}
		if f.Changed("zero-policy") {
			req.Policy = sumZeroPolicy
		}
		d, err := loadAndDerive(req)
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), d)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&sumSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	summaryCmd.Flags().IntVar(&sumSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	summaryCmd.Flags().StringVar(&sumZeroPolicy, "zero-policy", "propagate", "zero denominators: propagate | reject | exclude")
}

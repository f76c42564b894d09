package cmd

import (
	"fmt"

	"github.com/KaramelBytes/cacscope/internal/charts"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "List the chart catalog rendered by analyze",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tablewriter.NewWriter(cmd.OutOrStdout())
		tw.SetHeader([]string{"#", "ID", "Kind", "Title", "Table"})
		tw.SetAutoFormatHeaders(false)
		tw.SetAutoWrapText(false)
		for i, s := range charts.Catalog() {
			order := "as loaded"
			if s.Sorted {
				order = "sorted by CAC"
			}
			tw.Append([]string{fmt.Sprintf("%d", i+1), s.ID, string(s.Kind), s.Title, order})
		}
		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
}

package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/cacscope/internal/config"
	"github.com/KaramelBytes/cacscope/internal/metrics"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set cacscope configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("data_path: %s\n", cfg.DataPath)
		if cfg.SheetName != "" {
			fmt.Printf("sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Printf("sheet_index: %d\n", cfg.SheetIndex)
		if cfg.OutputDir != "" {
			fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		}
		fmt.Printf("chart_format: %s\n", cfg.ChartFormat)
		fmt.Printf("charts_enabled: %t\n", cfg.ChartsEnabled)
		fmt.Printf("zero_policy: %s\n", cfg.ZeroPolicy)
		fmt.Printf("sample_rows: %d\n", cfg.SampleRows)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := applySetting(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func applySetting(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "data_path":
		c.DataPath = val
	case "sheet_name":
		c.SheetName = val
	case "sheet_index":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid sheet_index: %v (must be >= 1)", val)
		}
		c.SheetIndex = i
	case "output_dir":
		c.OutputDir = val
	case "chart_format":
		switch val {
		case "html", "HTML":
			c.ChartFormat = "html"
		case "png", "PNG":
			c.ChartFormat = "png"
		default:
			return fmt.Errorf("invalid chart_format: %s (use html or png)", val)
		}
	case "charts_enabled":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for charts_enabled: %w", err)
		}
		c.ChartsEnabled = b
	case "zero_policy":
		p, err := metrics.ParsePolicy(val)
		if err != nil {
			return err
		}
		c.ZeroPolicy = string(p)
	case "sample_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for sample_rows: %v", val)
		}
		c.SampleRows = i
	case "log_level":
		c.LogLevel = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

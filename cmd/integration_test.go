package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/cacscope/internal/charts"
	cfgpkg "github.com/KaramelBytes/cacscope/internal/config"
	"github.com/KaramelBytes/cacscope/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Customer_ID,Marketing_Channel,Marketing_Spend,New_Customers
C1,Email,1000,50
C2,Referral,500,0
C3,Email,900,30
C4,Social Media,2000,40
C5,Referral,1200,60
C6,Social Media,1500,30
`

// execute runs the root command with args after clearing state left by
// earlier invocations.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	for _, c := range []*cobra.Command{analyzeCmd, summaryCmd} {
		c.Flags().VisitAll(func(fl *pflag.Flag) {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		})
	}
	cfg = nil
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// output runs the root command and returns what it wrote to stdout.
func output(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	runCmd(t, args...)
	return buf.String()
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	if err := execute(t, args...); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := filepath.Join(home, "cac.csv")
	require.NoError(t, os.WriteFile(p, []byte(sampleCSV), 0o644))
	return p
}

func TestCLI_AnalyzeWritesHTML(t *testing.T) {
	data := isolate(t)
	out := filepath.Join(t.TempDir(), "charts")

	runCmd(t, "analyze", data, "--out-dir", out, "--format", "html")

	matches, err := filepath.Glob(filepath.Join(out, "cac-*.html"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	b, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	for _, s := range charts.Catalog() {
		assert.Contains(t, string(b), s.Title)
	}
}

func TestCLI_AnalyzeNoCharts(t *testing.T) {
	data := isolate(t)
	out := filepath.Join(t.TempDir(), "charts")

	runCmd(t, "analyze", data, "--out-dir", out, "--no-charts", "--no-profile")

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "no output dir expected")
}

func TestCLI_RejectPolicyFails(t *testing.T) {
	data := isolate(t)
	err := execute(t, "summary", data, "--zero-policy", "reject")
	require.Error(t, err)
	assert.ErrorIs(t, err, metrics.ErrZeroDenominator)
	assert.Contains(t, err.Error(), "row 2")
}

func TestCLI_InvalidPolicy(t *testing.T) {
	data := isolate(t)
	err := execute(t, "summary", data, "--zero-policy", "ignore")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid zero policy")
}

func TestCLI_MissingFile(t *testing.T) {
	home := isolate(t)
	err := execute(t, "summary", filepath.Join(filepath.Dir(home), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCLI_MissingColumn(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(p, []byte("Marketing_Channel,Spend\nEmail,10\n"), 0o644))
	err := execute(t, "summary", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), metrics.ColSpend)
}

func TestCLI_ChartsList(t *testing.T) {
	isolate(t)
	out := output(t, "charts")
	for _, s := range charts.Catalog() {
		assert.Contains(t, out, s.ID)
	}
	assert.Contains(t, out, "sorted by CAC")
	assert.Contains(t, out, "as loaded")
}

func TestCLI_SummaryPrintsGroupedTable(t *testing.T) {
	data := isolate(t)
	out := output(t, "summary", data)

	assert.Contains(t, out, "CAC by Marketing_Channel")
	for _, h := range []string{"Marketing_Channel", "count", "mean", "std", "25%", "50%", "75%", "max"} {
		assert.Contains(t, out, h)
	}
	lines := strings.Split(out, "\n")
	row := func(key string) string {
		for _, l := range lines {
			if strings.Contains(l, " "+key+" ") {
				return l
			}
		}
		t.Fatalf("no row for %s in:\n%s", key, out)
		return ""
	}
	assert.Contains(t, row("Email"), "25.000000")
	assert.Contains(t, row("Referral"), "inf")
	assert.Contains(t, row("Social Media"), "50.000000")
	assert.Less(t, strings.Index(out, "Email"), strings.Index(out, "Referral"))
	assert.Less(t, strings.Index(out, "Referral"), strings.Index(out, "Social Media"))
}

func TestCLI_AnalyzeOutput(t *testing.T) {
	data := isolate(t)
	dir := filepath.Join(t.TempDir(), "charts")
	out := output(t, "analyze", data, "--out-dir", dir, "--sample-rows", "2")

	assert.Contains(t, out, "[DATASET SUMMARY]")
	assert.Contains(t, out, "[HEAD AND SAMPLE ROWS]")
	assert.Contains(t, out, "CAC by Marketing_Channel")
	assert.Contains(t, out, "✓ Wrote 1 chart file(s) to "+dir)
}

func TestLoadConfigFailureStillHonorsDebug(t *testing.T) {
	isolate(t)
	bad := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sheet_index: abc\n"), 0o644))
	oldCfg, oldDebug := cfgFile, debug
	defer func() {
		cfgFile, debug, cfg = oldCfg, oldDebug, nil
		logrus.SetLevel(logrus.InfoLevel)
	}()

	cfgFile, debug, cfg = bad, true, nil
	logrus.SetLevel(logrus.InfoLevel)
	loadConfig()
	assert.Nil(t, cfg)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestCLI_ConfigSetPersists(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")

	runCmd(t, "config", "set", "zero_policy", "drop")
	runCmd(t, "config", "set", "chart_format", "PNG")

	b, err := os.ReadFile(filepath.Join(home, ".cacscope", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "zero_policy: exclude")
	assert.Contains(t, string(b), "chart_format: png")

	err = execute(t, "config", "set", "sample_rows", "-1")
	assert.Error(t, err)
	err = execute(t, "config", "set", "nope", "1")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "unknown key"))
}

func TestResolvePath(t *testing.T) {
	c := &cfgpkg.Global{DataPath: "from-config.csv"}
	assert.Equal(t, "given.csv", resolvePath([]string{"given.csv"}, c))
	assert.Equal(t, "from-config.csv", resolvePath(nil, c))
	assert.Equal(t, cfgpkg.DefaultDataPath, resolvePath(nil, &cfgpkg.Global{}))
}

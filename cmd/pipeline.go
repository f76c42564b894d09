package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/cacscope/internal/analysis"
	cfgpkg "github.com/KaramelBytes/cacscope/internal/config"
	"github.com/KaramelBytes/cacscope/internal/dataset"
	"github.com/KaramelBytes/cacscope/internal/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// loadRequest collects the input options shared by analyze and summary.
type loadRequest struct {
	Path       string
	SheetName  string
	SheetIndex int
	Policy     string
}

// derived is the outcome of load + derive + sort for one run.
type derived struct {
	RunID  string
	Log    *logrus.Entry
	Result *metrics.Result
	Sorted *dataset.Table
}

func newRunID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// resolvePath picks the file argument, falling back to the configured path.
func resolvePath(args []string, c *cfgpkg.Global) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	if c != nil && c.DataPath != "" {
		return c.DataPath
	}
	return cfgpkg.DefaultDataPath
}

// loadAndDerive reads the dataset, appends the derived metrics under the
// requested zero-denominator policy and orders a copy by CAC.
func loadAndDerive(req loadRequest) (*derived, error) {
	policy, err := metrics.ParsePolicy(req.Policy)
	if err != nil {
		return nil, err
	}
	runID := newRunID()
	log := logrus.WithField("run", runID)

	t, err := dataset.Load(req.Path, dataset.LoadOptions{SheetName: req.SheetName, SheetIndex: req.SheetIndex})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", req.Path, err)
	}
	log.WithFields(logrus.Fields{"path": req.Path, "rows": t.Len()}).Debug("loaded dataset")

	res, err := metrics.Derive(t, policy)
	if err != nil {
		return nil, fmt.Errorf("derive metrics: %w", err)
	}
	for _, w := range res.Warnings() {
		log.WithField("policy", string(policy)).Warn(w)
	}
	sorted, err := analysis.SortByCAC(res.Table)
	if err != nil {
		return nil, fmt.Errorf("sort by CAC: %w", err)
	}
	return &derived{RunID: runID, Log: log, Result: res, Sorted: sorted}, nil
}

// printSummary writes the grouped CAC table for the run to w.
func printSummary(w io.Writer, d *derived) error {
	groups, err := analysis.GroupDescribe(d.Result.Table, metrics.ColChannel, metrics.ColCAC)
	if err != nil {
		return fmt.Errorf("group summary: %w", err)
	}
	fmt.Fprintf(w, "CAC by %s\n", metrics.ColChannel)
	analysis.WriteSummaryTable(w, metrics.ColChannel, groups)
	return nil
}

package charts

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/cacscope/internal/dataset"
	"github.com/KaramelBytes/cacscope/internal/utils"
	"github.com/sirupsen/logrus"
)

// Renderer turns prepared frames into chart artifacts.
type Renderer interface {
	Add(spec Spec, f *Frame) error
	// Close flushes pending output and returns the written file paths.
	Close() ([]string, error)
}

// NewRenderer builds a renderer for format html|png writing under dir.
func NewRenderer(format, dir, runID string) (Renderer, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	prefix := "cac"
	if runID != "" {
		prefix = "cac-" + runID
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "html":
		return NewHTMLRenderer(filepath.Join(dir, prefix+".html"), "Customer Acquisition Cost (CAC) Analysis"), nil
	case "png":
		return NewPNGRenderer(dir, prefix), nil
	default:
		return nil, fmt.Errorf("unsupported chart format: %s (use html or png)", format)
	}
}

// RenderAll prepares and renders each spec, feeding sorted specs the
// CAC-ordered table. The first failure aborts the run.
func RenderAll(r Renderer, specs []Spec, sorted, plain *dataset.Table) ([]string, error) {
	for _, spec := range specs {
		t := plain
		if spec.Sorted {
			t = sorted
		}
		f, err := Prepare(spec, t)
		if err != nil {
			return nil, fmt.Errorf("prepare %s: %w", spec.ID, err)
		}
		if f.Dropped > 0 {
			logrus.WithFields(logrus.Fields{"chart": spec.ID, "dropped": f.Dropped}).
				Warn("non-finite values left out of chart")
		}
		if err := r.Add(spec, f); err != nil {
			return nil, fmt.Errorf("render %s: %w", spec.ID, err)
		}
	}
	return r.Close()
}

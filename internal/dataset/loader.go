package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Loader reads one file format into a Table.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt LoadOptions) (*Table, error)
}

// LoadOptions controls how a file is read.
type LoadOptions struct {
	// Delimiter for CSV. If 0, ',' (or '\t' for .tsv).
	Delimiter rune
	// XLSX sheet selection. SheetName wins over SheetIndex (1-based).
	SheetName  string
	SheetIndex int
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader based on filename and reads the table.
func Load(path string, opt LoadOptions) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// nanValues are the cell contents read as missing. Blank cells count as
// missing so a sparse numeric column keeps its numeric type.
var nanValues = []string{"", "NA", "NaN", "nan", "<nil>"}

func fromRecords(name string, records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	width := len(records[0])
	for i, rec := range records {
		if len(rec) < width {
			tmp := make([]string, width)
			copy(tmp, rec)
			records[i] = tmp
		} else if len(rec) > width {
			records[i] = rec[:width]
		}
	}
	for j := range records[0] {
		records[0][j] = strings.TrimSpace(records[0][j])
		trimNumeric(records[1:], j)
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nanValues),
	)
	return FromDataFrame(name, df)
}

// trimNumeric strips padding around numbers when every cell of column j is a
// number or a missing marker. Text columns are left verbatim, so "Email" and
// "Email " stay distinct categories.
func trimNumeric(rows [][]string, j int) {
	for _, row := range rows {
		v := strings.TrimSpace(row[j])
		if isNaNValue(v) {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return
		}
	}
	for _, row := range rows {
		row[j] = strings.TrimSpace(row[j])
	}
}

func isNaNValue(v string) bool {
	for _, n := range nanValues {
		if v == n {
			return true
		}
	}
	return false
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

package metrics

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/cacscope/internal/dataset"
	"github.com/sirupsen/logrus"
)

// Input and derived column names.
const (
	ColChannel   = "Marketing_Channel"
	ColSpend     = "Marketing_Spend"
	ColCustomers = "New_Customers"

	ColCAC               = "CAC"
	ColCustomersPerSpend = "Customers_Per_Spend"
	ColConversionRate    = "Conversion_Rate"
	ColBECustomers       = "BE_customers"
)

// DerivedColumns lists the derived columns in the order they are appended.
var DerivedColumns = []string{ColCAC, ColCustomersPerSpend, ColConversionRate, ColBECustomers}

// Policy decides what happens to rows with a zero denominator.
type Policy string

const (
	// Propagate keeps non-finite values; they flow into sorting, stats and charts.
	Propagate Policy = "propagate"
	// Reject aborts on the first zero denominator.
	Reject Policy = "reject"
	// Exclude drops rows whose derived values are non-finite.
	Exclude Policy = "exclude"
)

// ParsePolicy accepts propagate|reject|exclude; empty means Propagate.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "propagate":
		return Propagate, nil
	case "reject", "error":
		return Reject, nil
	case "exclude", "drop":
		return Exclude, nil
	default:
		return "", fmt.Errorf("invalid zero policy: %s (use propagate, reject or exclude)", s)
	}
}

// ErrZeroDenominator matches any *ZeroDenominatorError.
var ErrZeroDenominator = errors.New("zero denominator")

// ZeroDenominatorError reports the first row that divides by zero.
type ZeroDenominatorError struct {
	Row    int // 0-based data row
	Column string
}

func (e *ZeroDenominatorError) Error() string {
	return fmt.Sprintf("row %d: %s is zero", e.Row+1, e.Column)
}

func (e *ZeroDenominatorError) Is(target error) bool { return target == ErrZeroDenominator }

// Derived holds the four metrics for one record.
type Derived struct {
	CAC               float64
	CustomersPerSpend float64
	ConversionRate    float64
	BECustomers       float64
}

// Finite reports whether every metric is a finite number.
func (d Derived) Finite() bool {
	for _, v := range []float64{d.CAC, d.CustomersPerSpend, d.ConversionRate, d.BECustomers} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Row derives the metrics for one record. Division follows IEEE-754, so a zero
// denominator yields ±Inf or NaN rather than an error.
func Row(spend, customers float64) Derived {
	cac := spend / customers
	return Derived{
		CAC:               cac,
		CustomersPerSpend: customers / spend,
		ConversionRate:    (customers / spend) * 100,
		BECustomers:       spend / cac,
	}
}

// Result is an enriched table plus bookkeeping from the derivation.
type Result struct {
	Table    *dataset.Table
	Policy   Policy
	Excluded int
	// NonFinite counts non-finite values per derived column in Table.
	NonFinite map[string]int
}

// Warnings summarizes degeneracies for display.
func (r *Result) Warnings() []string {
	var out []string
	if r.Excluded > 0 {
		out = append(out, fmt.Sprintf("excluded %d rows with zero denominators", r.Excluded))
	}
	for _, c := range DerivedColumns {
		if n := r.NonFinite[c]; n > 0 {
			out = append(out, fmt.Sprintf("%s has %d non-finite values", c, n))
		}
	}
	return out
}

// Derive appends the derived columns to t in place, preserving row order and
// the original columns. Under Exclude the returned table is a new subset.
func Derive(t *dataset.Table, policy Policy) (*Result, error) {
	if err := dataset.RequireColumns(t, ColSpend, ColCustomers); err != nil {
		return nil, err
	}
	spend, err := t.Floats(ColSpend)
	if err != nil {
		return nil, err
	}
	customers, err := t.Floats(ColCustomers)
	if err != nil {
		return nil, err
	}

	n := t.Len()
	cols := map[string][]float64{}
	for _, c := range DerivedColumns {
		cols[c] = make([]float64, n)
	}
	var keep []int
	for i := 0; i < n; i++ {
		if policy == Reject {
			switch {
			case customers[i] == 0:
				return nil, &ZeroDenominatorError{Row: i, Column: ColCustomers}
			case spend[i] == 0:
				return nil, &ZeroDenominatorError{Row: i, Column: ColSpend}
			}
		}
		d := Row(spend[i], customers[i])
		cols[ColCAC][i] = d.CAC
		cols[ColCustomersPerSpend][i] = d.CustomersPerSpend
		cols[ColConversionRate][i] = d.ConversionRate
		cols[ColBECustomers][i] = d.BECustomers
		if d.Finite() {
			keep = append(keep, i)
		}
	}
	for _, c := range DerivedColumns {
		if err := t.SetFloats(c, cols[c]); err != nil {
			return nil, err
		}
	}

	res := &Result{Table: t, Policy: policy, NonFinite: map[string]int{}}
	if policy == Exclude && len(keep) < n {
		sub, err := t.Subset(keep)
		if err != nil {
			return nil, fmt.Errorf("exclude non-finite rows: %w", err)
		}
		res.Table = sub
		res.Excluded = n - len(keep)
	}
	for _, c := range DerivedColumns {
		vals, err := res.Table.Floats(c)
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				res.NonFinite[c]++
			}
		}
	}
	logrus.WithFields(logrus.Fields{
		"rows":     res.Table.Len(),
		"policy":   string(policy),
		"excluded": res.Excluded,
	}).Debug("derived metrics")
	return res, nil
}

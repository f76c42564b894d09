package analysis

import (
	"sort"

	"github.com/KaramelBytes/cacscope/internal/dataset"
)

// GroupSummary holds the describe tuple of one column within one group.
type GroupSummary struct {
	Key string
	// Size counts every row in the group, including rows whose value is NaN.
	Size  int
	Stats Stats
}

// GroupDescribe partitions rows by the exact string value of key and
// describes value within each group. Keys are not normalized: "Email" and
// "email" are different groups. Groups come back ordered by key.
func GroupDescribe(t *dataset.Table, key, value string) ([]GroupSummary, error) {
	keys, err := t.Strings(key)
	if err != nil {
		return nil, err
	}
	vals, err := t.Floats(value)
	if err != nil {
		return nil, err
	}
	buckets := map[string][]float64{}
	for i, k := range keys {
		buckets[k] = append(buckets[k], vals[i])
	}
	out := make([]GroupSummary, 0, len(buckets))
	for k, vs := range buckets {
		out = append(out, GroupSummary{Key: k, Size: len(vs), Stats: Describe(vs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Package clean implements the deterministic dataset cleaning pass: prune
// mostly-missing columns, impute numeric and categorical nulls, and drop
// duplicate rows. Clean is a total, pure function; the input dataset is
// never mutated.
package clean

import (
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/dataloom/internal/dataset"
)

// maxMissingFraction is the strict pruning threshold: columns with more
// than 80% missing cells are dropped, exactly 80% is retained.
const maxMissingFraction = 0.8

// CategoricalFallback fills categorical columns that have no non-missing
// values at all.
const CategoricalFallback = "Unknown"

// Clean runs the four cleaning steps in fixed order and returns a new
// dataset. Later steps operate on the column and row set produced by
// earlier ones.
func Clean(ds *dataset.Dataset) *dataset.Dataset {
	out := ds.Clone()
	pruneColumns(out)
	for i := range out.Cols {
		switch out.Cols[i].Kind {
		case dataset.KindNumeric:
			imputeNumeric(&out.Cols[i])
		case dataset.KindCategorical:
			imputeCategorical(&out.Cols[i])
		}
	}
	dropDuplicateRows(out)
	return out
}

// pruneColumns drops columns whose missing fraction exceeds the threshold.
// With zero rows no column has a defined missing fraction, so pruning is
// skipped.
func pruneColumns(ds *dataset.Dataset) {
	rows := ds.Rows()
	if rows == 0 {
		return
	}
	kept := ds.Cols[:0]
	for _, c := range ds.Cols {
		frac := float64(c.MissingCount()) / float64(rows)
		if frac > maxMissingFraction {
			continue
		}
		kept = append(kept, c)
	}
	ds.Cols = kept
}

// imputeNumeric fills missing cells with the column median over its
// non-missing values. A column with no non-missing values has no defined
// median and is left fully missing.
func imputeNumeric(c *dataset.Column) {
	vals := c.Floats()
	if len(vals) == 0 {
		return
	}
	med := median(vals)
	for i := range c.Values {
		if c.Values[i].Missing {
			c.Values[i] = dataset.Value{Num: med}
		}
	}
}

// imputeCategorical fills missing cells with the most frequent value, ties
// broken by first appearance in row order. With no non-missing values the
// literal fallback is used.
func imputeCategorical(c *dataset.Column) {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, v := range c.Values {
		if v.Missing {
			continue
		}
		if _, ok := firstSeen[v.Str]; !ok {
			firstSeen[v.Str] = i
		}
		counts[v.Str]++
	}
	fill := CategoricalFallback
	best := -1
	for val, n := range counts {
		if n > best || (n == best && firstSeen[val] < firstSeen[fill]) {
			fill = val
			best = n
		}
	}
	for i := range c.Values {
		if c.Values[i].Missing {
			c.Values[i] = dataset.Value{Str: fill}
		}
	}
}

// dropDuplicateRows removes rows identical to an earlier row across all
// remaining columns, keeping the first occurrence.
func dropDuplicateRows(ds *dataset.Dataset) {
	rows := ds.Rows()
	if rows == 0 || len(ds.Cols) == 0 {
		return
	}
	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		b.Reset()
		for i := range ds.Cols {
			writeCellKey(&b, ds.Cols[i].Values[r])
			b.WriteByte(0x1f)
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, r)
	}
	if len(keep) == rows {
		return
	}
	for i := range ds.Cols {
		vals := make([]dataset.Value, len(keep))
		for j, r := range keep {
			vals[j] = ds.Cols[i].Values[r]
		}
		ds.Cols[i].Values = vals
	}
}

func writeCellKey(b *strings.Builder, v dataset.Value) {
	if v.Missing {
		b.WriteString("\x00miss")
		return
	}
	if v.Str != "" {
		b.WriteString(v.Str)
		return
	}
	b.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
}

// median computes the standard middle value, averaging the two central
// elements for even counts. The input slice is not modified.
func median(vals []float64) float64 {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

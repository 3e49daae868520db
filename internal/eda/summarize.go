package eda

import (
	"math"
	"sort"

	"github.com/KaramelBytes/dataloom/internal/dataset"
)

// DefaultMaxCategories bounds the per-column frequency table.
const DefaultMaxCategories = 10

// Summarize profiles the dataset. It is a total function: every edge case
// (empty dataset, all-missing column, zero variance) resolves to the null
// sentinels documented on the Summary fields, never an error. Columns of
// kind "other" are excluded from numeric and categorical sections.
func Summarize(ds *dataset.Dataset, maxCategories int) *Summary {
	s := &Summary{
		Shape:         Shape{Rows: ds.Rows(), Columns: len(ds.Cols)},
		Columns:       ds.ColumnNames(),
		MissingValues: make(map[string]MissingStat),
		NumericStats:  make(map[string]NumericStats),
		TopValues:     make(map[string][]CategoryCount),
		Correlations:  make(map[string]map[string]*float64),
	}
	rows := ds.Rows()

	var numeric []*dataset.Column
	for i := range ds.Cols {
		c := &ds.Cols[i]
		if miss := c.MissingCount(); miss > 0 {
			pct := 0.0
			if rows > 0 {
				pct = float64(miss) / float64(rows) * 100
			}
			s.MissingValues[c.Name] = MissingStat{Count: miss, Pct: pct}
		}
		switch c.Kind {
		case dataset.KindNumeric:
			s.NumericStats[c.Name] = numericStats(c.Floats())
			numeric = append(numeric, c)
		case dataset.KindCategorical:
			s.TopValues[c.Name] = topValues(c, maxCategories)
		}
	}

	if len(numeric) >= 2 {
		s.Correlations = correlations(numeric)
	}
	return s
}

// numericStats computes count, mean, sample standard deviation and the
// five-number summary. An empty input yields an all-nil row rather than
// omitting the column.
func numericStats(vals []float64) NumericStats {
	st := NumericStats{Count: len(vals)}
	if len(vals) == 0 {
		return st
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	st.Mean = ptr(mean)
	st.Min = ptr(sorted[0])
	st.Max = ptr(sorted[len(sorted)-1])
	st.Q25 = ptr(percentile(sorted, 25))
	st.Median = ptr(percentile(sorted, 50))
	st.Q75 = ptr(percentile(sorted, 75))

	if len(vals) >= 2 {
		ss := 0.0
		for _, v := range vals {
			d := v - mean
			ss += d * d
		}
		st.Std = ptr(math.Sqrt(ss / float64(len(vals)-1)))
	}
	return st
}

// percentile interpolates linearly between closest ranks over a sorted,
// non-empty slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// topValues tabulates non-missing value frequencies, sorted by descending
// count with ties broken by first appearance in row order, truncated to
// maxCategories entries.
func topValues(c *dataset.Column, maxCategories int) []CategoryCount {
	if maxCategories < 0 {
		maxCategories = 0
	}
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := make([]string, 0)
	for i, v := range c.Values {
		if v.Missing {
			continue
		}
		if _, ok := counts[v.Str]; !ok {
			firstSeen[v.Str] = i
			order = append(order, v.Str)
		}
		counts[v.Str]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	if len(order) > maxCategories {
		order = order[:maxCategories]
	}
	top := make([]CategoryCount, len(order))
	for i, val := range order {
		top[i] = CategoryCount{Value: val, Count: counts[val]}
	}
	return top
}

// correlations builds the pairwise-complete Pearson matrix: each pair uses
// only rows where both columns are non-missing. Coefficients with fewer
// than two paired observations or zero variance are nil; the diagonal is
// 1.0 wherever the column has at least one non-missing value.
func correlations(cols []*dataset.Column) map[string]map[string]*float64 {
	out := make(map[string]map[string]*float64, len(cols))
	for _, c := range cols {
		out[c.Name] = make(map[string]*float64, len(cols))
	}
	for i, a := range cols {
		if len(a.Floats()) > 0 {
			out[a.Name][a.Name] = ptr(1.0)
		} else {
			out[a.Name][a.Name] = nil
		}
		for j := i + 1; j < len(cols); j++ {
			b := cols[j]
			r := pearson(a, b)
			out[a.Name][b.Name] = r
			out[b.Name][a.Name] = r
		}
	}
	return out
}

func pearson(a, b *dataset.Column) *float64 {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range a.Values {
		if a.Values[i].Missing || b.Values[i].Missing {
			continue
		}
		x, y := a.Values[i].Num, b.Values[i].Num
		n++
		sumX += x
		sumY += y
		sumXX += x * x
		sumYY += y * y
		sumXY += x * y
	}
	if n < 2 {
		return nil
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return nil
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	return ptr(r)
}

func ptr(f float64) *float64 { return &f }

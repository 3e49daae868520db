// Package eda computes a compact structured statistical profile of a
// dataset: shape, missingness, numeric distributions, categorical
// frequencies, and pairwise numeric correlations. The summary is the
// contract consumed by report rendering and the HTTP layer.
package eda

// Shape is the dataset's row/column count.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// MissingStat describes nulls in one column. Only columns with at least one
// missing value appear in the summary; absence means zero nulls.
type MissingStat struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// NumericStats holds descriptive statistics for one numeric column. Nil
// fields are undefined: every field but Count is nil for an all-missing
// column, and Std additionally needs at least two observations.
type NumericStats struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"q25"`
	Median *float64 `json:"median"`
	Q75    *float64 `json:"q75"`
	Max    *float64 `json:"max"`
}

// CategoryCount is one categorical value with its occurrence count. Top
// values are kept as an ordered list because JSON objects do not preserve
// the descending-frequency order.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Summary is the structured EDA profile of a dataset. All maps are non-nil;
// Correlations is populated only when at least two numeric columns exist,
// and nil coefficients mark undefined pairs.
type Summary struct {
	Shape         Shape                          `json:"shape"`
	Columns       []string                       `json:"columns"`
	MissingValues map[string]MissingStat         `json:"missing_values"`
	NumericStats  map[string]NumericStats        `json:"numeric_stats"`
	TopValues     map[string][]CategoryCount     `json:"categorical_top_values"`
	Correlations  map[string]map[string]*float64 `json:"correlations"`
}

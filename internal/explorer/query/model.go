// Package query defines the explorer query model and its classification.
package query

import "strings"

// Analysis types offered by the explorer.
const (
	AnalysisCount        = "count"
	AnalysisCountUnique  = "count_unique"
	AnalysisMinimum      = "minimum"
	AnalysisMaximum      = "maximum"
	AnalysisSum          = "sum"
	AnalysisAverage      = "average"
	AnalysisMedian       = "median"
	AnalysisPercentile   = "percentile"
	AnalysisSelectUnique = "select_unique"
	AnalysisFunnel       = "funnel"
	AnalysisExtraction   = "extraction"
)

// AnalysisTypes lists the analysis types in display order.
var AnalysisTypes = []string{
	AnalysisCount,
	AnalysisCountUnique,
	AnalysisMinimum,
	AnalysisMaximum,
	AnalysisSum,
	AnalysisAverage,
	AnalysisMedian,
	AnalysisPercentile,
	AnalysisSelectUnique,
	AnalysisFunnel,
	AnalysisExtraction,
}

// Coercion types a filter value can be declared as.
const (
	CoercionString   = "String"
	CoercionNumber   = "Number"
	CoercionBoolean  = "Boolean"
	CoercionDatetime = "Datetime"
	CoercionNull     = "Null"
	CoercionList     = "List"
)

// TempIDPrefix marks ids handed out to unsaved queries.
const TempIDPrefix = "TEMP-"

// Model is the explorer state posted by the query form.
type Model struct {
	ID          string
	Query       *Query
	Loading     bool
	Saving      bool
	QueryName   string
	RefreshRate int
}

// Query is the analysis request being built.
type Query struct {
	EventCollection string
	AnalysisType    string
	Filters         []Filter
	// Email is set only for extractions delivered by email.
	Email  *string
	Latest string
}

// Filter narrows the events an analysis reads.
type Filter struct {
	PropertyName  string
	Operator      string
	CoercionType  string
	PropertyValue string
}

// AnalysisType returns the model's analysis type, or "" without a query.
func (m Model) AnalysisType() string {
	if m.Query == nil {
		return ""
	}
	return m.Query.AnalysisType
}

// Clone returns a deep copy so callers can adjust flags without aliasing.
func (m Model) Clone() Model {
	if m.Query == nil {
		return m
	}
	q := *m.Query
	if m.Query.Filters != nil {
		q.Filters = append([]Filter(nil), m.Query.Filters...)
	}
	if m.Query.Email != nil {
		email := *m.Query.Email
		q.Email = &email
	}
	m.Query = &q
	return m
}

// IsExtraction reports whether the model exports raw events.
func IsExtraction(m Model) bool {
	return m.AnalysisType() == AnalysisExtraction
}

// IsEmailExtraction reports whether the extraction is delivered by email.
func IsEmailExtraction(m Model) bool {
	return IsExtraction(m) && m.Query.Email != nil
}

// IsImmediateExtraction reports whether the extraction returns inline.
func IsImmediateExtraction(m Model) bool {
	return IsExtraction(m) && m.Query.Email == nil
}

// IsFunnel reports whether the model is a funnel analysis.
func IsFunnel(m Model) bool {
	return m.AnalysisType() == AnalysisFunnel
}

// IsPersisted reports whether the model was previously saved.
func IsPersisted(m Model) bool {
	id := strings.TrimSpace(m.ID)
	return id != "" && !strings.HasPrefix(id, TempIDPrefix)
}

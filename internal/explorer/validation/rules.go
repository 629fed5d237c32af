// Package validation holds the explorer field rule tables.
//
// Each table maps a field name to a fixed message and a pure predicate over
// the query model. A predicate returns true when the field passes. Tables are
// built once at init and never change; the submit controller picks the tables
// that apply with TablesFor and runs them with Validate.
package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/explorer/internal/explorer/query"
)

// Table names.
const (
	TableExplorer                = "explorer"
	TableEmailExtractionExplorer = "emailExtractionExplorer"
)

// Refresh rate bounds in minutes. Zero disables refreshing.
const (
	RefreshRateDisabled = 0
	RefreshRateMin      = 4 * 60
	RefreshRateMax      = 24 * 60
)

// Rule is one field constraint.
type Rule struct {
	Field      string
	Msg        string
	MessageKey string
	Validator  func(query.Model) bool
}

// Table is a named, ordered set of rules.
type Table struct {
	name  string
	rules []Rule
	index map[string]int
}

func newTable(name string, rules ...Rule) Table {
	t := Table{name: name, rules: rules, index: make(map[string]int, len(rules))}
	for i, rule := range rules {
		t.index[rule.Field] = i
	}
	return t
}

// Name returns the table name.
func (t Table) Name() string {
	return t.name
}

// Rule returns the rule for field.
func (t Table) Rule(field string) (Rule, bool) {
	i, ok := t.index[field]
	if !ok {
		return Rule{}, false
	}
	return t.rules[i], true
}

// Rules returns the rules in declaration order.
func (t Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Fields returns the rule field names in declaration order.
func (t Table) Fields() []string {
	out := make([]string, 0, len(t.rules))
	for _, rule := range t.rules {
		out = append(out, rule.Field)
	}
	return out
}

var explorerTable = newTable(TableExplorer,
	Rule{
		Field:      "event_collection",
		Msg:        "Choose an Event Collection.",
		MessageKey: "validation.event_collection",
		Validator:  hasEventCollection,
	},
	Rule{
		Field:      "analysis_type",
		Msg:        "Choose an Analysis Type.",
		MessageKey: "validation.analysis_type",
		Validator:  hasAnalysisType,
	},
	Rule{
		Field:      "refresh_rate",
		Msg:        "Refresh rate must be between 4 and 24 hours.",
		MessageKey: "validation.refresh_rate",
		Validator:  validRefreshRate,
	},
	Rule{
		Field:      "query_name",
		Msg:        "You must give your saved query a name.",
		MessageKey: "validation.query_name",
		Validator:  namedWhenSaving,
	},
	Rule{
		Field:      "filters",
		Msg:        "One of your filters is invalid.",
		MessageKey: "validation.filters",
		Validator:  validFilters,
	},
)

var emailExtractionTable = newTable(TableEmailExtractionExplorer,
	Rule{
		Field:      "email",
		Msg:        "Enter a valid email address.",
		MessageKey: "validation.email",
		Validator:  validEmail,
	},
	Rule{
		Field:      "latest",
		Msg:        "Latest must be a whole number.",
		MessageKey: "validation.latest",
		Validator:  validLatest,
	},
)

// Explorer returns the base rules that apply to every query.
func Explorer() Table {
	return explorerTable
}

// EmailExtractionExplorer returns the rules added for email extractions.
func EmailExtractionExplorer() Table {
	return emailExtractionTable
}

// TablesFor returns the tables that apply to m, base table first.
func TablesFor(m query.Model) []Table {
	if query.IsEmailExtraction(m) {
		return []Table{explorerTable, emailExtractionTable}
	}
	return []Table{explorerTable}
}

func hasEventCollection(m query.Model) bool {
	return m.Query != nil && m.Query.EventCollection != ""
}

func hasAnalysisType(m query.Model) bool {
	return m.Query != nil && m.Query.AnalysisType != ""
}

func validRefreshRate(m query.Model) bool {
	rate := m.RefreshRate
	return rate == RefreshRateDisabled || (rate >= RefreshRateMin && rate <= RefreshRateMax)
}

// namedWhenSaving only binds during a save attempt.
func namedWhenSaving(m query.Model) bool {
	return !m.Saving || m.QueryName != ""
}

func validFilters(m query.Model) bool {
	if m.Query == nil {
		return false
	}
	for _, filter := range m.Query.Filters {
		if !ValidFilter(filter) {
			return false
		}
	}
	return true
}

// ValidFilter reports whether the filter value coerces to its declared type.
// Types without a literal form (String, Null, List, unknown) always pass.
func ValidFilter(f query.Filter) bool {
	value := strings.TrimSpace(f.PropertyValue)
	switch f.CoercionType {
	case query.CoercionNumber:
		return validNumber(f.PropertyValue)
	case query.CoercionBoolean:
		return value == "true" || value == "false"
	case query.CoercionDatetime:
		_, err := time.Parse(time.RFC3339, value)
		return err == nil
	default:
		return true
	}
}

// validNumber accepts finite decimal literals only. ParseFloat would also take
// hex floats, which a filter value never means.
func validNumber(raw string) bool {
	digits := strings.TrimLeft(raw, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return false
	}
	n, err := strconv.ParseFloat(raw, 64)
	return err == nil && !math.IsNaN(n) && !math.IsInf(n, 0)
}

// emailPattern is deliberately narrow: one @, a dot in the domain, and no
// special characters such as ! # $ in the local part.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)+$`)

func validEmail(m query.Model) bool {
	if m.Query == nil || m.Query.Email == nil {
		return false
	}
	return emailPattern.MatchString(*m.Query.Email)
}

func validLatest(m query.Model) bool {
	if m.Query == nil {
		return false
	}
	latest := m.Query.Latest
	if latest == "" {
		return false
	}
	for i := 0; i < len(latest); i++ {
		if latest[i] < '0' || latest[i] > '9' {
			return false
		}
	}
	_, err := strconv.ParseUint(latest, 10, 64)
	return err == nil
}

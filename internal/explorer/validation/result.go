package validation

import (
	"strings"

	"github.com/louisbranch/explorer/internal/explorer/query"
	apperrors "github.com/louisbranch/explorer/internal/platform/errors"
)

// Failure is one rule that did not pass.
type Failure struct {
	Table      string
	Field      string
	Msg        string
	MessageKey string
}

// Result collects the failures of one validation pass.
type Result struct {
	failures []Failure
}

// Validate runs every rule of tables against m, in table then declaration
// order.
func Validate(m query.Model, tables ...Table) Result {
	var result Result
	for _, table := range tables {
		for _, rule := range table.rules {
			if rule.Validator == nil || rule.Validator(m) {
				continue
			}
			result.failures = append(result.failures, Failure{
				Table:      table.name,
				Field:      rule.Field,
				Msg:        rule.Msg,
				MessageKey: rule.MessageKey,
			})
		}
	}
	return result
}

// Check validates m against the tables that apply to it.
func Check(m query.Model) Result {
	return Validate(m, TablesFor(m)...)
}

// Valid reports whether every rule passed.
func (r Result) Valid() bool {
	return len(r.failures) == 0
}

// Failures returns the failures in evaluation order.
func (r Result) Failures() []Failure {
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

// First returns the first failure.
func (r Result) First() (Failure, bool) {
	if len(r.failures) == 0 {
		return Failure{}, false
	}
	return r.failures[0], true
}

// Failed reports whether field failed in any table.
func (r Result) Failed(field string) bool {
	for _, failure := range r.failures {
		if failure.Field == field {
			return true
		}
	}
	return false
}

// Messages returns the failure messages in evaluation order.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.failures))
	for _, failure := range r.failures {
		out = append(out, failure.Msg)
	}
	return out
}

// Err returns a QUERY_INVALID domain error naming the failed fields, or nil.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	fields := make([]string, 0, len(r.failures))
	for _, failure := range r.failures {
		fields = append(fields, failure.Field)
	}
	joined := strings.Join(fields, ", ")
	return apperrors.WithMetadata(apperrors.CodeQueryInvalid,
		"query failed validation: "+joined,
		map[string]string{"Fields": joined})
}

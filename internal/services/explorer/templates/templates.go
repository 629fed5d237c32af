// Package templates renders the explorer page and its HTMX fragments.
package templates

import (
	"strconv"

	"github.com/louisbranch/explorer/internal/explorer/actions"
	"github.com/louisbranch/explorer/internal/explorer/query"
	"github.com/louisbranch/explorer/internal/explorer/validation"
)

// CodeSampleField is the hidden form field carrying the toggle state.
const CodeSampleField = "code_sample_hidden"

// ExtractionOptionsID wraps the extraction controls inside the form.
const ExtractionOptionsID = "extraction-options"

// StatusKind styles the panel status line.
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Panel is the swappable result area under the form.
type Panel struct {
	Bar              actions.Bar
	Failures         []validation.Failure
	Status           string
	StatusKind       StatusKind
	CodeSampleHidden bool
	CodeSample       string
}

// PageData is the full explorer page.
type PageData struct {
	Lang  string
	Title string
	Model query.Model
	Panel Panel
}

var (
	englishLabel           = actions.Label{Key: "core.lang_en", Default: "English"}
	portugueseLabel        = actions.Label{Key: "core.lang_pt_br", Default: "Português (Brasil)"}
	immediateDeliveryLabel = actions.Label{Key: "explorer.delivery.immediate", Default: "Show results now"}
	emailDeliveryLabel     = actions.Label{Key: "explorer.delivery.email", Default: "Email results"}
)

func fieldLabel(field, fallback string) actions.Label {
	return actions.Label{Key: "explorer.field." + field, Default: fallback}
}

func failureLabel(f validation.Failure) actions.Label {
	return actions.Label{Key: f.MessageKey, Default: f.Msg}
}

// queryOf never returns nil so the form can read fields of an empty model.
func queryOf(m query.Model) *query.Query {
	if m.Query == nil {
		return &query.Query{}
	}
	return m.Query
}

func refreshValue(m query.Model) string {
	if m.RefreshRate == 0 {
		return ""
	}
	return strconv.Itoa(m.RefreshRate)
}

func filterSummary(f query.Filter) string {
	return f.PropertyName + " " + f.Operator + " (" + f.CoercionType + ")"
}

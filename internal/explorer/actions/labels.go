// Package actions builds the explorer toolbar for a query model.
package actions

import (
	"strings"

	"github.com/louisbranch/explorer/internal/explorer/query"
	"golang.org/x/text/message"
)

// Localizer resolves message keys; *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, a ...interface{}) string
}

// Label is a message key with its English text.
type Label struct {
	Key     string
	Default string
}

// Text localizes the label, falling back to Default for unknown keys.
func (l Label) Text(loc Localizer) string {
	if loc == nil || l.Key == "" {
		return l.Default
	}
	text := loc.Sprintf(l.Key)
	if strings.TrimSpace(text) == "" || text == l.Key {
		return l.Default
	}
	return text
}

// LabelGroup is the run button text for idle and in-flight states.
type LabelGroup struct {
	Name     string
	Inactive Label
	Active   Label
}

// Pick returns the active label while loading and the inactive one otherwise.
func (g LabelGroup) Pick(loading bool) Label {
	if loading {
		return g.Active
	}
	return g.Inactive
}

// Run button label groups.
var (
	DefaultLabels = LabelGroup{
		Name:     "default",
		Inactive: Label{Key: "explorer.run.default.inactive", Default: "Run Query"},
		Active:   Label{Key: "explorer.run.default.active", Default: "Running..."},
	}
	ImmediateExtractionLabels = LabelGroup{
		Name:     "immediateExtraction",
		Inactive: Label{Key: "explorer.run.immediate_extraction.inactive", Default: "Run Extraction"},
		Active:   Label{Key: "explorer.run.immediate_extraction.active", Default: "Running..."},
	}
	EmailExtractionLabels = LabelGroup{
		Name:     "emailExtraction",
		Inactive: Label{Key: "explorer.run.email_extraction.inactive", Default: "Send Email Extraction"},
		Active:   Label{Key: "explorer.run.email_extraction.active", Default: "Sending..."},
	}
)

// Fixed toolbar labels.
var (
	SaveLabel   = Label{Key: "explorer.save", Default: "Save"}
	UpdateLabel = Label{Key: "explorer.update", Default: "Update"}
	DeleteLabel = Label{Key: "explorer.delete", Default: "Delete"}
	EmbedLabel  = Label{Key: "explorer.embed", Default: "</> Embed"}
)

type labelRule struct {
	matches func(query.Model) bool
	group   LabelGroup
}

// runLabelRules is evaluated top to bottom; the first match wins.
var runLabelRules = []labelRule{
	{matches: query.IsEmailExtraction, group: EmailExtractionLabels},
	{matches: query.IsImmediateExtraction, group: ImmediateExtractionLabels},
}

// RunLabels returns the label group for m.
func RunLabels(m query.Model) LabelGroup {
	for _, rule := range runLabelRules {
		if rule.matches(m) {
			return rule.group
		}
	}
	return DefaultLabels
}

// RunButtonText returns the English run button text for m.
func RunButtonText(m query.Model) string {
	return RunLabels(m).Pick(m.Loading).Default
}

package actions

import (
	"strings"

	"github.com/louisbranch/explorer/internal/explorer/query"
)

// Button roles, used by the page script and tests to locate controls.
const (
	RoleRunQuery         = "run-query"
	RoleSaveQuery        = "save-query"
	RoleDeleteQuery      = "delete-query"
	RoleToggleCodeSample = "toggle-code-sample"
)

// Handlers are the endpoints each control posts to. An empty RemoveClick
// means no remove handler was supplied.
type Handlers struct {
	HandleQuerySubmit string
	SaveQueryClick    string
	RemoveClick       string
	ToggleCodeSample  string
}

// Props are the inputs of one toolbar render.
type Props struct {
	Model            query.Model
	Persistence      bool
	CodeSampleHidden bool
	Handlers         Handlers
}

// Button describes one rendered control.
type Button struct {
	Role     string
	Type     string
	ID       string
	Classes  []string
	Label    Label
	Action   string
	Disabled bool
}

// ClassName joins the button classes.
func (b Button) ClassName() string {
	return strings.Join(b.Classes, " ")
}

// HasClass reports whether class is set on the button.
func (b Button) HasClass(class string) bool {
	for _, c := range b.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Bar is the toolbar description. Save and Delete are nil when hidden.
type Bar struct {
	Run        Button
	Save       *Button
	Delete     *Button
	CodeSample Button
}

// Build computes the toolbar for props. It has no side effects.
func Build(props Props) Bar {
	m := props.Model
	bar := Bar{
		Run:        runButton(m, props.Handlers.HandleQuerySubmit),
		CodeSample: codeSampleButton(props.CodeSampleHidden, props.Handlers.ToggleCodeSample),
	}
	if !canManage(props) {
		return bar
	}

	persisted := query.IsPersisted(m)
	save := Button{
		Role:     RoleSaveQuery,
		Type:     "button",
		Classes:  []string{"btn", "btn-success", "save-query"},
		Label:    SaveLabel,
		Action:   props.Handlers.SaveQueryClick,
		Disabled: m.Loading,
	}
	if persisted {
		save.Label = UpdateLabel
	}
	bar.Save = &save

	if CanDelete(props) {
		bar.Delete = &Button{
			Role:    RoleDeleteQuery,
			Type:    "button",
			Classes: []string{"btn", "btn-link"},
			Label:   DeleteLabel,
			Action:  props.Handlers.RemoveClick,
		}
	}
	return bar
}

// CanSave reports whether the save control is offered for props.
func CanSave(props Props) bool {
	return canManage(props)
}

// CanDelete reports whether the delete control is offered for props.
func CanDelete(props Props) bool {
	return canManage(props) && query.IsPersisted(props.Model) && strings.TrimSpace(props.Handlers.RemoveClick) != ""
}

func canManage(props Props) bool {
	return props.Persistence && !query.IsEmailExtraction(props.Model) && !query.IsFunnel(props.Model)
}

func runButton(m query.Model, action string) Button {
	classes := []string{"btn", "btn-primary", "run-query"}
	if m.Loading {
		classes = append(classes, "disabled")
	}
	return Button{
		Role:    RoleRunQuery,
		Type:    "submit",
		ID:      "run-query",
		Classes: classes,
		Label:   RunLabels(m).Pick(m.Loading),
		Action:  action,
	}
}

func codeSampleButton(hidden bool, action string) Button {
	classes := []string{"btn", "btn-default", "code-sample-toggle", "pull-right"}
	if !hidden {
		classes = append(classes, "open")
	}
	return Button{
		Role:    RoleToggleCodeSample,
		Type:    "button",
		Classes: classes,
		Label:   EmbedLabel,
		Action:  action,
	}
}

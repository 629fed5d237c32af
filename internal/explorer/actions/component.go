package actions

// HTMX wiring shared with the explorer page.
const (
	FormID      = "explorer-form"
	PanelID     = "explorer-panel"
	ContainerID = "query-actions"
)

// Package routepath names the explorer service routes.
package routepath

const (
	Root               = "/"
	Explorer           = "/explorer"
	ExplorerValidate   = "/explorer/validate"
	ExplorerRun        = "/explorer/run"
	ExplorerSave       = "/explorer/save"
	ExplorerDelete     = "/explorer/delete"
	ExplorerCodeSample = "/explorer/code-sample"
	APIValidate        = "/api/explorer/validate"
	Healthz            = "/healthz"
)

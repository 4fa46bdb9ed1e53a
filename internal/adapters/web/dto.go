package web

import "go.trai.ch/remotex/internal/core/domain"

// Error tags returned in ErrorResponse.Error.
const (
	ErrorNotFound        = "not_found"
	ErrorUnauthorized    = "unauthorized"
	ErrorExecFail        = "exec_fail"
	ErrorProjectDisabled = "project_disabled"
	ErrorBusy            = "busy"
)

// StatusResponse is returned by the health check and after a successful execution.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse carries a machine-readable tag and a human description.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ProjectSummary is the public view of a project. It never carries secrets or tasks.
type ProjectSummary struct {
	Name     string `json:"name"`
	Codename string `json:"codename"`
	Desc     string `json:"desc"`
	Enabled  bool   `json:"enabled"`
}

// NewProjectSummary converts p to its public view.
func NewProjectSummary(p domain.Project) ProjectSummary {
	return ProjectSummary{
		Name:     p.Name,
		Codename: p.Codename,
		Desc:     p.Description,
		Enabled:  p.Enabled,
	}
}

var statusOK = StatusResponse{Status: "ok"}

package web

import (
	"context"
	"errors"
	"net/http"

	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/zerr"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, statusOK)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects := s.registry.All()
	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, NewProjectSummary(p))
	}
	s.writeCacheableJSON(w, r, summaries)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	codename := r.PathValue("codename")
	project, ok := s.registry.Get(codename)
	if !ok {
		s.writeFailure(w, r, projectNotFound(codename))
		return
	}
	s.writeCacheableJSON(w, r, NewProjectSummary(project))
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	if err := s.execute(r); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, statusOK)
}

// execute checks lookup, credentials, the disabled policy and capacity in
// that order before running the project.
func (s *Server) execute(r *http.Request) error {
	codename := r.PathValue("codename")

	project, ok := s.registry.Get(codename)
	if !ok {
		return projectNotFound(codename)
	}

	if !project.Auth.Permits(bearerCredential(r)) {
		return zerr.With(zerr.Wrap(domain.ErrUnauthorized, "credentials rejected"), "codename", codename)
	}

	if !s.registry.Executable(project) {
		return zerr.With(zerr.Wrap(domain.ErrProjectDisabled, "execution refused"), "codename", codename)
	}

	release, err := s.acquireSlot(r.Context())
	if err != nil {
		return zerr.With(err, "codename", codename)
	}
	defer release()

	return s.executor.Execute(r.Context(), project)
}

// acquireSlot waits for an execution slot until ctx ends.
func (s *Server) acquireSlot(ctx context.Context) (func(), error) {
	if s.slots == nil {
		return func() {}, nil
	}
	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, errors.Join(domain.ErrBusy, zerr.Wrap(err, "no execution slot available"))
	}
	return func() { s.slots.Release(1) }, nil
}

func projectNotFound(codename string) error {
	return zerr.With(zerr.Wrap(domain.ErrProjectNotFound, "unknown project"), "codename", codename)
}

// failureResponse maps a request failure onto its status code, error tag and description.
func failureResponse(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, ErrorNotFound, "Unable to find project"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorUnauthorized, "Invalid credentials provided"
	case errors.Is(err, domain.ErrProjectDisabled):
		return http.StatusConflict, ErrorProjectDisabled, "Project is disabled"
	case errors.Is(err, domain.ErrBusy):
		return http.StatusServiceUnavailable, ErrorBusy, "Too many concurrent executions"
	case errors.Is(err, domain.ErrExecutionFailed):
		return http.StatusBadRequest, ErrorExecFail, "Execution failed"
	default:
		return http.StatusInternalServerError, ErrorExecFail, "Execution could not be started"
	}
}

// writeFailure logs err at a level matching its class and answers with the mapped error body.
// The cause is never echoed to the client.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, tag, description := failureResponse(err)

	switch status {
	case http.StatusNotFound, http.StatusUnauthorized:
		s.logger.Debug(err.Error())
	case http.StatusConflict, http.StatusServiceUnavailable:
		s.logger.Warn(err.Error())
	default:
		s.logger.Error(zerr.With(err, "request_id", RequestIDFrom(r.Context())))
	}

	s.writeError(w, status, tag, description)
}

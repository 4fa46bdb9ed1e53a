package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := encode(data)
	if err != nil {
		s.logger.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to write response: %v", err))
	}
}

// writeCacheableJSON answers with an ETag derived from the body and
// honours If-None-Match with 304 Not Modified.
func (s *Server) writeCacheableJSON(w http.ResponseWriter, r *http.Request, data any) {
	body, err := encode(data)
	if err != nil {
		s.logger.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to write response: %v", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, tag, description string) {
	s.writeJSON(w, status, ErrorResponse{Error: tag, ErrorDescription: description})
}

func encode(data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

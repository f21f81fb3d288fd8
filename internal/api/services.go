package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenhaus/lumen-core/internal/command"
	"github.com/lumenhaus/lumen-core/internal/preset"
)

// handleService invokes a named command with the JSON body as arguments.
// An empty body means no arguments. Commands without a response payload
// return 204.
func (s *Server) handleService(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	args := map[string]any{}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, "reading request body: "+err.Error())
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			writeBadRequest(w, "request body must be a JSON object")
			return
		}
	}

	result, err := s.commands.Dispatch(r.Context(), name, args)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}

	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetPresets returns the whole preset document.
func (s *Server) handleGetPresets(w http.ResponseWriter, r *http.Request) {
	result, err := s.commands.Dispatch(r.Context(), command.CmdGetPresets, map[string]any{})
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeCommandError maps dispatch errors onto HTTP status codes.
func (s *Server) writeCommandError(w http.ResponseWriter, err error) {
	var verr *command.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, verr.Error())
	case errors.Is(err, command.ErrUnknownCommand):
		writeNotFound(w, err.Error())
	case errors.Is(err, preset.ErrCategoryNotFound), errors.Is(err, preset.ErrPresetNotFound):
		writeNotFound(w, err.Error())
	case errors.Is(err, preset.ErrInvalidName), errors.Is(err, preset.ErrInvalidType),
		errors.Is(err, preset.ErrInvalidAttribute):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
	default:
		s.logger.Error("command failed", "error", err)
		writeInternalError(w, "command failed")
	}
}

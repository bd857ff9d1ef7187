package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/rosterpool/go/internal/draftpool"
	"github.com/mcdev12/rosterpool/go/internal/programs"
	"github.com/mcdev12/rosterpool/go/internal/registration"
	"github.com/mcdev12/rosterpool/go/internal/seasons"
	"github.com/mcdev12/rosterpool/go/internal/teams"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, registration.ErrValidation),
		errors.Is(err, registration.ErrAgeGroupUnresolved):
		status = http.StatusBadRequest
	case errors.Is(err, seasons.ErrSeasonNotFound),
		errors.Is(err, programs.ErrProgramNotFound),
		errors.Is(err, draftpool.ErrEntryNotFound),
		errors.Is(err, teams.ErrTeamNotFound):
		status = http.StatusNotFound
	case errors.Is(err, registration.ErrSeasonNotOpen):
		status = http.StatusForbidden
	case errors.Is(err, registration.ErrDuplicate),
		errors.Is(err, registration.ErrAgeGroupFull),
		errors.Is(err, seasons.ErrAgeGroupFull),
		errors.Is(err, seasons.ErrInvalidTransition),
		errors.Is(err, draftpool.ErrNotAvailable),
		errors.Is(err, draftpool.ErrNotDrafted),
		errors.Is(err, draftpool.ErrTeamMismatch),
		errors.Is(err, draftpool.ErrAlreadyCancelled),
		errors.Is(err, draftpool.ErrDuplicateEntry),
		errors.Is(err, teams.ErrTeamFull):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

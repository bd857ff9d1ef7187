package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/rosterpool/go/internal/draftpool"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/programs"
	"github.com/mcdev12/rosterpool/go/internal/registration"
	"github.com/mcdev12/rosterpool/go/internal/seasons"
	"github.com/mcdev12/rosterpool/go/internal/teams"
)

// RegistrationService accepts season registration submissions
type RegistrationService interface {
	Register(ctx context.Context, req registration.RegisterRequest) (*registration.RegisterResult, error)
}

// PoolService exposes draft pool reads and state transitions
type PoolService interface {
	GetEntry(ctx context.Context, id uuid.UUID) (*models.DraftPoolEntry, error)
	ListEntries(ctx context.Context, filter draftpool.ListFilter) ([]models.DraftPoolEntry, error)
	Draft(ctx context.Context, req draftpool.DraftRequest) (*models.DraftPoolEntry, error)
	Undraft(ctx context.Context, req draftpool.UndraftRequest) (*models.DraftPoolEntry, error)
	Cancel(ctx context.Context, entryID uuid.UUID) (*models.DraftPoolEntry, error)
}

// SeasonService exposes season lifecycle operations
type SeasonService interface {
	CreateSeason(ctx context.Context, req seasons.CreateSeasonRequest) (*models.Season, error)
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	UpdateSeasonStatus(ctx context.Context, id uuid.UUID, status models.SeasonStatus) (*models.Season, error)
}

// ProgramService exposes program operations
type ProgramService interface {
	CreateProgram(ctx context.Context, req programs.CreateProgramRequest) (*models.Program, error)
	GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error)
}

// TeamService exposes generated team operations
type TeamService interface {
	GenerateTeams(ctx context.Context, req teams.GenerateTeamsRequest) ([]models.GeneratedTeam, error)
	ListTeamsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.GeneratedTeam, error)
	AddCoach(ctx context.Context, teamID, coachID uuid.UUID) error
}

// NotificationService exposes stored notification reads
type NotificationService interface {
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int32) ([]models.Notification, error)
}

// Handlers wires the app layer into HTTP routes
type Handlers struct {
	registrations RegistrationService
	pool          PoolService
	seasons       SeasonService
	programs      ProgramService
	teams         TeamService
	notifications NotificationService
	connections   *ConnectionManager
}

// NewHandlers creates the HTTP handler set
func NewHandlers(
	registrations RegistrationService,
	pool PoolService,
	seasonSvc SeasonService,
	programSvc ProgramService,
	teamSvc TeamService,
	notificationSvc NotificationService,
	connections *ConnectionManager,
) *Handlers {
	return &Handlers{
		registrations: registrations,
		pool:          pool,
		seasons:       seasonSvc,
		programs:      programSvc,
		teams:         teamSvc,
		notifications: notificationSvc,
		connections:   connections,
	}
}

// Register mounts all routes onto the mux
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/registrations", h.handleRegister)

	mux.HandleFunc("GET /api/pool", h.handleListPool)
	mux.HandleFunc("GET /api/pool/{id}", h.handleGetEntry)
	mux.HandleFunc("POST /api/pool/{id}/draft", h.handleDraft)
	mux.HandleFunc("POST /api/pool/{id}/undraft", h.handleUndraft)
	mux.HandleFunc("POST /api/pool/{id}/cancel", h.handleCancel)

	mux.HandleFunc("POST /api/programs", h.handleCreateProgram)
	mux.HandleFunc("GET /api/programs/{id}", h.handleGetProgram)

	mux.HandleFunc("POST /api/seasons", h.handleCreateSeason)
	mux.HandleFunc("GET /api/seasons/{id}", h.handleGetSeason)
	mux.HandleFunc("POST /api/seasons/{id}/status", h.handleUpdateSeasonStatus)
	mux.HandleFunc("POST /api/seasons/{id}/teams", h.handleGenerateTeams)
	mux.HandleFunc("GET /api/seasons/{id}/teams", h.handleListTeams)

	mux.HandleFunc("POST /api/teams/{id}/coaches", h.handleAddCoach)

	mux.HandleFunc("GET /api/notifications", h.handleListNotifications)

	if h.connections != nil {
		mux.HandleFunc("GET /ws/pool/{id}", h.handlePoolFeed)
	}
}

func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registration.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.registrations.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handlers) handleListPool(w http.ResponseWriter, r *http.Request) {
	filter := draftpool.ListFilter{
		AgeGroupID: r.URL.Query().Get("age_group"),
	}

	if raw := r.URL.Query().Get("season"); raw != "" {
		seasonID, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid season id"})
			return
		}
		filter.SeasonID = seasonID
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		filter.Status = models.DraftStatus(strings.ToUpper(raw))
	}

	entries, err := h.pool.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handlers) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	entry, err := h.pool.GetEntry(r.Context(), entryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handlers) handleDraft(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req draftpool.DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	req.EntryID = entryID

	entry, err := h.pool.Draft(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handlers) handleUndraft(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req draftpool.UndraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	req.EntryID = entryID

	entry, err := h.pool.Undraft(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handlers) handleCancel(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	entry, err := h.pool.Cancel(r.Context(), entryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handlers) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req programs.CreateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	program, err := h.programs.CreateProgram(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, program)
}

func (h *Handlers) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	programID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	program, err := h.programs.GetProgram(r.Context(), programID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, program)
}

func (h *Handlers) handleCreateSeason(w http.ResponseWriter, r *http.Request) {
	var req seasons.CreateSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	season, err := h.seasons.CreateSeason(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, season)
}

func (h *Handlers) handleGetSeason(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	season, err := h.seasons.GetSeason(r.Context(), seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

func (h *Handlers) handleUpdateSeasonStatus(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	season, err := h.seasons.UpdateSeasonStatus(r.Context(), seasonID, models.SeasonStatus(strings.ToUpper(req.Status)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

func (h *Handlers) handleGenerateTeams(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req teams.GenerateTeamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	req.SeasonID = seasonID

	generated, err := h.teams.GenerateTeams(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, generated)
}

func (h *Handlers) handleListTeams(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	listed, err := h.teams.ListTeamsBySeason(r.Context(), seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listed)
}

func (h *Handlers) handleAddCoach(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		CoachID uuid.UUID `json:"coach_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.teams.AddCoach(r.Context(), teamID, req.CoachID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handlers) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("recipient")
	recipientID, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid recipient id"})
		return
	}

	var limit int32
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		if _, err := fmt.Sscanf(rawLimit, "%d", &limit); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
	}

	listed, err := h.notifications.ListByRecipient(r.Context(), recipientID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listed)
}

// handlePoolFeed upgrades the connection into the season's live pool feed.
func (h *Handlers) handlePoolFeed(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	userID := r.URL.Query().Get("user")
	if userID == "" {
		userID = "anonymous"
	}

	if err := h.connections.UpgradeConnection(w, r, userID, seasonID); err != nil {
		// UpgradeConnection already hijacked the response on success; on
		// failure the upgrader has written the error.
		return
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid %s", name)})
		return uuid.Nil, false
	}
	return id, true
}

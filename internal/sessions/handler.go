package sessions

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lotus-studio/lotus/internal/platform/httpx"
)

// Handler wires HTTP endpoints for session CRUD and roster membership.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers session routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
	r.Post("/{id}/participate/{userId}", h.handleParticipate)
	r.Delete("/{id}/participate/{userId}", h.handleNoLongerParticipate)
}

// sessionDTO is the wire shape; teacher_id stays snake_case for
// compatibility with existing clients.
type sessionDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeacherID   int64     `json:"teacher_id"`
	Description string    `json:"description"`
	Users       []int64   `json:"users"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type sessionRequest struct {
	Name        string    `json:"name" validate:"required,max=50"`
	Date        time.Time `json:"date" validate:"required"`
	TeacherID   int64     `json:"teacher_id" validate:"required"`
	Description string    `json:"description" validate:"required,max=2500"`
	Users       []int64   `json:"users"`
}

func toDTO(s *Session) sessionDTO {
	users := s.Users
	if users == nil {
		users = []int64{}
	}
	return sessionDTO{
		ID:          s.ID,
		Name:        s.Name,
		Date:        s.Date,
		TeacherID:   s.InstructorID,
		Description: s.Description,
		Users:       users,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.logger.Error("list sessions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	dtos := make([]sessionDTO, 0, len(list))
	for i := range list {
		dtos = append(dtos, toDTO(&list[i]))
	}
	httpx.JSON(w, http.StatusOK, dtos)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	session, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(session))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	session, err := h.service.Create(r.Context(), &Session{
		Name:         req.Name,
		Date:         req.Date,
		Description:  req.Description,
		InstructorID: req.TeacherID,
		Users:        req.Users,
	})
	if err != nil {
		h.logger.Error("create session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(session))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	session, err := h.service.Update(r.Context(), id, &Session{
		Name:         req.Name,
		Date:         req.Date,
		Description:  req.Description,
		InstructorID: req.TeacherID,
		Users:        req.Users,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(session))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.service.GetByID(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	if _, err := h.service.Participate(r.Context(), sessionID, userID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleNoLongerParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	if _, err := h.service.NoLongerParticipate(r.Context(), sessionID, userID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (sessionRequest, bool) {
	var req sessionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return req, false
	}
	return req, true
}

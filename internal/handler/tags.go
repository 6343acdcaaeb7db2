package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"notekeeper/internal/domain/models"
	"notekeeper/internal/domain/repositories"
	"notekeeper/internal/httputil"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tags   repositories.TagRepository
	logger *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tags repositories.TagRepository, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tags:   tags,
		logger: logger,
	}
}

type tagRequest struct {
	Name string `json:"name"`
}

func (req *tagRequest) validate() error {
	if err := validation.Validate(req.Name,
		validation.Required.Error("Missing `name` in request body")); err != nil {
		return validationErr(err.Error())
	}
	return nil
}

// ListTags returns the caller's tags sorted by name.
// GET /api/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	tags, err := h.tags.List(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tags)
}

// GetTag retrieves one of the caller's tags.
// GET /api/tags/{id}
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	id, ok := requireID(w, r)
	if !ok {
		return
	}

	tag, err := h.tags.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tag)
}

// CreateTag creates a tag owned by the caller.
// POST /api/tags
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	var req tagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, h.logger, err)
		return
	}

	tag := &models.Tag{
		Name:   req.Name,
		UserID: identity.UserID,
	}

	if err := h.tags.Create(r.Context(), tag); err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("tag created", "id", tag.ID, "user_id", identity.UserID)

	w.Header().Set("Location", "/api/tags/"+tag.ID)
	httputil.RespondJSON(w, http.StatusCreated, tag)
}

// UpdateTag renames one of the caller's tags.
// PUT /api/tags/{id}
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var req tagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, h.logger, err)
		return
	}

	tag := &models.Tag{
		ID:     id,
		Name:   req.Name,
		UserID: identity.UserID,
	}

	if err := h.tags.Update(r.Context(), tag); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tag)
}

// DeleteTag pulls the tag out of the caller's notes and removes it.
// DELETE /api/tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	id, ok := requireID(w, r)
	if !ok {
		return
	}

	if err := h.tags.Delete(r.Context(), id, identity.UserID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"log/slog"
	"net/http"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"notekeeper/internal/domain/models"
	"notekeeper/internal/domain/repositories"
	"notekeeper/internal/httputil"
)

// NoteHandler handles note HTTP requests
type NoteHandler struct {
	notes  repositories.NoteRepository
	logger *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(notes repositories.NoteRepository, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		notes:  notes,
		logger: logger,
	}
}

type createNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	FolderID string   `json:"folderId"`
	Tags     []string `json:"tags"`
}

func (req *createNoteRequest) validate() error {
	if err := validation.Validate(req.Title,
		validation.Required.Error("Missing `title` in request body")); err != nil {
		return validationErr(err.Error())
	}
	if req.FolderID != "" {
		if err := validation.Validate(req.FolderID, is.UUID); err != nil {
			return validationErr("The `folderId` is not valid")
		}
	}
	for _, tagID := range req.Tags {
		if err := validation.Validate(tagID, validation.Required, is.UUID); err != nil {
			return validationErr("The `tags` array contains an invalid `id`")
		}
	}
	return nil
}

// updateNoteRequest distinguishes absent fields from transmitted ones:
// only transmitted fields change. folderId is tri-state so a JSON null
// moves the note out of its folder.
type updateNoteRequest struct {
	Title    *string                  `json:"title"`
	Content  *string                  `json:"content"`
	FolderID httputil.OptionalString  `json:"folderId"`
	Tags     httputil.OptionalStrings `json:"tags"`
}

func (req *updateNoteRequest) validate() error {
	if req.Title != nil {
		if err := validation.Validate(*req.Title,
			validation.Required.Error("Missing `title` in request body")); err != nil {
			return validationErr(err.Error())
		}
	}
	if req.FolderID.Present && req.FolderID.Value != nil && *req.FolderID.Value != "" {
		if err := validation.Validate(*req.FolderID.Value, is.UUID); err != nil {
			return validationErr("The `folderId` is not valid")
		}
	}
	if req.Tags.Present {
		for _, tagID := range req.Tags.Values {
			if err := validation.Validate(tagID, validation.Required, is.UUID); err != nil {
				return validationErr("The `tags` array contains an invalid `id`")
			}
		}
	}
	return nil
}

// ListNotes returns the caller's notes, newest update first.
// GET /api/notes?searchTerm=&folderId=&tagId=
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	query := r.URL.Query()
	filter := &models.NoteFilter{
		SearchTerm: query.Get("searchTerm"),
		FolderID:   query.Get("folderId"),
		TagID:      query.Get("tagId"),
	}

	if filter.SearchTerm != "" {
		if _, err := regexp.Compile(filter.SearchTerm); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "The `searchTerm` is not valid")
			return
		}
	}
	if filter.FolderID != "" {
		if err := validation.Validate(filter.FolderID, is.UUID); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "The `folderId` is not valid")
			return
		}
	}
	if filter.TagID != "" {
		if err := validation.Validate(filter.TagID, is.UUID); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "The `tagId` is not valid")
			return
		}
	}

	notes, err := h.notes.List(r.Context(), identity.UserID, filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, notes)
}

// GetNote retrieves one of the caller's notes with tags populated.
// GET /api/notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	id, ok := requireID(w, r)
	if !ok {
		return
	}

	note, err := h.notes.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// CreateNote creates a note owned by the caller.
// POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	var req createNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, h.logger, err)
		return
	}

	note := &models.Note{
		Title:   req.Title,
		Content: req.Content,
		UserID:  identity.UserID,
	}
	if req.FolderID != "" {
		note.FolderID = &req.FolderID
	}

	tagIDs := req.Tags
	if tagIDs == nil {
		tagIDs = []string{}
	}

	if err := h.notes.Create(r.Context(), note, tagIDs); err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("note created", "id", note.ID, "user_id", identity.UserID)

	w.Header().Set("Location", "/api/notes/"+note.ID)
	httputil.RespondJSON(w, http.StatusCreated, note)
}

// UpdateNote applies the transmitted fields to one of the caller's notes.
// PUT /api/notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, h.logger, err)
		return
	}

	note, err := h.notes.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.FolderID.Present {
		if req.FolderID.Value == nil || *req.FolderID.Value == "" {
			note.FolderID = nil
		} else {
			note.FolderID = req.FolderID.Value
		}
	}

	var tagIDs []string
	if req.Tags.Present {
		tagIDs = req.Tags.Values
		if tagIDs == nil {
			tagIDs = []string{}
		}
	}

	if err := h.notes.Update(r.Context(), note, tagIDs); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote removes one of the caller's notes.
// DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	id, ok := requireID(w, r)
	if !ok {
		return
	}

	if err := h.notes.Delete(r.Context(), id, identity.UserID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"notekeeper/internal/domain/models"
	"notekeeper/internal/domain/repositories"
	"notekeeper/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folders repositories.FolderRepository
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folders repositories.FolderRepository, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folders: folders,
		logger:  logger,
	}
}

type folderRequest struct {
	Name string `json:"name"`
}

func (req *folderRequest) validate() error {
	if err := validation.Validate(req.Name,
		validation.Required.Error("Missing `name` in request body")); err != nil {
		return validationErr(err.Error())
	}
	return nil
}

// ListFolders returns the caller's folders sorted by name.
// GET /api/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	folders, err := h.folders.List(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// GetFolder retrieves one of the caller's folders.
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	id, ok := requireID(w, r)
	if !ok {
		return
	}

	folder, err := h.folders.GetByID(r.Context(), id, identity.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// CreateFolder creates a folder owned by the caller.
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	var req folderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, h.logger, err)
		return
	}

	folder := &models.Folder{
		Name:   req.Name,
		UserID: identity.UserID,
	}

	if err := h.folders.Create(r.Context(), folder); err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("folder created", "id", folder.ID, "user_id", identity.UserID)

	w.Header().Set("Location", "/api/folders/"+folder.ID)
	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// UpdateFolder renames one of the caller's folders.
// PUT /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var req folderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		handleError(w, h.logger, err)
		return
	}

	folder := &models.Folder{
		ID:     id,
		Name:   req.Name,
		UserID: identity.UserID,
	}

	if err := h.folders.Update(r.Context(), folder); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder unlinks the folder from the caller's notes and removes it.
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)

	id, ok := requireID(w, r)
	if !ok {
		return
	}

	if err := h.folders.Delete(r.Context(), id, identity.UserID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

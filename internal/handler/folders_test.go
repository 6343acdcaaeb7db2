package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"notekeeper/internal/domain"
	"notekeeper/internal/domain/models"
)

func TestListFoldersScopedToCaller(t *testing.T) {
	var gotUserID string
	folders := &fakeFolderRepo{
		listFn: func(ctx context.Context, userID string) ([]models.Folder, error) {
			gotUserID = userID
			return []models.Folder{}, nil
		},
	}
	h := NewFolderHandler(folders, testLogger())

	w := httptest.NewRecorder()
	h.ListFolders(w, authedRequest(http.MethodGet, "/api/folders", "", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotUserID != testUserID {
		t.Errorf("list scoped to %q, want %q", gotUserID, testUserID)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("empty list serializes as %q, want []", body)
	}
}

func TestGetFolderIDValidation(t *testing.T) {
	h := NewFolderHandler(&fakeFolderRepo{}, testLogger())

	for _, id := range []string{"not-a-uuid", "123", "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"} {
		w := httptest.NewRecorder()
		h.GetFolder(w, authedRequest(http.MethodGet, "/api/folders/"+id, id, ""))

		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want %d", id, w.Code, http.StatusBadRequest)
			continue
		}
		if got := decodeErrorBody(t, w).Message; got != "The `id` is not valid" {
			t.Errorf("id %q: message = %q", id, got)
		}
	}
}

func TestGetFolderNotFound(t *testing.T) {
	folders := &fakeFolderRepo{
		getByIDFn: func(ctx context.Context, id, userID string) (*models.Folder, error) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		},
	}
	h := NewFolderHandler(folders, testLogger())

	w := httptest.NewRecorder()
	h.GetFolder(w, authedRequest(http.MethodGet, "/api/folders/"+testID, testID, ""))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCreateFolder(t *testing.T) {
	folders := &fakeFolderRepo{
		createFn: func(ctx context.Context, folder *models.Folder) error {
			if folder.UserID != testUserID {
				t.Errorf("folder.UserID = %q, want %q", folder.UserID, testUserID)
			}
			folder.ID = testID
			return nil
		},
	}
	h := NewFolderHandler(folders, testLogger())

	w := httptest.NewRecorder()
	h.CreateFolder(w, authedRequest(http.MethodPost, "/api/folders", "", `{"name": "Archive"}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/api/folders/"+testID {
		t.Errorf("Location = %q, want %q", got, "/api/folders/"+testID)
	}

	var folder models.Folder
	if err := json.Unmarshal(w.Body.Bytes(), &folder); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if folder.Name != "Archive" || folder.ID != testID {
		t.Errorf("response = %+v", folder)
	}
}

func TestCreateFolderMissingName(t *testing.T) {
	h := NewFolderHandler(&fakeFolderRepo{}, testLogger())

	for _, body := range []string{`{}`, `{"name": ""}`} {
		w := httptest.NewRecorder()
		h.CreateFolder(w, authedRequest(http.MethodPost, "/api/folders", "", body))

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want %d", body, w.Code, http.StatusBadRequest)
			continue
		}
		if got := decodeErrorBody(t, w).Message; got != "Missing `name` in request body" {
			t.Errorf("body %s: message = %q", body, got)
		}
	}
}

func TestCreateFolderDuplicateName(t *testing.T) {
	folders := &fakeFolderRepo{
		createFn: func(ctx context.Context, folder *models.Folder) error {
			return &domain.ConflictError{Message: "The folder name already exists", ResourceType: "folder"}
		},
	}
	h := NewFolderHandler(folders, testLogger())

	w := httptest.NewRecorder()
	h.CreateFolder(w, authedRequest(http.MethodPost, "/api/folders", "", `{"name": "Archive"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if got := decodeErrorBody(t, w).Message; got != "The folder name already exists" {
		t.Errorf("message = %q", got)
	}
}

func TestUpdateFolder(t *testing.T) {
	var updated *models.Folder
	folders := &fakeFolderRepo{
		updateFn: func(ctx context.Context, folder *models.Folder) error {
			updated = folder
			return nil
		},
	}
	h := NewFolderHandler(folders, testLogger())

	w := httptest.NewRecorder()
	h.UpdateFolder(w, authedRequest(http.MethodPut, "/api/folders/"+testID, testID, `{"name": "Projects"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}
	if updated == nil || updated.ID != testID || updated.Name != "Projects" || updated.UserID != testUserID {
		t.Errorf("updated = %+v", updated)
	}
}

func TestDeleteFolder(t *testing.T) {
	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{name: "success", deleteErr: nil, wantStatus: http.StatusNoContent},
		{
			name:       "nonexistent or non-owned",
			deleteErr:  fmt.Errorf("folder %s: %w", testID, domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folders := &fakeFolderRepo{
				deleteFn: func(ctx context.Context, id, userID string) error {
					if userID != testUserID {
						t.Errorf("delete scoped to %q, want %q", userID, testUserID)
					}
					return tt.deleteErr
				},
			}
			h := NewFolderHandler(folders, testLogger())

			w := httptest.NewRecorder()
			h.DeleteFolder(w, authedRequest(http.MethodDelete, "/api/folders/"+testID, testID, ""))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusNoContent && w.Body.Len() != 0 {
				t.Errorf("204 body = %q, want empty", w.Body.String())
			}
		})
	}
}

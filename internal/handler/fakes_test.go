package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notekeeper/internal/domain/models"
	"notekeeper/internal/httputil"
)

// Function-field fakes so each test stubs exactly the calls it expects.
// A call without a stub is a test bug and fails loudly.

type fakeUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByIDFn       func(ctx context.Context, id string) (*models.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createFn == nil {
		return errors.New("unexpected Create call")
	}
	return f.createFn(ctx, user)
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getByUsernameFn == nil {
		return nil, errors.New("unexpected GetByUsername call")
	}
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getByIDFn == nil {
		return nil, errors.New("unexpected GetByID call")
	}
	return f.getByIDFn(ctx, id)
}

type fakeFolderRepo struct {
	listFn    func(ctx context.Context, userID string) ([]models.Folder, error)
	getByIDFn func(ctx context.Context, id, userID string) (*models.Folder, error)
	createFn  func(ctx context.Context, folder *models.Folder) error
	updateFn  func(ctx context.Context, folder *models.Folder) error
	deleteFn  func(ctx context.Context, id, userID string) error
}

func (f *fakeFolderRepo) List(ctx context.Context, userID string) ([]models.Folder, error) {
	if f.listFn == nil {
		return nil, errors.New("unexpected List call")
	}
	return f.listFn(ctx, userID)
}

func (f *fakeFolderRepo) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	if f.getByIDFn == nil {
		return nil, errors.New("unexpected GetByID call")
	}
	return f.getByIDFn(ctx, id, userID)
}

func (f *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if f.createFn == nil {
		return errors.New("unexpected Create call")
	}
	return f.createFn(ctx, folder)
}

func (f *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	if f.updateFn == nil {
		return errors.New("unexpected Update call")
	}
	return f.updateFn(ctx, folder)
}

func (f *fakeFolderRepo) Delete(ctx context.Context, id, userID string) error {
	if f.deleteFn == nil {
		return errors.New("unexpected Delete call")
	}
	return f.deleteFn(ctx, id, userID)
}

type fakeTagRepo struct {
	listFn    func(ctx context.Context, userID string) ([]models.Tag, error)
	getByIDFn func(ctx context.Context, id, userID string) (*models.Tag, error)
	createFn  func(ctx context.Context, tag *models.Tag) error
	updateFn  func(ctx context.Context, tag *models.Tag) error
	deleteFn  func(ctx context.Context, id, userID string) error
}

func (f *fakeTagRepo) List(ctx context.Context, userID string) ([]models.Tag, error) {
	if f.listFn == nil {
		return nil, errors.New("unexpected List call")
	}
	return f.listFn(ctx, userID)
}

func (f *fakeTagRepo) GetByID(ctx context.Context, id, userID string) (*models.Tag, error) {
	if f.getByIDFn == nil {
		return nil, errors.New("unexpected GetByID call")
	}
	return f.getByIDFn(ctx, id, userID)
}

func (f *fakeTagRepo) Create(ctx context.Context, tag *models.Tag) error {
	if f.createFn == nil {
		return errors.New("unexpected Create call")
	}
	return f.createFn(ctx, tag)
}

func (f *fakeTagRepo) Update(ctx context.Context, tag *models.Tag) error {
	if f.updateFn == nil {
		return errors.New("unexpected Update call")
	}
	return f.updateFn(ctx, tag)
}

func (f *fakeTagRepo) Delete(ctx context.Context, id, userID string) error {
	if f.deleteFn == nil {
		return errors.New("unexpected Delete call")
	}
	return f.deleteFn(ctx, id, userID)
}

type fakeNoteRepo struct {
	listFn    func(ctx context.Context, userID string, filter *models.NoteFilter) ([]models.Note, error)
	getByIDFn func(ctx context.Context, id, userID string) (*models.Note, error)
	createFn  func(ctx context.Context, note *models.Note, tagIDs []string) error
	updateFn  func(ctx context.Context, note *models.Note, tagIDs []string) error
	deleteFn  func(ctx context.Context, id, userID string) error
}

func (f *fakeNoteRepo) List(ctx context.Context, userID string, filter *models.NoteFilter) ([]models.Note, error) {
	if f.listFn == nil {
		return nil, errors.New("unexpected List call")
	}
	return f.listFn(ctx, userID, filter)
}

func (f *fakeNoteRepo) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	if f.getByIDFn == nil {
		return nil, errors.New("unexpected GetByID call")
	}
	return f.getByIDFn(ctx, id, userID)
}

func (f *fakeNoteRepo) Create(ctx context.Context, note *models.Note, tagIDs []string) error {
	if f.createFn == nil {
		return errors.New("unexpected Create call")
	}
	return f.createFn(ctx, note, tagIDs)
}

func (f *fakeNoteRepo) Update(ctx context.Context, note *models.Note, tagIDs []string) error {
	if f.updateFn == nil {
		return errors.New("unexpected Update call")
	}
	return f.updateFn(ctx, note, tagIDs)
}

func (f *fakeNoteRepo) Delete(ctx context.Context, id, userID string) error {
	if f.deleteFn == nil {
		return errors.New("unexpected Delete call")
	}
	return f.deleteFn(ctx, id, userID)
}

// Shared test plumbing

const (
	testUserID = "5f3b1c2d-6e7a-4b8c-9d0e-1f2a3b4c5d6e"
	testID     = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// authedRequest builds a request carrying the test identity and, when the
// pattern has an {id}, the given path value.
func authedRequest(method, target, id string, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if id != "" {
		r.SetPathValue("id", id)
	}
	return httputil.WithIdentity(r, httputil.Identity{UserID: testUserID, Username: "ann"})
}

// decodeErrorBody parses the uniform error envelope.
func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorBody {
	t.Helper()
	var body httputil.ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (body %q)", err, w.Body.String())
	}
	return body
}

package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-microblog-api/internal/apperr"
	"go-microblog-api/internal/domain"
	"go-microblog-api/internal/service"
	"go-microblog-api/internal/transport/http/handler"
)

// memStore is an in-memory UserStore and PostStore with the same constraint
// behavior the gorm repos report: unique email/username, posts referencing an
// existing owner, cascade on user delete.
type memStore struct {
	mu     sync.Mutex
	users  map[int]*domain.User
	posts  map[int]*domain.Post
	nextID int

	// failErr, when set, makes user reads fail with a raw driver-style error.
	failErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[int]*domain.User{},
		posts:  map[int]*domain.Post{},
		nextID: 1,
	}
}

func (m *memStore) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if other.Email == u.Email {
			return &domain.StorageError{Code: domain.StorageUniqueViolation, Fields: []string{"email"}}
		}
		if other.Username == u.Username {
			return &domain.StorageError{Code: domain.StorageUniqueViolation, Fields: []string{"username"}}
		}
	}
	u.ID = m.nextID
	m.nextID++
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id int) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) Update(ctx context.Context, id int, cols map[string]any) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, &domain.StorageError{Code: domain.StorageNotFound}
	}
	for col, v := range cols {
		switch col {
		case "full_name":
			u.FullName = v.(string)
		case "email":
			u.Email = v.(string)
		case "username":
			u.Username = v.(string)
		}
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) Delete(ctx context.Context, id int) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, &domain.StorageError{Code: domain.StorageNotFound}
	}
	for pid, p := range m.posts {
		if p.UserID == id {
			delete(m.posts, pid)
		}
	}
	delete(m.users, id)
	return u, nil
}

func (m *memStore) CreatePost(ctx context.Context, p *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[p.UserID]; !ok {
		return &domain.StorageError{Code: domain.StorageForeignKeyViolation}
	}
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *memStore) FindPostByID(ctx context.Context, id int) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) UpdatePost(ctx context.Context, id, userID int, cols map[string]any) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok || p.UserID != userID {
		return nil, &domain.StorageError{Code: domain.StorageNotFound}
	}
	for col, v := range cols {
		switch col {
		case "title":
			p.Title = v.(string)
		case "description":
			p.Description = v.(string)
		}
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) DeletePost(ctx context.Context, id int) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, &domain.StorageError{Code: domain.StorageNotFound}
	}
	delete(m.posts, id)
	return p, nil
}

func (m *memStore) ListByUser(ctx context.Context, userID int) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Post, 0)
	for _, p := range m.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// postStore adapts memStore's post methods to the PostStore interface.
type postStore struct{ *memStore }

func (s postStore) Create(ctx context.Context, p *domain.Post) error { return s.CreatePost(ctx, p) }
func (s postStore) FindByID(ctx context.Context, id int) (*domain.Post, error) {
	return s.FindPostByID(ctx, id)
}
func (s postStore) Update(ctx context.Context, id, userID int, cols map[string]any) (*domain.Post, error) {
	return s.UpdatePost(ctx, id, userID, cols)
}
func (s postStore) Delete(ctx context.Context, id int) (*domain.Post, error) {
	return s.DeletePost(ctx, id)
}

func newTestEngine() *gin.Engine {
	e, _ := newTestEngineStore()
	return e
}

func newTestEngineStore() (*gin.Engine, *memStore) {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	store := newMemStore()
	users := service.NewUserService(store, log)
	posts := service.NewPostService(postStore{store}, log)
	uh := handler.NewUserHandler(users, posts, log)
	ph := handler.NewPostHandler(posts, log)
	return NewAPIEngine(log, "/api", uh, ph), store
}

func doJSON(t *testing.T, e *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == nil {
		rd = bytes.NewReader(nil)
	} else {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func errorsOf(t *testing.T, w *httptest.ResponseRecorder) []apperr.Entry {
	t.Helper()
	var body struct {
		Errors []apperr.Entry `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Errors
}

func johnDoe() map[string]any {
	return map[string]any{
		"fullName":    "John Doe",
		"email":       "john.doe@email.com",
		"username":    "johndoe1377",
		"dateOfBirth": "1970-01-01",
	}
}

func TestUserLifecycle(t *testing.T) {
	e := newTestEngine()

	w := doJSON(t, e, http.MethodPost, "/api/users", johnDoe())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "johndoe1377", created.Username)

	w = doJSON(t, e, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.Email, fetched.Email)
	assert.Equal(t, created.FullName, fetched.FullName)

	// A read changes nothing: repeating it yields the identical body.
	again := doJSON(t, e, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, w.Body.String(), again.Body.String())

	w = doJSON(t, e, http.MethodPut, "/api/users/1", map[string]any{"fullName": "Max Maxon"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Max Maxon", updated.FullName)
	assert.Equal(t, "johndoe1377", updated.Username)

	w = doJSON(t, e, http.MethodDelete, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, e, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	entries := errorsOf(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "User does not exist.", entries[0].Msg)
	assert.Equal(t, 1, entries[0].ResourceID)
}

func TestCreateUser_InvalidField(t *testing.T) {
	e := newTestEngine()

	body := johnDoe()
	body["email"] = "john.doe"
	w := doJSON(t, e, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	entries := errorsOf(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "Invalid email provided.", entries[0].Msg)
	assert.Equal(t, "email", entries[0].Path)
	assert.Equal(t, "body", entries[0].Location)
}

func TestCreateUser_MissingBody(t *testing.T) {
	e := newTestEngine()

	for _, body := range []any{nil, map[string]any{}} {
		w := doJSON(t, e, http.MethodPost, "/api/users", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		entries := errorsOf(t, w)
		require.Len(t, entries, 1)
		assert.Equal(t, "Missing request body! Please send a JSON body with the request.", entries[0].Msg)
	}
}

func TestCreateUser_MissingRequiredField(t *testing.T) {
	e := newTestEngine()

	body := johnDoe()
	delete(body, "username")
	w := doJSON(t, e, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	entries := errorsOf(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "Missing required input: username", entries[0].Msg)
}

func TestCreateUser_Duplicate(t *testing.T) {
	e := newTestEngine()

	require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodPost, "/api/users", johnDoe()).Code)

	w := doJSON(t, e, http.MethodPost, "/api/users", johnDoe())
	require.Equal(t, http.StatusBadRequest, w.Code)
	entries := errorsOf(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "User input contains duplicate identifiers.", entries[0].Msg)
	assert.Equal(t, "email", entries[0].Value)
}

func TestInvalidIDParam(t *testing.T) {
	e := newTestEngine()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/users/bogusId"},
		{http.MethodDelete, "/api/users/-1"},
		{http.MethodGet, "/api/posts/bogusId"},
		{http.MethodPut, "/api/users/bogusId"},
	} {
		w := doJSON(t, e, tc.method, tc.path, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		entries := errorsOf(t, w)
		require.Len(t, entries, 1)
		assert.Equal(t, "Invalid id parameter. Must be a positive integer.", entries[0].Msg)
	}
}

func TestPostLifecycle(t *testing.T) {
	e := newTestEngine()
	require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodPost, "/api/users", johnDoe()).Code)

	w := doJSON(t, e, http.MethodPost, "/api/posts", map[string]any{
		"userId": 1, "title": "Happy", "description": "Happy days are here again",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created domain.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.UserID)
	assert.Equal(t, "Happy", created.Title)

	w = doJSON(t, e, http.MethodPut, "/api/posts/2", map[string]any{
		"userId": 1, "title": "Happier",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated domain.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Happier", updated.Title)
	assert.Equal(t, "Happy days are here again", updated.Description)

	// Wrong owner reads as not-found, never as someone else's post.
	w = doJSON(t, e, http.MethodPut, "/api/posts/2", map[string]any{
		"userId": 99, "title": "Hijacked",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post does not exist.", errorsOf(t, w)[0].Msg)

	w = doJSON(t, e, http.MethodDelete, "/api/posts/2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, e, http.MethodGet, "/api/posts/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "{}", w.Body.String())
}

func TestCreatePost_UnknownOwner(t *testing.T) {
	e := newTestEngine()

	w := doJSON(t, e, http.MethodPost, "/api/posts", map[string]any{
		"userId": 99, "title": "Happy", "description": "nope",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	entries := errorsOf(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "User is not authorized to perform this action.", entries[0].Msg)
	assert.Equal(t, "userId", entries[0].Value)
}

func TestRetrievePost_AbsentIsEmptyObject(t *testing.T) {
	e := newTestEngine()

	w := doJSON(t, e, http.MethodGet, "/api/posts/420", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "{}", w.Body.String())
}

func TestDeleteUser_CascadesToPosts(t *testing.T) {
	e := newTestEngine()
	require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodPost, "/api/users", johnDoe()).Code)
	for _, title := range []string{"first", "second"} {
		w := doJSON(t, e, http.MethodPost, "/api/posts", map[string]any{
			"userId": 1, "title": title, "description": title,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, e, http.MethodGet, "/api/users/1/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []domain.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 2)

	require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodDelete, "/api/users/1", nil).Code)

	w = doJSON(t, e, http.MethodGet, "/api/posts/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "{}", w.Body.String())

	w = doJSON(t, e, http.MethodGet, "/api/users/1/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListPosts_UnknownUser(t *testing.T) {
	e := newTestEngine()

	w := doJSON(t, e, http.MethodGet, "/api/users/420/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestUnexpectedStorageFailure_GenericResponse(t *testing.T) {
	e, store := newTestEngineStore()
	store.failErr = errors.New("dial tcp 10.0.0.5:3306: connect: connection refused")

	w := doJSON(t, e, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	entries := errorsOf(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "Encountered an unexpected error while processing the request.", entries[0].Msg)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEngine()
	require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodGet, "/health", nil).Code)

	w := doJSON(t, e, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "microblog_http_requests_total")
	assert.Contains(t, w.Body.String(), "microblog_http_request_duration_seconds")
}

func TestHealth(t *testing.T) {
	e := newTestEngine()

	w := doJSON(t, e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

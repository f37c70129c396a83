package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/ribgsilva/fundoo-notes/business/v1/note"
	"github.com/ribgsilva/fundoo-notes/business/v1/note/notetest"
	"github.com/ribgsilva/fundoo-notes/persistence/v1/cache"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type api struct {
	router *gin.Engine
	store  *notetest.Store
}

func newApi(t *testing.T) api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	store := notetest.NewStore()
	store.AddUsers(1, 2, 3)
	svc := note.NewService(zaptest.NewLogger(t).Sugar(), store, cache.NewRedis(rdb, time.Second), nil, note.Config{CacheTTL: time.Hour})

	router := gin.New()
	MapDefaults(router)
	MapApi(router, svc)
	return api{router: router, store: store}
}

func (a api) do(t *testing.T, method, path string, user uint64, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if user != 0 {
		req.Header.Set(handler.UserHeader, fmt.Sprint(user))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a api) create(t *testing.T, user uint64, title string) note.Note {
	t.Helper()
	w := a.do(t, http.MethodPost, "/v1/notes", user, map[string]any{"title": title})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[note.Note](t, w)
}

func TestHealthcheck(t *testing.T) {
	a := newApi(t)
	w := a.do(t, http.MethodGet, "/v1/healthcheck", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMissingCaller(t *testing.T) {
	a := newApi(t)
	for _, path := range []string{"/v1/notes", "/v1/notes/1", "/v1/notes/archived"} {
		w := a.do(t, http.MethodGet, path, 0, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCreateAndGet(t *testing.T) {
	a := newApi(t)

	created := a.create(t, 1, "groceries")
	require.Equal(t, uint64(1), created.OwnerId)
	require.NotZero(t, created.Id)

	w := a.do(t, http.MethodGet, fmt.Sprintf("/v1/notes/%d", created.Id), 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "groceries", decode[note.Note](t, w).Title)

	w = a.do(t, http.MethodGet, fmt.Sprintf("/v1/notes/%d", created.Id), 2, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodGet, "/v1/notes/abc", 1, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, "/v1/notes", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]note.Note](t, w), 1)
}

func TestValidation(t *testing.T) {
	a := newApi(t)

	w := a.do(t, http.MethodPost, "/v1/notes", 1, map[string]any{"description": "no title"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[struct {
		Message string            `json:"message"`
		Details []note.FieldError `json:"details"`
	}](t, w)
	require.Equal(t, "validation failed", body.Message)
	require.Equal(t, "title", body.Details[0].Field)

	w = a.do(t, http.MethodPost, "/v1/notes", 1, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndViews(t *testing.T) {
	a := newApi(t)
	n := a.create(t, 1, "draft")
	path := fmt.Sprintf("/v1/notes/%d", n.Id)

	w := a.do(t, http.MethodPatch, path, 1, map[string]any{"title": "final", "color": "#fff475"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[note.Note](t, w)
	require.Equal(t, "final", updated.Title)
	require.Equal(t, "#fff475", updated.Color)

	w = a.do(t, http.MethodPatch, path+"/archive", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decode[note.Note](t, w).IsArchive)

	w = a.do(t, http.MethodGet, "/v1/notes", 1, nil)
	require.Empty(t, decode[[]note.Note](t, w))
	w = a.do(t, http.MethodGet, "/v1/notes/archived", 1, nil)
	require.Len(t, decode[[]note.Note](t, w), 1)

	w = a.do(t, http.MethodPatch, path+"/trash", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/v1/notes/archived", 1, nil)
	require.Empty(t, decode[[]note.Note](t, w))
	w = a.do(t, http.MethodGet, "/v1/notes/trashed", 1, nil)
	require.Len(t, decode[[]note.Note](t, w), 1)
}

func TestUpdate_NullReminder(t *testing.T) {
	a := newApi(t)
	at := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	w := a.do(t, http.MethodPost, "/v1/notes", 1, map[string]any{"title": "call", "reminder": at})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	n := decode[note.Note](t, w)
	require.NotNil(t, n.Reminder)
	path := fmt.Sprintf("/v1/notes/%d", n.Id)

	w = a.do(t, http.MethodPatch, path, 1, map[string]any{"title": "call mom"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, decode[note.Note](t, w).Reminder)

	w = a.do(t, http.MethodPatch, path, 1, map[string]any{"reminder": nil})
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, decode[note.Note](t, w).Reminder)

	w = a.do(t, http.MethodGet, path, 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, decode[note.Note](t, w).Reminder)

	w = a.do(t, http.MethodPatch, path, 1, map[string]any{"reminder": "tomorrow"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSharing(t *testing.T) {
	a := newApi(t)
	n := a.create(t, 1, "shared")
	path := fmt.Sprintf("/v1/notes/%d", n.Id)

	w := a.do(t, http.MethodPost, path+"/collaborators", 1, map[string]any{"userIds": []uint64{2, 99}})
	require.Equal(t, http.StatusMultiStatus, w.Code)
	res := decode[note.ShareResult](t, w)
	require.Equal(t, []uint64{2}, res.Added)
	require.Equal(t, []uint64{99}, res.Invalid)

	w = a.do(t, http.MethodPost, path+"/collaborators", 1, map[string]any{"userIds": []uint64{2}})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPost, path+"/collaborators", 1, map[string]any{"userIds": []uint64{1}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, path, 2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodPatch, path, 2, map[string]any{"description": "by 2"})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodDelete, path, 2, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(t, http.MethodPost, path+"/collaborators", 2, map[string]any{"userIds": []uint64{3}})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodDelete, path+"/collaborators", 1, map[string]any{"userIds": []uint64{2}})
	require.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(t, http.MethodGet, path, 2, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestLabelsAndDelete(t *testing.T) {
	a := newApi(t)
	n := a.create(t, 1, "labelled")
	path := fmt.Sprintf("/v1/notes/%d", n.Id)
	label := a.store.AddLabel(1)

	w := a.do(t, http.MethodPost, path+"/labels", 1, map[string]any{"labelIds": []uint64{label}})
	require.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(t, http.MethodGet, path, 1, nil)
	require.Equal(t, []uint64{label}, decode[note.Note](t, w).Labels)

	w = a.do(t, http.MethodDelete, path+"/labels", 1, map[string]any{"labelIds": []uint64{label}})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodDelete, path, 1, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(t, http.MethodGet, path, 1, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(t, http.MethodDelete, path, 1, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreFailureIsHidden(t *testing.T) {
	a := newApi(t)
	a.store.SetErr(errors.New("dial tcp 10.0.0.1:3306: connection refused"))

	w := a.do(t, http.MethodGet, "/v1/notes", 1, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "internal error", decode[handler.Error](t, w).Message)
	require.NotContains(t, w.Body.String(), "10.0.0.1")
}

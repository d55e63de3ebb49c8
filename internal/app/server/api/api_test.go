package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"timetrack/internal/app/server/crypto"
	"timetrack/internal/domain/category"
	"timetrack/internal/domain/timelog"
	"timetrack/internal/domain/user"
	"timetrack/internal/infrastructure/storage/memory"
)

const (
	testKey  = "s3cret-key"
	testSalt = "pepper"
)

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func newClient(t *testing.T) *client {
	t.Helper()

	gate, err := crypto.NewKeyGate("", testSalt, crypto.AlgorithmHMACSHA256)
	require.NoError(t, err)
	gate, err = crypto.NewKeyGate(gate.Digest(testKey), testSalt, crypto.AlgorithmHMACSHA256)
	require.NoError(t, err)

	store := memory.New()
	repos := Repositories{Users: store.Users(), Categories: store.Categories(), Times: store.Times()}

	srv := httptest.NewServer(New(repos, gate, slog.Default()))
	t.Cleanup(srv.Close)

	return &client{t: t, srv: srv}
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.srv.URL+path, &buf)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out.Bytes()
}

func (c *client) decode(data []byte) map[string]any {
	c.t.Helper()
	var m map[string]any
	require.NoError(c.t, json.Unmarshal(data, &m))
	return m
}

func (c *client) createUser(email, password string) map[string]any {
	c.t.Helper()
	status, body := c.do(http.MethodPost, "/user/"+testKey, map[string]any{
		"userName": "a",
		"email":    email,
		"password": password,
	})
	require.Equal(c.t, http.StatusOK, status, string(body))
	return c.decode(body)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	c := newClient(t)

	u := c.createUser("a@x.com", "p")

	assert.NotEmpty(t, u["userId"])
	assert.NotEmpty(t, u["salt"])
	assert.NotEqual(t, "p", u["password"])
	assert.Len(t, u["password"], 128)
	assert.Len(t, u["salt"], 32)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	c := newClient(t)
	c.createUser("a@x.com", "p")

	status, _ := c.do(http.MethodPost, "/user/"+testKey, map[string]any{
		"userName": "b",
		"email":    "A@x.com",
		"password": "q",
	})

	assert.Equal(t, http.StatusConflict, status)
}

func TestLogin(t *testing.T) {
	c := newClient(t)
	u := c.createUser("a@x.com", "p")

	tests := []struct {
		name       string
		email      string
		password   string
		wantStatus int
	}{
		{name: "correct password", email: "a@x.com", password: "p", wantStatus: http.StatusCreated},
		{name: "wrong password", email: "a@x.com", password: "q", wantStatus: http.StatusBadRequest},
		{name: "unknown email", email: "nobody@x.com", password: "p", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := c.do(http.MethodPost, "/login/"+testKey+"/", map[string]any{
				"email":    tt.email,
				"password": tt.password,
			})

			require.Equal(t, tt.wantStatus, status, string(body))
			if status == http.StatusCreated {
				assert.Equal(t, u["userId"], c.decode(body)["userId"])
			}
		})
	}
}

func TestDeleteUser(t *testing.T) {
	c := newClient(t)
	u := c.createUser("a@x.com", "p")
	id := u["userId"].(string)

	status, _ := c.do(http.MethodDelete, "/user/"+testKey+"/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := c.do(http.MethodDelete, "/user/"+testKey+"/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), c.decode(body)["affected"])

	status, _ = c.do(http.MethodGet, "/user/"+testKey+"/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateTime_WithCategory(t *testing.T) {
	c := newClient(t)
	u := c.createUser("a@x.com", "p")
	userID := u["userId"].(string)

	status, body := c.do(http.MethodPost, "/category/"+testKey+"/"+userID, map[string]any{
		"categoryName":  "work",
		"categoryColor": "#336699",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	categoryID := c.decode(body)["categoryID"].(string)

	status, body = c.do(http.MethodPost, "/time/"+testKey+"/"+userID, map[string]any{
		"name":       "work",
		"startTime":  "2024-01-01T00:00:00Z",
		"categoryID": categoryID,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	entry := c.decode(body)
	assert.Nil(t, entry["endTime"])
	assert.Contains(t, entry, "endTime")
	start, err := time.Parse(time.RFC3339, entry["startTime"].(string))
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, categoryID, entry["categoryID"])

	status, body = c.do(http.MethodGet, "/category/"+testKey+"/"+categoryID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, c.decode(body)["times"], 1)

	status, body = c.do(http.MethodGet, "/times/"+testKey+"/"+userID, nil)
	require.Equal(t, http.StatusOK, status)
	var times []map[string]any
	require.NoError(t, json.Unmarshal(body, &times))
	require.Len(t, times, 1)
	assert.Equal(t, "work", times[0]["category"].(map[string]any)["categoryName"])
}

func TestCreateTime_ForeignCategory(t *testing.T) {
	c := newClient(t)
	owner := c.createUser("a@x.com", "p")["userId"].(string)
	other := c.createUser("b@x.com", "p")["userId"].(string)

	_, body := c.do(http.MethodPost, "/category/"+testKey+"/"+owner, map[string]any{
		"categoryName":  "work",
		"categoryColor": "#336699",
	})
	categoryID := c.decode(body)["categoryID"].(string)

	status, _ := c.do(http.MethodPost, "/time/"+testKey+"/"+other, map[string]any{
		"name":       "work",
		"startTime":  "2024-01-01T00:00:00Z",
		"categoryID": categoryID,
	})

	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteCategory_KeepsTimes(t *testing.T) {
	c := newClient(t)
	userID := c.createUser("a@x.com", "p")["userId"].(string)

	_, body := c.do(http.MethodPost, "/category/"+testKey+"/"+userID, map[string]any{
		"categoryName":  "work",
		"categoryColor": "#336699",
	})
	categoryID := c.decode(body)["categoryID"].(string)

	_, body = c.do(http.MethodPost, "/time/"+testKey+"/"+userID, map[string]any{
		"name":       "work",
		"startTime":  "2024-01-01T00:00:00Z",
		"categoryID": categoryID,
	})
	timeID := c.decode(body)["timeID"].(string)

	status, _ := c.do(http.MethodDelete, "/category/"+testKey+"/"+categoryID, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = c.do(http.MethodGet, "/time/"+testKey+"/"+timeID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, c.decode(body)["categoryID"])
}

func TestAPIKey_Rejected(t *testing.T) {
	c := newClient(t)

	for _, path := range []string{"/users/wrong", "/categories/wrong", "/times/wrong", "/user/wrong/00000000-0000-0000-0000-000000000001"} {
		status, body := c.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusForbidden, status, path)
		assert.Empty(t, body, path)
	}

	status, _ := c.do(http.MethodPost, "/login/wrong", map[string]any{"email": "a@x.com", "password": "p"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestHealth_NoKey(t *testing.T) {
	c := newClient(t)

	status, body := c.do(http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", c.decode(body)["status"])
}

func TestTrailingSlash(t *testing.T) {
	c := newClient(t)

	status, body := c.do(http.MethodGet, "/users/"+testKey+"/", nil)

	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}

func TestNew_SchemaNamesPerPackage(t *testing.T) {
	c := newClient(t)

	status, body := c.do(http.MethodGet, "/openapi.json", nil)
	require.Equal(t, http.StatusOK, status)

	var doc struct {
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))

	for _, name := range []string{
		"UserCreateRequest", "UserPatch", "User",
		"CategoryCreateRequest", "CategoryPatch", "Category",
		"TimelogCreateRequest", "TimelogPatch", "TimelogEntry",
		"ErrorModel",
	} {
		assert.Contains(t, doc.Components.Schemas, name)
	}
}

func TestSchemaNamer(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{typ: reflect.TypeOf(user.CreateRequest{}), want: "UserCreateRequest"},
		{typ: reflect.TypeOf(&category.Patch{}), want: "CategoryPatch"},
		{typ: reflect.TypeOf(timelog.Entry{}), want: "TimelogEntry"},
		{typ: reflect.TypeOf(user.User{}), want: "User"},
		{typ: reflect.TypeOf(huma.ErrorModel{}), want: "ErrorModel"},
		{typ: reflect.TypeOf(struct{ A int }{}), want: "Hint"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, schemaNamer(tt.typ, "hint"))
		})
	}
}

func TestCategory_EmptyTimesList(t *testing.T) {
	c := newClient(t)
	userID := c.createUser("a@x.com", "p")["userId"].(string)

	_, body := c.do(http.MethodPost, "/category/"+testKey+"/"+userID, map[string]any{
		"categoryName":  "idle",
		"categoryColor": "#000000",
	})
	created := c.decode(body)
	assert.Equal(t, []any{}, created["times"])

	status, body := c.do(http.MethodGet, "/category/"+testKey+"/"+created["categoryID"].(string), nil)
	require.Equal(t, http.StatusOK, status)
	got := c.decode(body)
	require.Contains(t, got, "times")
	assert.Equal(t, []any{}, got["times"])

	status, body = c.do(http.MethodGet, "/categories/"+testKey+"/"+userID, nil)
	require.Equal(t, http.StatusOK, status)
	var owned []map[string]any
	require.NoError(t, json.Unmarshal(body, &owned))
	require.Len(t, owned, 1)
	assert.Equal(t, []any{}, owned[0]["times"])
}

func TestEmptyKeySegment_NotFound(t *testing.T) {
	c := newClient(t)

	status, _ := c.do(http.MethodGet, "/users/", nil)

	assert.Equal(t, http.StatusNotFound, status)
}

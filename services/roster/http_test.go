package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	roster "github.com/skateapp/roster-sync/repos/roster"
)

func newTestRouter(store roster.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHTTPHandler(HTTPOptions{
		Service: NewRosterService(store),
		Router:  router,
	})
	return router
}

func doJSON(router *gin.Engine, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetRosterSeedsEmptyStoreOnce(t *testing.T) {
	store := roster.NewMemoryStore()
	router := newTestRouter(store)

	w := doJSON(router, "GET", "/roster", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var first []roster.Player
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, roster.SeedPlayers(), first)

	// The seed must have been persisted, not just returned.
	w = doJSON(router, "GET", "/roster", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var second []roster.Player
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first, second)
	assert.Equal(t, w.Header().Get(VersionHeader), "1")
}

func TestGetRosterBackendDown(t *testing.T) {
	store := roster.NewMemoryStore()
	store.FailWith = roster.ErrUnavailable
	router := newTestRouter(store)

	w := doJSON(router, "GET", "/roster", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPostRosterReplacesDocument(t *testing.T) {
	store := roster.NewMemoryStore()
	router := newTestRouter(store)

	players := []roster.Player{
		{ID: "1", Name: "Wayne Gretzky", Email: "wayne@example.com", Position: roster.PositionForward, SkillLevel: 10, Status: roster.StatusPending, Role: roster.RoleRegular},
	}
	body, _ := json.Marshal(players)

	w := doJSON(router, "POST", "/roster", body, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	stored, _, err := store.GetPlayers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, players, stored)
}

func TestPostRosterRejectsMissingBody(t *testing.T) {
	router := newTestRouter(roster.NewMemoryStore())

	w := doJSON(router, "POST", "/roster", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/roster", []byte("not json"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostRosterStaleVersionConflicts(t *testing.T) {
	store := roster.NewMemoryStore()
	router := newTestRouter(store)

	w := doJSON(router, "GET", "/roster", nil, nil)
	version := w.Header().Get(VersionHeader)
	assert.NotEmpty(t, version)

	players := []roster.Player{{ID: "1", Name: "A", Email: "a@example.com"}}
	body, _ := json.Marshal(players)

	// A concurrent writer bumps the version between our read and write.
	_, err := store.SetPlayers(context.Background(), players)
	assert.NoError(t, err)

	w = doJSON(router, "POST", "/roster", body, map[string]string{VersionHeader: version})
	assert.Equal(t, http.StatusConflict, w.Code)

	// With the fresh token the same write goes through.
	_, current, err := store.GetPlayers(context.Background())
	assert.NoError(t, err)
	w = doJSON(router, "POST", "/roster", body, map[string]string{VersionHeader: strconv.FormatInt(current, 10)})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetRsvpCaseInsensitive(t *testing.T) {
	store := roster.NewMemoryStore()
	_, err := store.SetPlayers(context.Background(), []roster.Player{
		{ID: "7", Name: "Wayne Gretzky", Email: "Wayne@Example.com", Position: roster.PositionForward, Status: roster.StatusPending},
	})
	assert.NoError(t, err)
	router := newTestRouter(store)

	for _, email := range []string{"Wayne@Example.com", "wayne@example.com", "WAYNE@EXAMPLE.COM"} {
		w := doJSON(router, "GET", "/rsvp?email="+email, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp RsvpResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "7", resp.ID)
		assert.Equal(t, roster.StatusPending, resp.Status)
	}
}

func TestGetRsvpMissingEmail(t *testing.T) {
	router := newTestRouter(roster.NewMemoryStore())
	w := doJSON(router, "GET", "/rsvp", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRsvpUnknownEmail(t *testing.T) {
	store := roster.NewMemoryStore()
	_, err := store.SetPlayers(context.Background(), roster.SeedPlayers())
	assert.NoError(t, err)
	router := newTestRouter(store)

	w := doJSON(router, "GET", "/rsvp?email=nobody@example.com", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRsvpEmptyStore(t *testing.T) {
	router := newTestRouter(roster.NewMemoryStore())
	w := doJSON(router, "GET", "/rsvp?email=wayne@example.com", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostRsvpUpdatesStatus(t *testing.T) {
	store := roster.NewMemoryStore()
	_, err := store.SetPlayers(context.Background(), []roster.Player{
		{ID: "1", Name: "Wayne Gretzky", Email: "wayne@example.com", Status: roster.StatusPending},
	})
	assert.NoError(t, err)
	router := newTestRouter(store)

	body, _ := json.Marshal(RsvpRequest{Email: "WAYNE@example.com", Status: "ACCEPTED"})

	// Same submission twice, both report success with the same status.
	for i := 0; i < 2; i++ {
		w := doJSON(router, "POST", "/rsvp", body, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"name":"Wayne Gretzky","status":"ACCEPTED"}`, w.Body.String())
	}

	players, _, err := store.GetPlayers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, roster.StatusAccepted, players[0].Status)
}

func TestPostRsvpChangedMindOverwrites(t *testing.T) {
	store := roster.NewMemoryStore()
	_, err := store.SetPlayers(context.Background(), []roster.Player{
		{ID: "1", Name: "Wayne Gretzky", Email: "wayne@example.com", Status: roster.StatusAccepted},
	})
	assert.NoError(t, err)
	router := newTestRouter(store)

	body, _ := json.Marshal(RsvpRequest{Email: "wayne@example.com", Status: "DECLINED"})
	w := doJSON(router, "POST", "/rsvp", body, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	players, _, err := store.GetPlayers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, roster.StatusDeclined, players[0].Status)
}

func TestPostRsvpValidation(t *testing.T) {
	store := roster.NewMemoryStore()
	before := roster.SeedPlayers()
	_, err := store.SetPlayers(context.Background(), before)
	assert.NoError(t, err)
	router := newTestRouter(store)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"missing status", `{"email":"wayne@example.com"}`, http.StatusBadRequest},
		{"missing email", `{"status":"ACCEPTED"}`, http.StatusBadRequest},
		{"admin-only status", `{"email":"wayne@example.com","status":"PENDING"}`, http.StatusBadRequest},
		{"admin-only status 2", `{"email":"wayne@example.com","status":"NO_REPLY"}`, http.StatusBadRequest},
		{"unknown status", `{"email":"wayne@example.com","status":"MAYBE"}`, http.StatusBadRequest},
		{"unknown email", `{"email":"nobody@example.com","status":"ACCEPTED"}`, http.StatusNotFound},
	}

	for _, tc := range cases {
		w := doJSON(router, "POST", "/rsvp", []byte(tc.body), nil)
		if w.Code != tc.code {
			t.Errorf("%s: expected %d, got %d (%s)", tc.name, tc.code, w.Code, w.Body.String())
		}
	}

	// None of the rejected requests may have touched the document.
	after, _, err := store.GetPlayers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}

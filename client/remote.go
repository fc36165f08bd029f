package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	roster "github.com/skateapp/roster-sync/repos/roster"
)

var ErrConflict = errors.New("roster version conflict")

const versionHeader = "X-Roster-Version"

// Remote talks to the roster HTTP API.
type Remote struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Load fetches the full roster and its version token. A non-OK status or a
// non-JSON payload is an error, the engine falls back to its cache then.
func (r *Remote) Load(ctx context.Context) ([]roster.Player, int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", r.baseURL+"/roster", nil)
	if err != nil {
		return nil, 0, err
	}

	response, err := r.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, 0, xerrors.Errorf("load roster: status %d", response.StatusCode)
	}
	if ct := response.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return nil, 0, xerrors.Errorf("load roster: unexpected content type %q", ct)
	}

	var players []roster.Player
	if err := json.NewDecoder(response.Body).Decode(&players); err != nil {
		return nil, 0, xerrors.Errorf("load roster: %w", err)
	}

	version, _ := strconv.ParseInt(response.Header.Get(versionHeader), 10, 64)
	return players, version, nil
}

// Save replaces the remote roster. version >= 0 makes the write conditional,
// a stale token comes back as ErrConflict.
func (r *Remote) Save(ctx context.Context, players []roster.Player, version int64) (int64, error) {
	body, err := json.Marshal(players)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/roster", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if version >= 0 {
		req.Header.Set(versionHeader, strconv.FormatInt(version, 10))
	}

	response, err := r.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusConflict {
		return 0, ErrConflict
	}
	if response.StatusCode != http.StatusOK {
		return 0, xerrors.Errorf("save roster: status %d", response.StatusCode)
	}

	next, _ := strconv.ParseInt(response.Header.Get(versionHeader), 10, 64)
	return next, nil
}

package roster

import roster "github.com/skateapp/roster-sync/repos/roster"

// VersionHeader carries the roster document version on reads and the
// expected version on conditional writes.
const VersionHeader = "X-Roster-Version"

type RsvpRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

type RsvpResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Position string            `json:"position"`
	Status   roster.RsvpStatus `json:"status"`
}

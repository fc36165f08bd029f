package roster

// RsvpStatus is a player's response to the current invite round.
type RsvpStatus string

const (
	StatusPending  RsvpStatus = "PENDING"
	StatusAccepted RsvpStatus = "ACCEPTED"
	StatusDeclined RsvpStatus = "DECLINED"
	StatusNoReply  RsvpStatus = "NO_REPLY"
)

// ValidStatus reports whether s is one of the four enumerated statuses.
func ValidStatus(s RsvpStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusNoReply:
		return true
	}
	return false
}

const (
	PositionForward = "Forward"
	PositionDefense = "Defense"
	PositionGoalie  = "Goalie"
)

const (
	RoleRegular = "Regular"
	RoleSub     = "Sub"
)

// Player is one roster entry. The email address is the de-facto natural key
// for RSVP lookups; comparison is always case-insensitive.
type Player struct {
	ID         string     `json:"id" firestore:"id"`
	Name       string     `json:"name" firestore:"name"`
	Email      string     `json:"email" firestore:"email"`
	SkillLevel int        `json:"skillLevel" firestore:"skillLevel"`
	Position   string     `json:"position" firestore:"position"`
	Status     RsvpStatus `json:"status" firestore:"status"`
	Role       string     `json:"role" firestore:"role"`
	FeesPaid   bool       `json:"feesPaid" firestore:"feesPaid"`
	Notes      string     `json:"notes,omitempty" firestore:"notes,omitempty"`
}

// SessionConfig describes one scheduled skate. It is never persisted
// server-side, it only travels with notify/suggest requests.
type SessionConfig struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	Location      string `json:"location"`
	MaxPlayers    int    `json:"maxPlayers"`
	MaxGoalies    int    `json:"maxGoalies"`
	InviteMessage string `json:"inviteMessage"`
}

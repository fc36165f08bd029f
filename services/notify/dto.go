package notify

type RegistrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Role     string `json:"role"`
}

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AnnouncementRequest struct {
	Secret        string      `json:"secret"`
	SessionDate   string      `json:"sessionDate"`
	SessionTime   string      `json:"sessionTime"`
	Location      string      `json:"location"`
	MaxPlayers    int         `json:"maxPlayers"`
	MaxGoalies    int         `json:"maxGoalies"`
	InviteMessage string      `json:"inviteMessage"`
	Recipients    []Recipient `json:"recipients"`
}

// AnnouncementResult reports the bulk send outcome. A run with some failed
// batches is a partial success, not a failure.
type AnnouncementResult struct {
	TotalRecipients int
	TotalSent       int
	Errors          []string
}

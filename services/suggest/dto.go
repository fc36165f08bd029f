package suggest

type DraftRequest struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Location   string `json:"location"`
	MaxPlayers int    `json:"maxPlayers"`
	MaxGoalies int    `json:"maxGoalies"`
}

type SplitPlayer struct {
	Name       string `json:"name"`
	SkillLevel int    `json:"skillLevel"`
	Position   string `json:"position"`
}

type TeamSplit struct {
	White []string `json:"white"`
	Dark  []string `json:"dark"`
}

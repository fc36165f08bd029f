package suggest

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skateapp/roster-sync/repos/qwen"
)

// FallbackDraft is served whenever the completion backend cannot produce a
// usable invite text. The suggestion feature is cosmetic, it must never
// surface a backend failure to the caller.
const FallbackDraft = "Hey team, Sk8 is on this week! Please RSVP."

type SuggestService struct {
	completer  qwen.Completer
	splitModel string
	draftModel string
}

func NewSuggestService(completer qwen.Completer, splitModel, draftModel string) *SuggestService {
	if splitModel == "" {
		splitModel = "qwen-plus"
	}
	if draftModel == "" {
		draftModel = "qwen-flash"
	}
	return &SuggestService{
		completer:  completer,
		splitModel: splitModel,
		draftModel: draftModel,
	}
}

// DraftEmail asks the backend for invite copy. degraded reports that the
// fixed fallback text was used instead.
func (s *SuggestService) DraftEmail(c *gin.Context, request DraftRequest) (text string, degraded bool) {
	maxGoalies := request.MaxGoalies
	if maxGoalies == 0 {
		maxGoalies = 2
	}

	prompt := fmt.Sprintf(`Write a high-energy, fun, and concise email invitation for a hockey drop-in scrimmage.
Use hockey slang (chirps, celly, dangles) but keep it readable.

Details:
- Date: %s
- Time: %s
- Rink: %s
- Max Skater Spots: %d
- Max Goalie Spots: %d

The call to action is to reply or click the link to claim a spot.
Keep it under 150 words.`, request.Date, request.Time, request.Location, request.MaxPlayers, maxGoalies)

	out, err := s.completer.Complete(c, s.draftModel, prompt, 512)
	if err != nil || strings.TrimSpace(out) == "" {
		log.Printf("Email draft generation failed, using fallback: %v\n", err)
		return FallbackDraft, true
	}
	return out, false
}

var jsonBlob = regexp.MustCompile(`(?s)\{.*\}`)

// SplitTeams asks the backend for a balanced two-way split. Unusable output
// degrades to a simple positional split: first half white, second half dark,
// in input order.
func (s *SuggestService) SplitTeams(c *gin.Context, players []SplitPlayer) (TeamSplit, bool) {
	lines := make([]string, 0, len(players))
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("- %s (Skill: %d/10, Pos: %s)", p.Name, p.SkillLevel, p.Position))
	}

	prompt := fmt.Sprintf(`I have a list of hockey players. Please split them into two balanced teams: "Team White" and "Team Dark".
Try to balance the total skill level and positions (ensure goalies are split if possible).

Players:
%s

Return ONLY valid JSON in this exact format, with no other text:
{"white": ["Player Name 1", "Player Name 2"], "dark": ["Player Name 3", "Player Name 4"]}`, strings.Join(lines, "\n"))

	out, err := s.completer.Complete(c, s.splitModel, prompt, 2048)
	if err != nil {
		log.Printf("Team balance generation failed, using simple split: %v\n", err)
		return simpleSplit(players), true
	}

	// The model sometimes wraps the JSON in markdown fences or prose.
	blob := jsonBlob.FindString(out)
	if blob == "" {
		log.Printf("No JSON in team balance response, using simple split\n")
		return simpleSplit(players), true
	}

	var split TeamSplit
	if err := json.Unmarshal([]byte(blob), &split); err != nil {
		log.Printf("Failed to parse team balance response, using simple split: %v\n", err)
		return simpleSplit(players), true
	}
	if len(split.White)+len(split.Dark) == 0 {
		return simpleSplit(players), true
	}
	return split, false
}

func simpleSplit(players []SplitPlayer) TeamSplit {
	midpoint := (len(players) + 1) / 2
	split := TeamSplit{White: []string{}, Dark: []string{}}
	for i, p := range players {
		if i < midpoint {
			split.White = append(split.White, p.Name)
		} else {
			split.Dark = append(split.Dark, p.Name)
		}
	}
	return split
}

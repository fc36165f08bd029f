package roster

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	roster "github.com/skateapp/roster-sync/repos/roster"
)

var ErrInvalidStatus = errors.New("status must be ACCEPTED or DECLINED")

type RosterService struct {
	store roster.Store
}

func NewRosterService(store roster.Store) *RosterService {
	return &RosterService{
		store: store,
	}
}

// GetRoster returns the full roster. A missing or empty document is seeded
// with the fixed initial dataset and persisted, so the empty state heals
// itself exactly once.
func (s *RosterService) GetRoster(c *gin.Context) ([]roster.Player, int64, error) {
	players, version, err := s.store.GetPlayers(c)
	if err == nil && len(players) > 0 {
		return players, version, nil
	}
	if err != nil && !errors.Is(err, roster.ErrNotFound) {
		return nil, 0, err
	}

	log.Printf("Roster document is empty, seeding with initial data\n")
	seed := roster.SeedPlayers()
	version, err = s.store.SetPlayers(c, seed)
	if err != nil {
		return nil, 0, err
	}
	return seed, version, nil
}

// ReplaceRoster overwrites the whole document. expected < 0 writes
// unconditionally, otherwise the write is rejected when the stored version
// no longer matches.
func (s *RosterService) ReplaceRoster(c *gin.Context, players []roster.Player, expected int64) (int64, error) {
	if expected < 0 {
		return s.store.SetPlayers(c, players)
	}
	return s.store.SetPlayersVersioned(c, players, expected)
}

func (s *RosterService) LookupByEmail(c *gin.Context, email string) (*roster.Player, error) {
	players, _, err := s.store.GetPlayers(c)
	if err != nil {
		return nil, err
	}

	idx := roster.FindByEmail(players, email)
	if idx < 0 {
		return nil, roster.ErrPlayerNotFound
	}
	p := players[idx]
	return &p, nil
}

// Respond records a player's RSVP. Only ACCEPTED and DECLINED are accepted
// here, the other statuses are admin-side transitions. Re-submitting the same
// status is a no-op that still reports success.
func (s *RosterService) Respond(c *gin.Context, email string, status roster.RsvpStatus) (*roster.Player, error) {
	if status != roster.StatusAccepted && status != roster.StatusDeclined {
		return nil, ErrInvalidStatus
	}

	p, err := s.store.UpdateStatusByEmail(c, email, status)
	if err != nil {
		return nil, err
	}
	log.Printf("RSVP updated: %s -> %s\n", p.Name, p.Status)
	return p, nil
}

package client

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/samborkent/uuidv7"

	"github.com/skateapp/roster-sync/pkg/debounce"
	roster "github.com/skateapp/roster-sync/repos/roster"
)

// DefaultSaveDelay is how long the roster must settle before the debounced
// remote save fires.
const DefaultSaveDelay = 2 * time.Second

const saveTimeout = 10 * time.Second

var (
	ErrNotLoaded      = errors.New("roster not loaded")
	ErrDuplicateEmail = errors.New("a player with this email is already on the roster")
	ErrUnknownPlayer  = errors.New("unknown player id")
)

// Engine owns the local copy of the roster. Reads and mutations are
// synchronous against the in-memory list; the remote document is brought in
// once on Load and written back behind a debounce. Two guards protect the
// remote copy: nothing is written before a successful load, and an empty
// roster is never written.
type Engine struct {
	remote *Remote
	cache  Cache
	saver  *debounce.Debouncer

	mu      sync.Mutex
	players []roster.Player
	version int64
	loaded  bool
}

// Options configures an Engine.
type Options struct {
	Remote *Remote
	Cache  Cache

	// SaveDelay overrides DefaultSaveDelay, tests shorten it.
	SaveDelay time.Duration
}

func NewEngine(opts Options) *Engine {
	delay := opts.SaveDelay
	if delay == 0 {
		delay = DefaultSaveDelay
	}
	e := &Engine{
		remote:  opts.Remote,
		cache:   opts.Cache,
		version: -1,
	}
	e.saver = debounce.New(delay, e.saveRemote)
	return e
}

// Load performs the initial read: remote first, cache as fallback. The
// engine only counts as loaded once a non-empty roster came from either
// source.
func (e *Engine) Load(ctx context.Context) error {
	players, version, err := e.remote.Load(ctx)
	if err == nil && len(players) > 0 {
		e.mu.Lock()
		e.players = players
		e.version = version
		e.loaded = true
		e.mu.Unlock()
		if cerr := e.cache.Save(players); cerr != nil {
			log.Printf("Failed to mirror roster to cache: %v\n", cerr)
		}
		return nil
	}
	if err != nil {
		log.Printf("Failed to load roster from cloud: %v\n", err)
	}

	cached, cerr := e.cache.Load()
	if cerr == nil && len(cached) > 0 {
		e.mu.Lock()
		e.players = cached
		// Remote version is unknown, the next save is unconditional.
		e.version = -1
		e.loaded = true
		e.mu.Unlock()
		log.Printf("Loaded %d players from local cache\n", len(cached))
		return nil
	}

	if err == nil {
		err = errors.New("remote roster empty and no local cache")
	}
	return err
}

// Loaded reports whether the initial load obtained a non-empty roster.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Players returns a copy of the current roster.
func (e *Engine) Players() []roster.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]roster.Player, len(e.players))
	copy(out, e.players)
	return out
}

// UpdateStatus sets one player's RSVP status.
func (e *Engine) UpdateStatus(playerID string, status roster.RsvpStatus) error {
	return e.mutate(func(players []roster.Player) ([]roster.Player, error) {
		for i := range players {
			if players[i].ID == playerID {
				players[i].Status = status
				return players, nil
			}
		}
		return nil, ErrUnknownPlayer
	})
}

// AddPlayer appends a new player from self-registration. Registration is the
// only path that can introduce a duplicate address, so it is rejected here.
func (e *Engine) AddPlayer(name, email string, skillLevel int, position, role string) (roster.Player, error) {
	p := roster.Player{
		ID:         uuidv7.New().String(),
		Name:       name,
		Email:      email,
		SkillLevel: skillLevel,
		Position:   position,
		Role:       role,
		Status:     roster.StatusPending,
		FeesPaid:   false,
	}
	err := e.mutate(func(players []roster.Player) ([]roster.Player, error) {
		if roster.FindByEmail(players, email) >= 0 {
			return nil, ErrDuplicateEmail
		}
		return append(players, p), nil
	})
	if err != nil {
		return roster.Player{}, err
	}
	return p, nil
}

// EditPlayer replaces the player with the same id.
func (e *Engine) EditPlayer(p roster.Player) error {
	return e.mutate(func(players []roster.Player) ([]roster.Player, error) {
		for i := range players {
			if players[i].ID == p.ID {
				players[i] = p
				return players, nil
			}
		}
		return nil, ErrUnknownPlayer
	})
}

// RemovePlayer deletes a player. Removal is unconditional and permanent.
func (e *Engine) RemovePlayer(playerID string) error {
	return e.mutate(func(players []roster.Player) ([]roster.Player, error) {
		for i := range players {
			if players[i].ID == playerID {
				return append(players[:i], players[i+1:]...), nil
			}
		}
		return nil, ErrUnknownPlayer
	})
}

// ResetAllStatuses puts every player back to PENDING for a new invite round.
func (e *Engine) ResetAllStatuses() error {
	return e.mutate(func(players []roster.Player) ([]roster.Player, error) {
		for i := range players {
			players[i].Status = roster.StatusPending
		}
		return players, nil
	})
}

// FinalizeNoReplies declines everyone still PENDING or NO_REPLY. Players who
// answered keep their answer.
func (e *Engine) FinalizeNoReplies() error {
	return e.mutate(func(players []roster.Player) ([]roster.Player, error) {
		for i := range players {
			if players[i].Status == roster.StatusPending || players[i].Status == roster.StatusNoReply {
				players[i].Status = roster.StatusDeclined
			}
		}
		return players, nil
	})
}

// mutate applies fn to the roster, mirrors the result to the cache and
// schedules the debounced remote save. Before a successful load every
// mutation is refused, a default-empty local state must never reach either
// store.
func (e *Engine) mutate(fn func([]roster.Player) ([]roster.Player, error)) error {
	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return ErrNotLoaded
	}
	next, err := fn(e.players)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.players = next
	snapshot := make([]roster.Player, len(next))
	copy(snapshot, next)
	e.mu.Unlock()

	if cerr := e.cache.Save(snapshot); cerr != nil {
		log.Printf("Failed to mirror roster to cache: %v\n", cerr)
	}
	e.saver.Trigger()
	return nil
}

// saveRemote is the debounced remote write. Failures are logged, never
// surfaced; the next mutation reschedules the save.
func (e *Engine) saveRemote() {
	e.mu.Lock()
	if !e.loaded || len(e.players) == 0 {
		e.mu.Unlock()
		return
	}
	snapshot := make([]roster.Player, len(e.players))
	copy(snapshot, e.players)
	version := e.version
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	next, err := e.remote.Save(ctx, snapshot, version)
	if errors.Is(err, ErrConflict) {
		// Someone wrote in between (an RSVP link, another admin tab).
		// Pick up the fresh token and retry once; the overwrite is
		// detected and logged instead of silent.
		log.Printf("Roster version conflict, retrying with fresh token\n")
		_, fresh, lerr := e.remote.Load(ctx)
		if lerr != nil {
			log.Printf("Failed to refresh roster version: %v\n", lerr)
			return
		}
		next, err = e.remote.Save(ctx, snapshot, fresh)
	}
	if err != nil {
		log.Printf("Failed to save roster to cloud: %v\n", err)
		return
	}

	e.mu.Lock()
	e.version = next
	e.mu.Unlock()
	log.Printf("Roster saved to cloud\n")
}

// Flush runs a pending save immediately, the shutdown path.
func (e *Engine) Flush() {
	e.saver.Flush()
}

// Close drops any pending save without running it.
func (e *Engine) Close() {
	e.saver.Stop()
}

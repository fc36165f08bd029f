package client

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	roster "github.com/skateapp/roster-sync/repos/roster"
)

// Cache is the local mirror of the roster, written on every mutation so the
// UI stays responsive while the remote save is still debouncing.
type Cache interface {
	Load() ([]roster.Player, error)
	Save(players []roster.Player) error
}

const (
	cacheFile = "skateapp_players_v3.json"

	// legacyCacheFile is the pre-v3 mirror, players stored without the
	// role and feesPaid fields.
	legacyCacheFile = "skateapp_players_v2.json"
)

// FileCache mirrors the roster into a JSON file under dir.
type FileCache struct {
	dir string
}

func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

var _ Cache = (*FileCache)(nil)

// Load reads the cached roster, migrating a legacy v2 file once when no v3
// file exists yet. No cache at all is (nil, nil), not an error.
func (c *FileCache) Load() ([]roster.Player, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, cacheFile))
	if errors.Is(err, os.ErrNotExist) {
		return c.migrateLegacy()
	}
	if err != nil {
		return nil, err
	}

	var players []roster.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (c *FileCache) Save(players []roster.Player) error {
	data, err := json.Marshal(players)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, cacheFile), data, 0o644)
}

func (c *FileCache) migrateLegacy() ([]roster.Player, error) {
	legacyPath := filepath.Join(c.dir, legacyCacheFile)
	data, err := os.ReadFile(legacyPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var players []roster.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, err
	}

	// The v2 shape predates role and feesPaid.
	for i := range players {
		if players[i].Role == "" {
			players[i].Role = roster.RoleRegular
		}
	}

	if err := c.Save(players); err != nil {
		return nil, err
	}
	if err := os.Remove(legacyPath); err != nil {
		log.Printf("Failed to remove legacy cache file: %v\n", err)
	}
	log.Printf("Migrated %d players from legacy cache\n", len(players))
	return players, nil
}

// MemoryCache is an in-memory Cache for tests.
type MemoryCache struct {
	mu      sync.Mutex
	players []roster.Player
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

var _ Cache = (*MemoryCache)(nil)

func (c *MemoryCache) Load() ([]roster.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]roster.Player, len(c.players))
	copy(out, c.players)
	return out, nil
}

func (c *MemoryCache) Save(players []roster.Player) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.players = make([]roster.Player, len(players))
	copy(c.players, players)
	return nil
}

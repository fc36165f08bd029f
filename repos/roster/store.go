package roster

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrNotFound        = errors.New("roster document not found")
	ErrMalformed       = errors.New("malformed roster document")
	ErrVersionMismatch = errors.New("stale roster version")
	ErrPlayerNotFound  = errors.New("player not found on roster")
	ErrUnavailable     = errors.New("roster store unavailable")
)

// Store is the contract for the single-document roster backend. Every write
// bumps the document version; readers get the version alongside the players
// so they can hand it back for a conditional replace.
type Store interface {
	GetPlayers(ctx context.Context) ([]Player, int64, error)
	SetPlayers(ctx context.Context, players []Player) (int64, error)
	SetPlayersVersioned(ctx context.Context, players []Player, version int64) (int64, error)
	UpdateStatusByEmail(ctx context.Context, email string, s RsvpStatus) (*Player, error)
}

const (
	rosterCollection = "roster"
	rosterDocID      = "players"
)

type rosterDoc struct {
	Players []Player `firestore:"players"`
	Version int64    `firestore:"version"`
}

// FirestoreStore keeps the whole roster in one Firestore document.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

var _ Store = (*FirestoreStore)(nil)

func (s *FirestoreStore) docRef() *firestore.DocumentRef {
	return s.client.Collection(rosterCollection).Doc(rosterDocID)
}

func (s *FirestoreStore) GetPlayers(ctx context.Context) ([]Player, int64, error) {
	doc, err := s.docRef().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, 0, ErrNotFound
		}
		log.Printf("Failed to get roster from Firestore: %v\n", err)
		return nil, 0, xerrors.Errorf("get roster: %w", ErrUnavailable)
	}

	var rd rosterDoc
	if err := doc.DataTo(&rd); err != nil {
		log.Printf("Failed to decode roster document: %v\n", err)
		return nil, 0, xerrors.Errorf("decode roster: %w", ErrMalformed)
	}
	return rd.Players, rd.Version, nil
}

func (s *FirestoreStore) SetPlayers(ctx context.Context, players []Player) (int64, error) {
	return s.replace(ctx, players, -1)
}

func (s *FirestoreStore) SetPlayersVersioned(ctx context.Context, players []Player, version int64) (int64, error) {
	return s.replace(ctx, players, version)
}

// replace writes the full document inside a transaction so the version bump
// is atomic with the content. expected < 0 skips the version check.
func (s *FirestoreStore) replace(ctx context.Context, players []Player, expected int64) (int64, error) {
	var next int64
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		current := int64(0)
		doc, err := tx.Get(s.docRef())
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
		} else {
			var rd rosterDoc
			if err := doc.DataTo(&rd); err != nil {
				return xerrors.Errorf("decode roster: %w", ErrMalformed)
			}
			current = rd.Version
		}

		if expected >= 0 && current != expected {
			return ErrVersionMismatch
		}

		next = current + 1
		return tx.Set(s.docRef(), rosterDoc{Players: players, Version: next})
	})
	if err != nil {
		if errors.Is(err, ErrVersionMismatch) || errors.Is(err, ErrMalformed) {
			return 0, err
		}
		log.Printf("Failed to write roster to Firestore: %v\n", err)
		return 0, xerrors.Errorf("set roster: %w", ErrUnavailable)
	}
	return next, nil
}

func (s *FirestoreStore) UpdateStatusByEmail(ctx context.Context, email string, rs RsvpStatus) (*Player, error) {
	var updated Player
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(s.docRef())
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var rd rosterDoc
		if err := doc.DataTo(&rd); err != nil {
			return xerrors.Errorf("decode roster: %w", ErrMalformed)
		}

		idx := FindByEmail(rd.Players, email)
		if idx < 0 {
			return ErrPlayerNotFound
		}

		rd.Players[idx].Status = rs
		rd.Version++
		updated = rd.Players[idx]
		return tx.Set(s.docRef(), rd)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPlayerNotFound) || errors.Is(err, ErrMalformed) {
			return nil, err
		}
		log.Printf("Failed to update RSVP in Firestore: %v\n", err)
		return nil, xerrors.Errorf("update rsvp: %w", ErrUnavailable)
	}
	return &updated, nil
}

// FindByEmail returns the index of the first player whose email matches
// case-insensitively, or -1. First match wins on duplicate addresses.
func FindByEmail(players []Player, email string) int {
	for i := range players {
		if strings.EqualFold(players[i].Email, email) {
			return i
		}
	}
	return -1
}

// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cardtable/wizard/internal/game"
	"github.com/cardtable/wizard/internal/models"
	"github.com/cardtable/wizard/internal/store"
)

// ErrGameNotFound is returned when an action targets an unknown game id.
var ErrGameNotFound = errors.New("server: game not found")

// GameServer drives the pure rules engine against the Store. Every action is
// a load -> transition -> save cycle inside a per-game critical section, so
// two players acting on the same game can never lose each other's update.
// The version counter bumps once per committed transition; rejected actions
// leave the snapshot untouched.
type GameServer struct {
	store  store.Store
	logger *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(st store.Store, logger *logrus.Logger) *GameServer {
	return &GameServer{
		store:  st,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// gameLock returns the mutex guarding one game id, creating it on first use.
// Lock entries are never removed; a finished game costs one idle mutex until
// process exit.
func (s *GameServer) gameLock(gameID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[gameID] = l
	}
	return l
}

// NewID returns a short shareable identifier, used for both game codes and
// player ids.
func NewID() string {
	return uuid.NewString()[:8]
}

// update runs fn against the stored aggregate inside the game's critical
// section and commits the result only when the transition applied.
func (s *GameServer) update(ctx context.Context, gameID string, fn func(*models.GameState) game.Result) (*models.GameState, game.Result, error) {
	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	g, err := s.store.Load(ctx, gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, game.Result{}, ErrGameNotFound
	}
	if err != nil {
		return nil, game.Result{}, err
	}

	res := fn(g)
	if !res.Applied {
		return g, res, nil
	}

	s.commit(g)
	if err := s.store.Save(ctx, g); err != nil {
		return nil, game.Result{}, fmt.Errorf("save game %s: %w", gameID, err)
	}
	return g, res, nil
}

func (s *GameServer) commit(g *models.GameState) {
	g.Version++
	g.LastUpdated = time.Now().UTC().Format(time.RFC3339)
}

// CreateGame creates and persists a fresh game with the host seated.
func (s *GameServer) CreateGame(ctx context.Context, hostID, hostName string) (*models.GameState, error) {
	gameID := NewID()
	g := game.NewGame(gameID, hostID, hostName)
	s.commit(g)

	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()
	if err := s.store.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save new game: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"game_id": gameID, "host": hostName}).Info("game created")
	return g, nil
}

func (s *GameServer) Join(ctx context.Context, gameID, playerID, name string) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		return game.Join(g, playerID, name)
	})
}

func (s *GameServer) Rejoin(ctx context.Context, gameID, playerID, name string) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		return game.Rejoin(g, playerID, name)
	})
}

func (s *GameServer) Leave(ctx context.Context, gameID, playerID string) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		return game.Leave(g, playerID)
	})
}

func (s *GameServer) Start(ctx context.Context, gameID, playerID string) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		return game.Start(g, playerID)
	})
}

func (s *GameServer) ChooseTrump(ctx context.Context, gameID, playerID string, suit models.Suit) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		return game.ChooseTrump(g, playerID, suit)
	})
}

// PlaceBid validates the bid range and the dealer restriction before handing
// the bid to the engine; the engine itself trusts its caller on both.
func (s *GameServer) PlaceBid(ctx context.Context, gameID, playerID string, bid int) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		if bid < 0 || bid > g.CardsThisRound() {
			return game.Result{Reason: game.ReasonInvalidBid}
		}
		if current := g.CurrentPlayer(); current != nil && current.ID == playerID {
			if forbidden, ok := game.ForbiddenBid(g); ok && bid == forbidden {
				return game.Result{Reason: game.ReasonForbiddenBid}
			}
		}
		return game.PlaceBid(g, playerID, bid)
	})
}

// PlayCard additionally enforces follow-suit legality, which the engine
// exposes via LegalPlays but does not apply itself.
func (s *GameServer) PlayCard(ctx context.Context, gameID, playerID string, card models.Card) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		if current := g.CurrentPlayer(); current != nil && current.ID == playerID && g.Phase == models.PhasePlaying {
			if !containsCard(game.LegalPlays(current.Hand, g.LeadSuit), card) && current.HoldsCard(card) {
				return game.Result{Reason: game.ReasonIllegalPlay}
			}
		}
		return game.PlayCard(g, playerID, card)
	})
}

func containsCard(cards []models.Card, c models.Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

func (s *GameServer) AdvanceTrick(ctx context.Context, gameID string) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		return game.AdvanceTrick(g)
	})
}

func (s *GameServer) AdvanceRound(ctx context.Context, gameID string) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		return game.AdvanceRound(g)
	})
}

func (s *GameServer) PostChat(ctx context.Context, gameID, playerID, message string) (*models.GameState, game.Result, error) {
	return s.update(ctx, gameID, func(g *models.GameState) game.Result {
		return game.PostChat(g, playerID, message, time.Now())
	})
}

// State returns the current snapshot without mutating it.
func (s *GameServer) State(ctx context.Context, gameID string) (*models.GameState, error) {
	g, err := s.store.Load(ctx, gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	return g, err
}

// Poll reports whether the game has changed since the given version, and the
// current version. This is the polling clients' change-detection entry.
func (s *GameServer) Poll(ctx context.Context, gameID string, since int64) (bool, int64, error) {
	version, err := s.store.LastModified(ctx, gameID)
	if errors.Is(err, store.ErrNotFound) {
		return false, 0, ErrGameNotFound
	}
	if err != nil {
		return false, 0, err
	}
	return version != since, version, nil
}

// ListGames returns the ids of all stored games.
func (s *GameServer) ListGames(ctx context.Context) ([]string, error) {
	return s.store.ListIDs(ctx)
}

// DeleteGame removes a finished game's snapshot.
func (s *GameServer) DeleteGame(ctx context.Context, gameID string) error {
	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()
	return s.store.Delete(ctx, gameID)
}

// Package memory is an in-process implementation of every repository
// interface. It backs `storage: memory` and the service tests, and it honors
// the same constraints the Postgres schema enforces.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
)

type state struct {
	seasons map[int64]model.Season
	teams   map[int64]model.Team
	players map[int64]model.Player
	games   map[int64]model.Game
	lineups map[int64][]model.LineupEntry
	pas     []model.PlateAppearance

	seasonSeq, teamSeq, playerSeq, gameSeq, paSeq int64
}

func (s state) clone() state {
	out := s
	out.seasons = maps.Clone(s.seasons)
	out.teams = maps.Clone(s.teams)
	out.players = maps.Clone(s.players)
	out.games = maps.Clone(s.games)
	out.lineups = make(map[int64][]model.LineupEntry, len(s.lineups))
	for k, v := range s.lineups {
		out.lineups[k] = slices.Clone(v)
	}
	out.pas = slices.Clone(s.pas)
	return out
}

// Store owns all in-memory state. Use the accessor methods to obtain the
// repository views.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	st   state
	now  func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now for created_at and default start times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		st: state{
			seasons: make(map[int64]model.Season),
			teams:   make(map[int64]model.Team),
			players: make(map[int64]model.Player),
			games:   make(map[int64]model.Game),
			lineups: make(map[int64][]model.LineupEntry),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Seasons() repository.SeasonRepository { return seasonRepo{s} }
func (s *Store) Teams() repository.TeamRepository { return teamRepo{s} }
func (s *Store) Players() repository.PlayerRepository { return playerRepo{s} }
func (s *Store) Games() repository.GameRepository { return gameRepo{s} }
func (s *Store) Lineups() repository.LineupRepository { return lineupRepo{s} }
func (s *Store) TxManager() repository.TxManager { return txManager{s} }
func (s *Store) Pinger() repository.Pinger { return s }
func (s *Store) PlateAppearances() repository.PlateAppearanceRepository {
	return plateAppearanceRepo{s}
}

// Ping always succeeds unless ctx is already done.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

type txKey struct{}

type txManager struct{ s *Store }

// WithinTx serializes transactions and restores a snapshot when fn fails.
// Nested calls join the outer transaction. Writes made outside any
// transaction while one is open are lost if that transaction rolls back.
func (m txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.RLock()
	snapshot := m.s.st.clone()
	m.s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.mu.Lock()
		m.s.st = snapshot
		m.s.mu.Unlock()
		return err
	}
	return nil
}

func paginate[T any](items []T, p repository.Page) repository.PageResult[T] {
	p = p.Normalize()
	limit, offset := p.Limit, p.Offset
	res := repository.PageResult[T]{Items: make([]T, 0, limit), Total: len(items)}
	if offset >= len(items) {
		return res
	}
	end := min(offset+limit, len(items))
	res.Items = append(res.Items, items[offset:end]...)
	return res
}

var (
	_ repository.TxManager = txManager{}
	_ repository.Pinger    = (*Store)(nil)
)

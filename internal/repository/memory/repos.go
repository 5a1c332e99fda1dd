package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
)

type seasonRepo struct{ s *Store }

func (r seasonRepo) Create(_ context.Context, in model.Season) (model.Season, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.seasonSeq++
	in.ID = r.s.st.seasonSeq
	in.CreatedAt = r.s.now()
	r.s.st.seasons[in.ID] = in
	return in, nil
}

func (r seasonRepo) GetByID(_ context.Context, id int64) (model.Season, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out, ok := r.s.st.seasons[id]
	if !ok {
		return model.Season{}, repository.ErrNotFound
	}
	return out, nil
}

func (r seasonRepo) List(_ context.Context, p repository.Page) (repository.PageResult[model.Season], error) {
	r.s.mu.RLock()
	all := slices.Collect(maps.Values(r.s.st.seasons))
	r.s.mu.RUnlock()
	slices.SortFunc(all, func(a, b model.Season) int {
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return paginate(all, p), nil
}

type teamRepo struct{ s *Store }

func (r teamRepo) Create(_ context.Context, in model.Team) (model.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.seasons[in.SeasonID]; !ok {
		return model.Team{}, repository.ErrConflict
	}
	r.s.st.teamSeq++
	in.ID = r.s.st.teamSeq
	r.s.st.teams[in.ID] = in
	return in, nil
}

func (r teamRepo) GetByID(_ context.Context, id int64) (model.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out, ok := r.s.st.teams[id]
	if !ok {
		return model.Team{}, repository.ErrNotFound
	}
	return out, nil
}

func (r teamRepo) ListBySeason(_ context.Context, seasonID int64, p repository.Page) (repository.PageResult[model.Team], error) {
	r.s.mu.RLock()
	var all []model.Team
	for _, t := range r.s.st.teams {
		if t.SeasonID == seasonID {
			all = append(all, t)
		}
	}
	r.s.mu.RUnlock()
	slices.SortFunc(all, func(a, b model.Team) int { return cmp.Compare(a.ID, b.ID) })
	return paginate(all, p), nil
}

type playerRepo struct{ s *Store }

func (r playerRepo) Create(_ context.Context, in model.Player) (model.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.teams[in.TeamID]; !ok {
		return model.Player{}, repository.ErrConflict
	}
	r.s.st.playerSeq++
	in.ID = r.s.st.playerSeq
	r.s.st.players[in.ID] = in
	return in, nil
}

func (r playerRepo) GetByID(_ context.Context, id int64) (model.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out, ok := r.s.st.players[id]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return out, nil
}

func (r playerRepo) ListByTeam(_ context.Context, teamID int64, p repository.Page) (repository.PageResult[model.Player], error) {
	r.s.mu.RLock()
	var all []model.Player
	for _, pl := range r.s.st.players {
		if pl.TeamID == teamID {
			all = append(all, pl)
		}
	}
	r.s.mu.RUnlock()
	slices.SortFunc(all, func(a, b model.Player) int { return cmp.Compare(a.ID, b.ID) })
	return paginate(all, p), nil
}

func (r playerRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.st.players[id]
	return ok, nil
}

type gameRepo struct{ s *Store }

func (r gameRepo) Create(_ context.Context, in model.Game) (model.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.seasons[in.SeasonID]; !ok {
		return model.Game{}, repository.ErrConflict
	}
	_, homeOK := r.s.st.teams[in.HomeTeamID]
	_, awayOK := r.s.st.teams[in.AwayTeamID]
	if !homeOK || !awayOK || in.HomeTeamID == in.AwayTeamID {
		return model.Game{}, repository.ErrConflict
	}
	if in.StartTime.IsZero() {
		in.StartTime = r.s.now()
	}
	if in.Status == "" {
		in.Status = model.GameStatusLive
	}
	r.s.st.gameSeq++
	in.ID = r.s.st.gameSeq
	r.s.st.games[in.ID] = in
	return in, nil
}

func (r gameRepo) GetByID(_ context.Context, id int64) (model.Game, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out, ok := r.s.st.games[id]
	if !ok {
		return model.Game{}, repository.ErrNotFound
	}
	return out, nil
}

func (r gameRepo) List(_ context.Context, p repository.Page) (repository.PageResult[model.Game], error) {
	r.s.mu.RLock()
	all := slices.Collect(maps.Values(r.s.st.games))
	r.s.mu.RUnlock()
	slices.SortFunc(all, func(a, b model.Game) int {
		if c := b.StartTime.Compare(a.StartTime); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return paginate(all, p), nil
}

type lineupRepo struct{ s *Store }

type lineupSlot struct {
	team  int64
	order int
}

func (r lineupRepo) ReplaceForGame(_ context.Context, gameID int64, entries []model.LineupEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.games[gameID]; !ok && len(entries) > 0 {
		return repository.ErrConflict
	}
	seen := make(map[lineupSlot]struct{}, len(entries))
	out := make([]model.LineupEntry, 0, len(entries))
	for _, e := range entries {
		if e.BattingOrder < 1 || e.BattingOrder > 9 {
			return repository.ErrConflict
		}
		if _, ok := r.s.st.teams[e.TeamID]; !ok {
			return repository.ErrConflict
		}
		if _, ok := r.s.st.players[e.PlayerID]; !ok {
			return repository.ErrConflict
		}
		slot := lineupSlot{e.TeamID, e.BattingOrder}
		if _, dup := seen[slot]; dup {
			return repository.ErrAlreadyExists
		}
		seen[slot] = struct{}{}
		e.GameID = gameID
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b model.LineupEntry) int {
		if c := cmp.Compare(a.TeamID, b.TeamID); c != 0 {
			return c
		}
		return cmp.Compare(a.BattingOrder, b.BattingOrder)
	})
	r.s.st.lineups[gameID] = out
	return nil
}

func (r lineupRepo) ListByGame(_ context.Context, gameID int64) ([]model.LineupEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := slices.Clone(r.s.st.lineups[gameID])
	if out == nil {
		out = []model.LineupEntry{}
	}
	return out, nil
}

type plateAppearanceRepo struct{ s *Store }

func (r plateAppearanceRepo) Create(_ context.Context, in model.PlateAppearance) (model.PlateAppearance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.games[in.GameID]; !ok {
		return model.PlateAppearance{}, repository.ErrConflict
	}
	if _, ok := r.s.st.players[in.BatterID]; !ok {
		return model.PlateAppearance{}, repository.ErrConflict
	}
	if in.PitcherID != nil {
		if _, ok := r.s.st.players[*in.PitcherID]; !ok {
			return model.PlateAppearance{}, repository.ErrConflict
		}
	}
	if in.Inning < 1 || in.RBIs < 0 || !in.Half.Valid() || !in.Result.Valid() {
		return model.PlateAppearance{}, repository.ErrConflict
	}
	if in.ClientEventID != nil {
		for _, pa := range r.s.st.pas {
			if pa.GameID == in.GameID && pa.ClientEventID != nil && *pa.ClientEventID == *in.ClientEventID {
				return model.PlateAppearance{}, repository.ErrAlreadyExists
			}
		}
	}
	r.s.st.paSeq++
	in.ID = r.s.st.paSeq
	in.CreatedAt = r.s.now()
	r.s.st.pas = append(r.s.st.pas, in)
	return in, nil
}

func (r plateAppearanceRepo) GetByClientEventID(_ context.Context, gameID int64, clientEventID string) (model.PlateAppearance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, pa := range r.s.st.pas {
		if pa.GameID == gameID && pa.ClientEventID != nil && *pa.ClientEventID == clientEventID {
			return pa, nil
		}
	}
	return model.PlateAppearance{}, repository.ErrNotFound
}

func (r plateAppearanceRepo) ListByGame(_ context.Context, gameID int64) ([]model.PlateAppearanceRow, error) {
	return r.rows(func(pa model.PlateAppearance, _ model.Game) bool { return pa.GameID == gameID }), nil
}

func (r plateAppearanceRepo) ListBySeason(_ context.Context, seasonID int64) ([]model.PlateAppearanceRow, error) {
	return r.rows(func(_ model.PlateAppearance, g model.Game) bool { return g.SeasonID == seasonID }), nil
}

// rows walks plate appearances in insertion order and joins the names the
// Postgres query would.
func (r plateAppearanceRepo) rows(keep func(model.PlateAppearance, model.Game) bool) []model.PlateAppearanceRow {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.PlateAppearanceRow, 0)
	for _, pa := range r.s.st.pas {
		g := r.s.st.games[pa.GameID]
		if !keep(pa, g) {
			continue
		}
		batter := r.s.st.players[pa.BatterID]
		row := model.PlateAppearanceRow{
			PlateAppearance: pa,
			SeasonID:        g.SeasonID,
			BatterFirstName: batter.FirstName,
			BatterLastName:  batter.LastName,
		}
		if pa.PitcherID != nil {
			pitcher := r.s.st.players[*pa.PitcherID]
			row.PitcherFirstName = pitcher.FirstName
			row.PitcherLastName = pitcher.LastName
		}
		out = append(out, row)
	}
	return out
}

var (
	_ repository.SeasonRepository          = seasonRepo{}
	_ repository.TeamRepository            = teamRepo{}
	_ repository.PlayerRepository          = playerRepo{}
	_ repository.GameRepository            = gameRepo{}
	_ repository.LineupRepository          = lineupRepo{}
	_ repository.PlateAppearanceRepository = plateAppearanceRepo{}
)

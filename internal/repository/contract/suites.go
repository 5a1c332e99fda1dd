// Package contract holds behavioral test suites every repository
// implementation must pass. Postgres and memory stores wire their own
// factories and run the same assertions.
package contract

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
)

// Fixture bundles one storage backend's repositories. Every repository in a
// fixture must share the same underlying state.
type Fixture struct {
	Seasons          repository.SeasonRepository
	Teams            repository.TeamRepository
	Players          repository.PlayerRepository
	Games            repository.GameRepository
	Lineups          repository.LineupRepository
	PlateAppearances repository.PlateAppearanceRepository
	Tx               repository.TxManager
	Pinger           repository.Pinger
}

// Factory returns a fresh, empty fixture and its cleanup.
type Factory func(t *testing.T) (Fixture, func())

// RunAll runs every suite against the factory.
func RunAll(t *testing.T, makeFixture Factory) {
	t.Run("seasons", func(t *testing.T) { RunSeasonRepositoryContract(t, makeFixture) })
	t.Run("teams", func(t *testing.T) { RunTeamRepositoryContract(t, makeFixture) })
	t.Run("players", func(t *testing.T) { RunPlayerRepositoryContract(t, makeFixture) })
	t.Run("games", func(t *testing.T) { RunGameRepositoryContract(t, makeFixture) })
	t.Run("lineups", func(t *testing.T) { RunLineupRepositoryContract(t, makeFixture) })
	t.Run("plate_appearances", func(t *testing.T) { RunPlateAppearanceRepositoryContract(t, makeFixture) })
	t.Run("tx", func(t *testing.T) { RunTxManagerContract(t, makeFixture) })
	t.Run("pinger", func(t *testing.T) { RunPingerContract(t, makeFixture) })
}

func RunSeasonRepositoryContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := fx.Seasons.Create(ctx, model.Season{Name: "Spring League", Year: 2024})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 || created.CreatedAt.IsZero() {
			t.Fatalf("expected id and created_at, got %+v", created)
		}
		got, err := fx.Seasons.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Name != "Spring League" || got.Year != 2024 {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		_, err := fx.Seasons.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if _, err := fx.Seasons.Create(ctx, model.Season{Name: "S" + strconv.Itoa(i), Year: 2010 + i}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := fx.Seasons.List(ctx, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if res.Items[0].Year != 2016 {
			t.Fatalf("expected newest year first, got %d", res.Items[0].Year)
		}
		res2, err := fx.Seasons.List(ctx, repository.Page{Limit: 3, Offset: 6})
		if err != nil {
			t.Fatalf("list2: %v", err)
		}
		if len(res2.Items) != 1 || res2.Total != 7 {
			t.Fatalf("unexpected tail page: len=%d total=%d", len(res2.Items), res2.Total)
		}
	})
}

func RunTeamRepositoryContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seasonID := seedSeason(t, fx, 2024)
		created, err := fx.Teams.Create(ctx, model.Team{SeasonID: seasonID, Name: "Owls"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := fx.Teams.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.SeasonID != seasonID || got.Name != "Owls" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		_, err := fx.Teams.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_scoped_to_season", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s1 := seedSeason(t, fx, 2023)
		s2 := seedSeason(t, fx, 2024)
		for i := 0; i < 5; i++ {
			seedTeam(t, fx, s1, "A-"+strconv.Itoa(i))
		}
		seedTeam(t, fx, s2, "Other")
		res, err := fx.Teams.ListBySeason(ctx, s1, repository.Page{Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 5 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		for _, it := range res.Items {
			if it.SeasonID != s1 {
				t.Fatalf("team from another season leaked: %+v", it)
			}
		}
	})

	t.Run("unknown_season_conflict", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		_, err := fx.Teams.Create(context.Background(), model.Team{SeasonID: 424242, Name: "Ghosts"})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunPlayerRepositoryContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID := seedTeam(t, fx, seedSeason(t, fx, 2024), "Owls")
		hand := "L"
		created, err := fx.Players.Create(ctx, model.Player{TeamID: teamID, FirstName: "Ada", LastName: "Lovelace", Handedness: &hand})
		if err != nil {
			t.Fatalf("create player: %v", err)
		}
		got, err := fx.Players.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.TeamID != teamID || got.LastName != "Lovelace" || got.Handedness == nil || *got.Handedness != "L" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		_, err := fx.Players.GetByID(context.Background(), 42424242)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_by_team_pagination", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		teamID := seedTeam(t, fx, seedSeason(t, fx, 2024), "Owls")
		for i := 0; i < 5; i++ {
			seedPlayer(t, fx, teamID, "P", "L"+strconv.Itoa(i))
		}
		res, err := fx.Players.ListByTeam(ctx, teamID, repository.Page{Limit: 2, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 5 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("exists", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		id := seedPlayer(t, fx, seedTeam(t, fx, seedSeason(t, fx, 2024), "Owls"), "Ada", "L")
		ok, err := fx.Players.Exists(ctx, id)
		if err != nil || !ok {
			t.Fatalf("expected player to exist, ok=%v err=%v", ok, err)
		}
		ok, err = fx.Players.Exists(ctx, id+1000)
		if err != nil || ok {
			t.Fatalf("expected player to be missing, ok=%v err=%v", ok, err)
		}
	})

	t.Run("unknown_team_conflict", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		_, err := fx.Players.Create(context.Background(), model.Player{TeamID: 777777, FirstName: "No", LastName: "Team"})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunGameRepositoryContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("create_defaults_and_get", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seasonID := seedSeason(t, fx, 2024)
		home := seedTeam(t, fx, seasonID, "Home")
		away := seedTeam(t, fx, seasonID, "Away")
		created, err := fx.Games.Create(ctx, model.Game{SeasonID: seasonID, HomeTeamID: home, AwayTeamID: away})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.Status != model.GameStatusLive || created.StartTime.IsZero() {
			t.Fatalf("expected live status and start time default, got %+v", created)
		}
		got, err := fx.Games.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.HomeTeamID != home || got.AwayTeamID != away || got.SeasonID != seasonID {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("same_team_conflict", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		seasonID := seedSeason(t, fx, 2024)
		home := seedTeam(t, fx, seasonID, "Home")
		_, err := fx.Games.Create(context.Background(), model.Game{SeasonID: seasonID, HomeTeamID: home, AwayTeamID: home})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		_, err := fx.Games.GetByID(context.Background(), 31337)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seasonID := seedSeason(t, fx, 2024)
		home := seedTeam(t, fx, seasonID, "Home")
		away := seedTeam(t, fx, seasonID, "Away")
		for i := 0; i < 4; i++ {
			seedGame(t, fx, seasonID, home, away)
		}
		res, err := fx.Games.List(ctx, repository.Page{Limit: 3})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 4 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})
}

func RunLineupRepositoryContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("replace_and_list", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g := seedGameWithRoster(t, fx)
		pos := "SS"
		entries := []model.LineupEntry{
			{TeamID: g.home, BattingOrder: 2, PlayerID: g.homeBatter},
			{TeamID: g.home, BattingOrder: 1, PlayerID: g.homePitcher, DefensivePosition: &pos},
		}
		if err := fx.Lineups.ReplaceForGame(ctx, g.game, entries); err != nil {
			t.Fatalf("replace: %v", err)
		}
		got, err := fx.Lineups.ListByGame(ctx, g.game)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 || got[0].BattingOrder != 1 || got[1].BattingOrder != 2 {
			t.Fatalf("expected lineup ordered by batting order, got %+v", got)
		}
		if got[0].GameID != g.game || got[0].DefensivePosition == nil || *got[0].DefensivePosition != "SS" {
			t.Fatalf("mismatch: %+v", got[0])
		}
	})

	t.Run("replace_overwrites", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g := seedGameWithRoster(t, fx)
		first := []model.LineupEntry{
			{TeamID: g.home, BattingOrder: 1, PlayerID: g.homeBatter},
			{TeamID: g.home, BattingOrder: 2, PlayerID: g.homePitcher},
		}
		if err := fx.Lineups.ReplaceForGame(ctx, g.game, first); err != nil {
			t.Fatalf("replace: %v", err)
		}
		second := []model.LineupEntry{{TeamID: g.away, BattingOrder: 1, PlayerID: g.awayBatter}}
		if err := fx.Lineups.ReplaceForGame(ctx, g.game, second); err != nil {
			t.Fatalf("replace2: %v", err)
		}
		got, err := fx.Lineups.ListByGame(ctx, g.game)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].PlayerID != g.awayBatter {
			t.Fatalf("expected only the second lineup, got %+v", got)
		}
	})

	t.Run("duplicate_order_rejected", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		g := seedGameWithRoster(t, fx)
		entries := []model.LineupEntry{
			{TeamID: g.home, BattingOrder: 1, PlayerID: g.homeBatter},
			{TeamID: g.home, BattingOrder: 1, PlayerID: g.homePitcher},
		}
		err := fx.Lineups.ReplaceForGame(context.Background(), g.game, entries)
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("empty_for_unknown_game", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		got, err := fx.Lineups.ListByGame(context.Background(), 9999)
		if err != nil || len(got) != 0 {
			t.Fatalf("expected empty lineup, got %+v err=%v", got, err)
		}
	})
}

func RunPlateAppearanceRepositoryContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("create_and_list_in_insertion_order", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g := seedGameWithRoster(t, fx)
		results := []stats.Result{stats.Strikeout, stats.HomeRun, stats.Walk}
		for _, r := range results {
			if _, err := fx.PlateAppearances.Create(ctx, model.PlateAppearance{
				GameID: g.game, Inning: 1, Half: stats.Top, BatterID: g.awayBatter,
				PitcherID: &g.homePitcher, Result: r,
			}); err != nil {
				t.Fatalf("create %s: %v", r, err)
			}
		}
		rows, err := fx.PlateAppearances.ListByGame(ctx, g.game)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		for i, r := range results {
			if rows[i].Result != r {
				t.Fatalf("row %d: expected %s, got %s", i, r, rows[i].Result)
			}
		}
		first := rows[0]
		if first.SeasonID != g.season || first.BatterFirstName != "Away" || first.BatterLastName != "Batter" ||
			first.PitcherFirstName != "Home" || first.PitcherLastName != "Pitcher" || first.Half != stats.Top {
			t.Fatalf("joined row mismatch: %+v", first)
		}
	})

	t.Run("missing_pitcher_has_empty_names", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g := seedGameWithRoster(t, fx)
		if _, err := fx.PlateAppearances.Create(ctx, model.PlateAppearance{
			GameID: g.game, Inning: 2, Half: stats.Bottom, BatterID: g.homeBatter, Result: stats.Single, RBIs: 1,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
		rows, err := fx.PlateAppearances.ListByGame(ctx, g.game)
		if err != nil || len(rows) != 1 {
			t.Fatalf("list: rows=%d err=%v", len(rows), err)
		}
		if rows[0].PitcherID != nil || rows[0].PitcherFirstName != "" || rows[0].RBIs != 1 {
			t.Fatalf("unexpected row: %+v", rows[0])
		}
	})

	t.Run("list_by_season_spans_games", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g := seedGameWithRoster(t, fx)
		second := seedGame(t, fx, g.season, g.away, g.home)
		other := seedGameWithRoster(t, fx)
		for _, gameID := range []int64{g.game, second} {
			if _, err := fx.PlateAppearances.Create(ctx, model.PlateAppearance{
				GameID: gameID, Inning: 1, Half: stats.Top, BatterID: g.awayBatter, Result: stats.Out,
			}); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
		if _, err := fx.PlateAppearances.Create(ctx, model.PlateAppearance{
			GameID: other.game, Inning: 1, Half: stats.Top, BatterID: other.awayBatter, Result: stats.Out,
		}); err != nil {
			t.Fatalf("create other: %v", err)
		}
		rows, err := fx.PlateAppearances.ListBySeason(ctx, g.season)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 2 || rows[0].GameID != g.game || rows[1].GameID != second {
			t.Fatalf("unexpected season rows: %+v", rows)
		}
	})

	t.Run("client_event_id_unique_per_game", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g := seedGameWithRoster(t, fx)
		second := seedGame(t, fx, g.season, g.away, g.home)
		eventID := "evt-1"
		pa := model.PlateAppearance{
			GameID: g.game, Inning: 1, Half: stats.Top, BatterID: g.awayBatter, Result: stats.Double, ClientEventID: &eventID,
		}
		created, err := fx.PlateAppearances.Create(ctx, pa)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := fx.PlateAppearances.Create(ctx, pa); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		pa.GameID = second
		if _, err := fx.PlateAppearances.Create(ctx, pa); err != nil {
			t.Fatalf("same event id in another game should be accepted: %v", err)
		}
		got, err := fx.PlateAppearances.GetByClientEventID(ctx, g.game, eventID)
		if err != nil {
			t.Fatalf("get by event id: %v", err)
		}
		if got.ID != created.ID || got.Result != stats.Double {
			t.Fatalf("mismatch: %+v", got)
		}
		if _, err := fx.PlateAppearances.GetByClientEventID(ctx, g.game, "nope"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown_game_conflict", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		g := seedGameWithRoster(t, fx)
		_, err := fx.PlateAppearances.Create(context.Background(), model.PlateAppearance{
			GameID: g.game + 1000, Inning: 1, Half: stats.Top, BatterID: g.awayBatter, Result: stats.Out,
		})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := fx.Tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := fx.Seasons.Create(ctx, model.Season{Name: "TxCommit", Year: 2020})
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := fx.Seasons.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := fx.Tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := fx.Seasons.Create(ctx, model.Season{Name: "TxRollback", Year: 2020})
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := fx.Seasons.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})

	t.Run("nested_joins_outer", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var innerID int64
		errMarker := errors.New("outer failed")
		err := fx.Tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := fx.Tx.WithinTx(ctx, func(ctx context.Context) error {
				out, err := fx.Seasons.Create(ctx, model.Season{Name: "Inner", Year: 2021})
				innerID = out.ID
				return err
			}); err != nil {
				return err
			}
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := fx.Seasons.GetByID(ctx, innerID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("inner write should roll back with the outer tx, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makeFixture Factory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		fx, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		if err := fx.Pinger.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}

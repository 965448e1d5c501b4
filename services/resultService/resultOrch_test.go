package resultService

import (
	"survivorPoolBot/models"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestProcessGamePicks_SkipsGradedPicks(t *testing.T) {
	db, mock := newMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	week := models.Week{ID: 5, WeekNumber: 9}
	game := finalGame(100, 10, 11, true)
	game.WeekID = week.ID

	// The only pick on this game was graded in an earlier pass, so no
	// transaction should open.
	mock.ExpectQuery("SELECT \\* FROM `picks`").
		WithArgs(game.ID, week.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "week_id", "team_id", "game_id", "outcome"}).
			AddRow(1, 7, week.ID, 10, game.ID, models.PickWin))

	failures := ProcessGamePicks(db, week, game)
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %v", failures)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProcessGamePicks_IgnoresUnfinishedGame(t *testing.T) {
	db, mock := newMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	week := models.Week{ID: 5, WeekNumber: 9}
	game := models.Game{ID: 100, WeekID: week.ID, HomeTeamID: uintPtr(10), AwayTeamID: uintPtr(11), Status: models.GameScheduled}

	failures := ProcessGamePicks(db, week, game)
	if failures != nil {
		t.Fatalf("expected nil failures for unfinished game, got %v", failures)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestProcessWeekResults_CompletedWeekIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	guild := models.Guild{GuildID: "guild1"}
	week := models.Week{ID: 5, WeekNumber: 9, IsComplete: true}

	failures, err := ProcessWeekResults(db, guild, week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %v", failures)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

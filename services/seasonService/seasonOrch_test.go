package seasonService

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

func TestGetOrCreateSeason_NewSeasonResetsUsers(t *testing.T) {
	db, mock := newMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	mock.ExpectQuery("SELECT \\* FROM `seasons`").
		WithArgs("guild1", 2026, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "guild_id", "year", "phase"}))

	mock.ExpectQuery("SELECT \\* FROM `guilds`").
		WithArgs("guild1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "guild_id", "starting_lives"}).
			AddRow(1, "guild1", 3))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `seasons`").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	season, err := GetOrCreateSeason(db, "guild1", 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if season.Phase != models.PhaseRegular {
		t.Errorf("expected a new season in the regular phase, got %q", season.Phase)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetOrCreateSeason_ExistingSeasonLeavesUsersAlone(t *testing.T) {
	db, mock := newMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	mock.ExpectQuery("SELECT \\* FROM `seasons`").
		WithArgs("guild1", 2026, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "guild_id", "year", "phase"}).
			AddRow(4, "guild1", 2026, models.PhasePlayoff))

	season, err := GetOrCreateSeason(db, "guild1", 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if season.ID != 4 || season.Phase != models.PhasePlayoff {
		t.Errorf("expected the stored season untouched, got %+v", season)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestActivateWeek_RefusesUnprocessedPriorWeek(t *testing.T) {
	db, mock := newMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	week := models.Week{ID: 9, GuildID: "guild1", WeekNumber: 4}

	// Week 3 took picks but was never processed; week 4 must not activate
	// past it or the grading passes can no longer reach it.
	mock.ExpectQuery("SELECT \\* FROM `weeks`").
		WithArgs("guild1", false, week.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "guild_id", "week_number", "is_complete"}).
			AddRow(8, "guild1", 3, false))

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `picks`").
		WithArgs(uint(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(5))

	err := ActivateWeek(db, &week)
	if err == nil {
		t.Fatal("expected activation to fail with an unprocessed prior week")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActivateWeek_PickFreePriorWeekDoesNotBlock(t *testing.T) {
	db, mock := newMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	week := models.Week{ID: 9, GuildID: "guild1", WeekNumber: 4}

	mock.ExpectQuery("SELECT \\* FROM `weeks`").
		WithArgs("guild1", false, week.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "guild_id", "week_number", "is_complete"}).
			AddRow(8, "guild1", 3, false))

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `picks`").
		WithArgs(uint(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `weeks`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `weeks`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := ActivateWeek(db, &week); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !week.IsActive {
		t.Error("expected the week to be active")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

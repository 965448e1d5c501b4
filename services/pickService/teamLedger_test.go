package pickService

import (
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

func TestLoadTeamLedgerScopedToSeason(t *testing.T) {
	db, mock := newMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	userID, seasonID := uint(7), uint(3)

	// Both ledger reads must filter on the season, so last year's burned
	// teams never leak into a fresh season's eligibility.
	mock.ExpectQuery("SELECT \\* FROM `used_teams` WHERE user_id = \\? AND season_id = \\?").
		WithArgs(userID, seasonID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "team_id", "season_id", "week_id"}).
			AddRow(1, userID, 10, seasonID, 2))

	mock.ExpectQuery("SELECT \\* FROM `playoff_eliminations` WHERE user_id = \\? AND season_id = \\?").
		WithArgs(userID, seasonID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "team_id", "season_id", "week_id"}))

	ledger, err := LoadTeamLedger(db, userID, seasonID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ledger.UsedTeamIDs[10] {
		t.Error("expected team 10 in the used set")
	}
	if len(ledger.UsedTeamIDs) != 1 {
		t.Errorf("expected 1 used team, got %d", len(ledger.UsedTeamIDs))
	}
	if len(ledger.PlayoffEliminated) != 0 {
		t.Errorf("expected no playoff eliminations, got %d", len(ledger.PlayoffEliminated))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

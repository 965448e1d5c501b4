package services

import (
	"fmt"
	"log"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"

	"gorm.io/gorm"
)

// RunDataMigrations executes the one-time data migrations in order on startup.
func RunDataMigrations(db *gorm.DB) error {
	if err := PopulateTeamsMigration(db); err != nil {
		return err
	}
	return nil
}

// PopulateTeamsMigration seeds the trackable team list. The pool follows the
// power conferences plus the independents and Group of Five programs that show
// up on national lines.
func PopulateTeamsMigration(db *gorm.DB) error {
	var existingMigration models.Migration
	result := db.Where("name = ?", "populate_teams").First(&existingMigration)
	if result.Error == nil && existingMigration.ID != 0 {
		log.Println("Populate teams migration has already been executed. Skipping.")
		return nil
	}

	teams := map[string][]string{
		"SEC": {
			"Alabama", "Arkansas", "Auburn", "Florida", "Georgia", "Kentucky",
			"LSU", "Mississippi State", "Missouri", "Oklahoma", "Ole Miss",
			"South Carolina", "Tennessee", "Texas", "Texas A&M", "Vanderbilt",
		},
		"Big Ten": {
			"Illinois", "Indiana", "Iowa", "Maryland", "Michigan",
			"Michigan State", "Minnesota", "Nebraska", "Northwestern",
			"Ohio State", "Oregon", "Penn State", "Purdue", "Rutgers",
			"UCLA", "USC", "Washington", "Wisconsin",
		},
		"Big 12": {
			"Arizona", "Arizona State", "Baylor", "BYU", "Cincinnati",
			"Colorado", "Houston", "Iowa State", "Kansas", "Kansas State",
			"Oklahoma State", "TCU", "Texas Tech", "UCF", "Utah", "West Virginia",
		},
		"ACC": {
			"Boston College", "California", "Clemson", "Duke", "Florida State",
			"Georgia Tech", "Louisville", "Miami", "NC State", "North Carolina",
			"Pittsburgh", "SMU", "Stanford", "Syracuse", "Virginia",
			"Virginia Tech", "Wake Forest",
		},
		"Independent": {
			"Notre Dame",
		},
		"Mountain West": {
			"Boise State",
		},
		"Pac-12": {
			"Oregon State", "Washington State",
		},
	}

	created := 0
	for conference, names := range teams {
		for _, name := range names {
			team := models.Team{Name: name}
			if err := db.Where("name = ?", name).
				Attrs(models.Team{Name: name, Conference: conference}).
				FirstOrCreate(&team).Error; err != nil {
				return fmt.Errorf("error seeding team %s: %v", name, err)
			}
			created++
		}
	}

	migration := models.Migration{
		Name:       "populate_teams",
		ExecutedAt: common.Clock.Now(),
	}
	if err := db.Create(&migration).Error; err != nil {
		return fmt.Errorf("error marking migration as complete: %v", err)
	}

	log.Printf("Populate teams migration completed. Seeded %d teams.", created)
	return nil
}

package database

import (
	"fmt"

	"hiresynapse/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models. Parents come
// before children so foreign keys resolve.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Education{},
		&models.WorkExperience{},
		&models.Skill{},
		&models.Project{},
		&models.Award{},
		&models.Certification{},
		&models.JobPosting{},
		&models.Application{},
		&models.CoverLetter{},
		&models.InterviewQuestion{},
	}
}

// skillNameIndexSQL enforces case-insensitive skill uniqueness per profile. GORM tags cannot
// express an expression index, so it is created after AutoMigrate. Valid on Postgres and SQLite.
const skillNameIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS idx_skills_profile_lower_name ON skills (profile_id, lower(name))`

// EnsureConstraints creates constraints that AutoMigrate cannot derive from struct tags.
func EnsureConstraints(db *gorm.DB) error {
	if err := db.Exec(skillNameIndexSQL).Error; err != nil {
		return fmt.Errorf("create skill name index: %w", err)
	}
	return nil
}

// AutoMigrate builds the full schema from the models. Tests and DB_DRIVER=sqlite use it.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return err
	}
	return EnsureConstraints(db)
}

package repository

import (
	"os"
	"testing"

	"hiresynapse/internal/database"
	"hiresynapse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// newTestDB returns a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// setupMockDB returns a Postgres-dialect gorm handle over sqlmock for asserting SQL shape.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func seedUser(t *testing.T, db *gorm.DB, name string) (*models.User, *models.Profile) {
	t.Helper()
	user := &models.User{Username: name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	profile := &models.Profile{UserID: user.ID}
	require.NoError(t, db.Create(profile).Error)
	return user, profile
}

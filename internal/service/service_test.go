package service

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/model"
	"os"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestMain loads default config once for the package.
func TestMain(m *testing.M) {
	config.InitConfig()
	os.Exit(m.Run())
}

// setupTestDB opens a fresh in-memory database per test.
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	repo.AutoMigrateAll(db)
	repo.Db = db
}

// seedUser creates a test user.
func seedUser(t *testing.T, name, email string) *model.User {
	t.Helper()
	user := model.User{Name: name, Email: email, Password: "x"}
	if err := repo.Db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	return &user
}

// seedFile creates a test file owned by the given user.
func seedFile(t *testing.T, ownerID uint64, filename string) *model.File {
	t.Helper()
	file := model.File{
		OwnerID:      ownerID,
		Filename:     filename,
		MimeType:     "text/plain",
		Size:         42,
		ObjectKey:    "drive/" + filename,
		ResourceKind: model.ResourceRaw,
		UploadedAt:   time.Now(),
	}
	if err := repo.Db.Create(&file).Error; err != nil {
		t.Fatal(err)
	}
	return &file
}

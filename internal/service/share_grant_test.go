package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"errors"
	"testing"
)

// TestGrantAccess shares a file and verifies the grant set.
func TestGrantAccess(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner", "owner@test.com")
	u2 := seedUser(t, "user two", "u2@test.com")
	file := seedFile(t, owner.ID, "report.pdf")

	granted, err := GrantAccess(file.ID, owner.ID, []string{"u2@test.com"})
	if err != nil {
		t.Fatalf("GrantAccess failed: %v", err)
	}
	if len(granted) != 1 || granted[0] != "u2@test.com" {
		t.Fatalf("granted = %v, want [u2@test.com]", granted)
	}

	loaded, err := GetFileById(file.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !CanAccess(loaded, u2.ID) {
		t.Error("granted user must have access")
	}
	if CanAccess(loaded, u2.ID+100) {
		t.Error("unrelated user must not have access")
	}
}

// TestGrantAccessIdempotent re-grants and expects no duplicate rows.
func TestGrantAccessIdempotent(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner", "owner@test.com")
	seedUser(t, "user two", "u2@test.com")
	file := seedFile(t, owner.ID, "a.txt")

	for i := 0; i < 2; i++ {
		if _, err := GrantAccess(file.ID, owner.ID, []string{"u2@test.com"}); err != nil {
			t.Fatalf("grant %d failed: %v", i, err)
		}
	}

	var count int64
	if err := repo.Db.Model(&model.FileGrant{}).Where("file_id = ?", file.ID).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("grant rows = %d, want 1", count)
	}
}

// TestGrantAccessCaseInsensitive resolves mixed-case emails.
func TestGrantAccessCaseInsensitive(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner", "owner@test.com")
	u2 := seedUser(t, "user two", "u2@test.com")
	file := seedFile(t, owner.ID, "a.txt")

	if _, err := GrantAccess(file.ID, owner.ID, []string{"U2@Test.COM"}); err != nil {
		t.Fatalf("GrantAccess failed: %v", err)
	}
	loaded, _ := GetFileById(file.ID)
	if !CanAccess(loaded, u2.ID) {
		t.Error("mixed-case email must resolve to the same user")
	}
}

// TestGrantAccessFailures covers the error taxonomy.
func TestGrantAccessFailures(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner", "owner@test.com")
	other := seedUser(t, "other", "other@test.com")
	file := seedFile(t, owner.ID, "a.txt")

	if _, err := GrantAccess(file.ID, owner.ID, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("empty emails: err = %v, want ErrValidation", err)
	}
	if _, err := GrantAccess(file.ID+999, owner.ID, []string{"other@test.com"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file: err = %v, want ErrNotFound", err)
	}
	if _, err := GrantAccess(file.ID, other.ID, []string{"owner@test.com"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner: err = %v, want ErrForbidden", err)
	}
	if _, err := GrantAccess(file.ID, owner.ID, []string{"ghost@test.com"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("no resolvable email: err = %v, want ErrNotFound", err)
	}
	// Unmatched emails are dropped, matched ones still granted.
	granted, err := GrantAccess(file.ID, owner.ID, []string{"ghost@test.com", "other@test.com"})
	if err != nil {
		t.Fatalf("mixed emails failed: %v", err)
	}
	if len(granted) != 1 || granted[0] != "other@test.com" {
		t.Errorf("granted = %v, want [other@test.com]", granted)
	}
}

// TestRevokeAccess removes a grant again.
func TestRevokeAccess(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner", "owner@test.com")
	u2 := seedUser(t, "user two", "u2@test.com")
	file := seedFile(t, owner.ID, "a.txt")

	if _, err := GrantAccess(file.ID, owner.ID, []string{"u2@test.com"}); err != nil {
		t.Fatal(err)
	}
	if err := RevokeAccess(file.ID, owner.ID, []string{"u2@test.com"}); err != nil {
		t.Fatalf("RevokeAccess failed: %v", err)
	}
	loaded, _ := GetFileById(file.ID)
	if CanAccess(loaded, u2.ID) {
		t.Error("revoked user must lose access")
	}

	if err := RevokeAccess(file.ID, u2.ID, []string{"owner@test.com"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner revoke: err = %v, want ErrForbidden", err)
	}
}

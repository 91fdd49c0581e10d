package service

import (
	"CloudVault/model"
	"testing"
)

// TestCanAccess checks the owner/grant truth table.
func TestCanAccess(t *testing.T) {
	file := &model.File{
		ID:      1,
		OwnerID: 10,
		Grants: []model.FileGrant{
			{FileID: 1, UserID: 20},
			{FileID: 1, UserID: 30},
		},
	}

	cases := []struct {
		name   string
		userID uint64
		want   bool
	}{
		{"owner", 10, true},
		{"granted user", 20, true},
		{"other granted user", 30, true},
		{"stranger", 40, false},
		{"zero id", 0, false},
	}
	for _, tc := range cases {
		if got := CanAccess(file, tc.userID); got != tc.want {
			t.Errorf("%s: CanAccess = %v, want %v", tc.name, got, tc.want)
		}
	}

	if CanAccess(nil, 10) {
		t.Error("nil file must never be accessible")
	}
	if CanAccess(&model.File{ID: 2, OwnerID: 10}, 20) {
		t.Error("empty grant set must deny non-owner")
	}
}

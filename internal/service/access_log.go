package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"fmt"
)

// ListAccessLogs returns recent public accesses to the owner's file,
// newest first. Only the owner may read the trail.
func ListAccessLogs(fileID, ownerID uint64, limit int) ([]model.ShareAccessLog, error) {
	file, err := GetFileById(fileID)
	if err != nil {
		return nil, err
	}
	if file.OwnerID != ownerID {
		return nil, fmt.Errorf("only owner can read access logs: %w", ErrForbidden)
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var logs []model.ShareAccessLog
	err = repo.Db.Where("file_id = ?", fileID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

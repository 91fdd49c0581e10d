package service

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/model"
	"CloudVault/utils"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CreateShareLink appends a public link to the file. A nil
// expiresInMinutes makes the link permanent; otherwise it must be a
// finite positive number of minutes.
func CreateShareLink(fileID, ownerID uint64, expiresInMinutes *float64) (*model.ShareLink, error) {
	file, err := GetFileById(fileID)
	if err != nil {
		return nil, err
	}
	if file.OwnerID != ownerID {
		return nil, fmt.Errorf("only owner can create share link: %w", ErrForbidden)
	}

	var expireAt *time.Time
	if expiresInMinutes != nil {
		mins := *expiresInMinutes
		if math.IsNaN(mins) || math.IsInf(mins, 0) || mins <= 0 {
			return nil, fmt.Errorf("expiresInMinutes must be a positive number: %w", ErrValidation)
		}
		at := time.Now().Add(time.Duration(mins * float64(time.Minute)))
		expireAt = &at
	}

	link := &model.ShareLink{
		FileID:    fileID,
		CreatedBy: ownerID,
		ExpireAt:  expireAt,
	}

	// Token collisions are effectively impossible at this length, but
	// the unique index is the final arbiter: regenerate and retry on a
	// duplicate key.
	for attempt := 0; attempt < 3; attempt++ {
		link.Token = utils.RandomToken(config.AppConfig.LinkTokenLength)
		err = repo.Db.Create(link).Error
		if err == nil {
			return link, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
	}
	return nil, err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// ResolveShareLink validates a token and returns the link and its
// file. Possession of a live token is the only credential. Expired
// links stay in place and keep answering Gone until revoked.
func ResolveShareLink(token string) (*model.ShareLink, *model.File, error) {
	var link model.ShareLink
	err := repo.Db.Where("token = ?", token).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("share link: %w", ErrNotFound)
		}
		return nil, nil, err
	}
	if link.Expired(time.Now()) {
		return nil, nil, fmt.Errorf("share link expired: %w", ErrGone)
	}

	var file model.File
	if err := repo.Db.Where("id = ?", link.FileID).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("share link file: %w", ErrNotFound)
		}
		return nil, nil, err
	}
	return &link, &file, nil
}

// RevokeShareLink deletes a link from its file.
func RevokeShareLink(fileID, ownerID uint64, token string) error {
	file, err := GetFileById(fileID)
	if err != nil {
		return err
	}
	if file.OwnerID != ownerID {
		return fmt.Errorf("only owner can revoke share link: %w", ErrForbidden)
	}

	res := repo.Db.Where("file_id = ? AND token = ?", fileID, token).Delete(&model.ShareLink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("share link: %w", ErrNotFound)
	}
	return nil
}

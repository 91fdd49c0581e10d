package service

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/model"
	"CloudVault/utils"
	"fmt"
	"log"

	"gorm.io/gorm/clause"
)

// GrantAccess unions the users behind the given emails into the file's
// share grant set and returns the emails actually granted. Emails with
// no registered user are dropped; zero matches is a miss. Granting an
// already-granted user is a no-op, the insert ignores the duplicate
// row instead of rewriting the set.
func GrantAccess(fileID, ownerID uint64, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, fmt.Errorf("emails must be a non-empty array: %w", ErrValidation)
	}

	file, err := GetFileById(fileID)
	if err != nil {
		return nil, err
	}
	if file.OwnerID != ownerID {
		return nil, fmt.Errorf("only owner can share: %w", ErrForbidden)
	}

	users, err := FindUsersByEmails(emails)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no valid users for given emails: %w", ErrNotFound)
	}

	granted := make([]string, 0, len(users))
	for _, u := range users {
		if u.ID == ownerID {
			// The owner never needs a grant row.
			continue
		}
		grant := model.FileGrant{FileID: fileID, UserID: u.ID}
		err := repo.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error
		if err != nil {
			return nil, err
		}
		granted = append(granted, u.Email)
	}
	if len(granted) == 0 {
		return nil, fmt.Errorf("no valid users for given emails: %w", ErrNotFound)
	}

	go notifyGranted(file, users, ownerID)

	return granted, nil
}

// notifyGranted sends best-effort share notices.
func notifyGranted(file *model.File, users []model.User, ownerID uint64) {
	if config.AppConfig.SMTPHost == "" {
		return
	}
	owner, err := FindUserById(ownerID)
	if err != nil {
		return
	}
	for _, u := range users {
		if u.ID == ownerID {
			continue
		}
		if err := utils.SendShareNotice(u.Email, owner.Name, file.Filename); err != nil {
			log.Printf("share notice to %s failed: %v", u.Email, err)
		}
	}
}

// RevokeAccess removes the users behind the given emails from the
// file's share grant set. Unknown or ungranted emails are ignored.
func RevokeAccess(fileID, ownerID uint64, emails []string) error {
	if len(emails) == 0 {
		return fmt.Errorf("emails must be a non-empty array: %w", ErrValidation)
	}

	file, err := GetFileById(fileID)
	if err != nil {
		return err
	}
	if file.OwnerID != ownerID {
		return fmt.Errorf("only owner can revoke: %w", ErrForbidden)
	}

	users, err := FindUsersByEmails(emails)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return repo.Db.Where("file_id = ? AND user_id IN ?", fileID, ids).
		Delete(&model.FileGrant{}).Error
}

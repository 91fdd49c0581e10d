package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"CloudVault/utils"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateUser hashes the password and creates a user. Emails are stored
// lowercase so share-grant lookups stay case-insensitive.
func CreateUser(user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Password = utils.GetPwd(user.Password)
	if err := repo.Db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

// FindUserById returns a user by ID.
func FindUserById(userId uint64) (*model.User, error) {
	var user model.User
	if err := repo.Db.Where("id = ?", userId).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userId, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail returns a user by lowercase email.
func FindUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := repo.Db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// FindUsersByEmails resolves emails to registered users. Lookup is
// case-insensitive and partial: emails with no matching user are
// simply absent from the result.
func FindUsersByEmails(emails []string) ([]model.User, error) {
	lowered := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			lowered = append(lowered, e)
		}
	}
	if len(lowered) == 0 {
		return nil, nil
	}
	var users []model.User
	if err := repo.Db.Where("email IN ?", lowered).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CheckPassword verifies a user's password and returns the user.
func CheckPassword(email, password string) (*model.User, error) {
	user, err := FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPwd(password, user.Password) {
		return nil, errors.New("password error")
	}
	return user, nil
}

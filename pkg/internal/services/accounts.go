package services

import (
	"errors"
	"fmt"

	"github.com/classpulse/classpulse/pkg/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func (v *Service) NewAccount(name, password string, role models.Role) (models.Account, error) {
	var account models.Account
	if err := v.db.Where("name = ?", name).First(&account).Error; err == nil {
		return account, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account, fmt.Errorf("unable to check username availability: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %v", err)
	}

	account = models.Account{
		Name:     name,
		Password: string(hash),
		Role:     role,
	}

	if err := v.db.Create(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

func (v *Service) Authenticate(name, password string) (models.Account, error) {
	var account models.Account
	if err := v.db.Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrInvalidCredentials
		}
		return account, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return account, ErrInvalidCredentials
	}

	return account, nil
}

func (v *Service) GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := v.db.Where("id = ?", id).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account by id: %v", err)
	}
	return account, nil
}

package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/classpulse/classpulse/pkg/internal/models"
	"gorm.io/gorm"
)

const classroomCodeLength = 6

const classroomCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateClassroomCode draws uniformly random codes until one does not
// collide with any existing classroom, active or not. With a 36^6 keyspace
// the loop is expected to finish on the first draw.
func (v *Service) GenerateClassroomCode() (string, error) {
	alphabet := big.NewInt(int64(len(classroomCodeCharset)))
	buf := make([]byte, classroomCodeLength)
	for {
		for idx := range buf {
			n, err := rand.Int(rand.Reader, alphabet)
			if err != nil {
				return "", fmt.Errorf("unable to draw random code: %v", err)
			}
			buf[idx] = classroomCodeCharset[n.Int64()]
		}
		code := string(buf)

		var count int64
		if err := v.db.Unscoped().Model(&models.Classroom{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}

func (v *Service) NewClassroom(user models.Account, name string) (models.Classroom, error) {
	var classroom models.Classroom

	code, err := v.GenerateClassroomCode()
	if err != nil {
		return classroom, err
	}

	classroom = models.Classroom{
		Name:      name,
		Code:      code,
		AccountID: user.ID,
		IsActive:  true,
	}

	if err := v.db.Create(&classroom).Error; err != nil {
		return classroom, err
	}

	return classroom, nil
}

func (v *Service) ListOwnedClassroom(user models.Account) ([]models.Classroom, error) {
	var classrooms []models.Classroom
	if err := v.db.Where("account_id = ?", user.ID).Order("created_at DESC").Find(&classrooms).Error; err != nil {
		return classrooms, err
	}
	return classrooms, nil
}

func (v *Service) GetClassroomWithID(id uint) (models.Classroom, error) {
	var classroom models.Classroom
	if err := v.db.Where("id = ?", id).First(&classroom).Error; err != nil {
		return classroom, err
	}
	return classroom, nil
}

// GetClassroomWithCode resolves a join code, case normalized to uppercase,
// against active classrooms only.
func (v *Service) GetClassroomWithCode(code string) (models.Classroom, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var classroom models.Classroom
	if err := v.db.Where("code = ? AND is_active = ?", code, true).First(&classroom).Error; err != nil {
		return classroom, err
	}
	return classroom, nil
}

// DeleteClassroom removes the classroom together with every poll and vote
// under it inside one transaction; a failure on any table rolls the whole
// deletion back.
func (v *Service) DeleteClassroom(classroom models.Classroom) error {
	return v.db.Transaction(func(tx *gorm.DB) error {
		var pollIDs []uint
		if err := tx.Model(&models.Poll{}).Where("classroom_id = ?", classroom.ID).Pluck("id", &pollIDs).Error; err != nil {
			return err
		}

		if len(pollIDs) > 0 {
			if err := tx.Where("poll_id IN ?", pollIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", pollIDs).Delete(&models.Poll{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Delete(&classroom).Error; err != nil {
			return err
		}

		return nil
	})
}

// IsClassroomOwner reports whether the account may mutate the classroom.
func IsClassroomOwner(classroom models.Classroom, user models.Account) bool {
	if user.Role != models.RoleProfessor {
		return false
	}
	return classroom.AccountID == user.ID
}

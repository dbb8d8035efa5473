package services

import (
	"testing"

	"github.com/classpulse/classpulse/pkg/internal/cache"
	"github.com/classpulse/classpulse/pkg/internal/database"
	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.RunMigration(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	store, err := cache.NewStore()
	if err != nil {
		t.Fatalf("failed to create cache store: %v", err)
	}

	return New(db, store)
}

func mustAccount(t *testing.T, svc *Service, name string, role models.Role) models.Account {
	t.Helper()

	account, err := svc.NewAccount(name, "secret1234", role)
	if err != nil {
		t.Fatalf("failed to create account %q: %v", name, err)
	}
	return account
}

func mustClassroom(t *testing.T, svc *Service, owner models.Account, name string) models.Classroom {
	t.Helper()

	classroom, err := svc.NewClassroom(owner, name)
	if err != nil {
		t.Fatalf("failed to create classroom %q: %v", name, err)
	}
	return classroom
}

func mustPoll(t *testing.T, svc *Service, classroom models.Classroom, question string, options []string) models.Poll {
	t.Helper()

	poll, err := svc.NewPoll(classroom, question, options)
	if err != nil {
		t.Fatalf("failed to create poll %q: %v", question, err)
	}
	return poll
}

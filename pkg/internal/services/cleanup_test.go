package services

import (
	"testing"
	"time"

	"github.com/classpulse/classpulse/pkg/internal/models"
)

func TestDoAutoDatabaseCleanup(t *testing.T) {
	svc := testService(t)
	owner := mustAccount(t, svc, "prof", models.RoleProfessor)
	stale := mustClassroom(t, svc, owner, "Stale")
	fresh := mustClassroom(t, svc, owner, "Fresh")

	// Soft delete both, backdating one past the retention window.
	if err := svc.db.Delete(&models.Classroom{}, stale.ID).Error; err != nil {
		t.Fatalf("failed to soft delete classroom: %v", err)
	}
	if err := svc.db.Delete(&models.Classroom{}, fresh.ID).Error; err != nil {
		t.Fatalf("failed to soft delete classroom: %v", err)
	}
	if err := svc.db.Unscoped().Model(&models.Classroom{}).Where("id = ?", stale.ID).
		Update("deleted_at", time.Now().Add(-31*24*time.Hour)).Error; err != nil {
		t.Fatalf("failed to backdate deletion: %v", err)
	}

	svc.DoAutoDatabaseCleanup()

	var count int64
	if err := svc.db.Unscoped().Model(&models.Classroom{}).Where("id = ?", stale.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 0 {
		t.Error("stale soft-deleted classroom survived cleanup")
	}

	if err := svc.db.Unscoped().Model(&models.Classroom{}).Where("id = ?", fresh.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Error("recently soft-deleted classroom was purged too early")
	}
}

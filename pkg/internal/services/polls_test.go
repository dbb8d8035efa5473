package services

import (
	"errors"
	"testing"
	"time"

	"github.com/classpulse/classpulse/pkg/internal/models"
)

func TestNewPollRequiresOptions(t *testing.T) {
	svc := testService(t)
	owner := mustAccount(t, svc, "prof", models.RoleProfessor)
	classroom := mustClassroom(t, svc, owner, "Ethics 101")

	if _, err := svc.NewPoll(classroom, "Q", nil); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
}

func TestNewPollKeepsOptionOrder(t *testing.T) {
	svc := testService(t)
	owner := mustAccount(t, svc, "prof", models.RoleProfessor)
	classroom := mustClassroom(t, svc, owner, "Ethics 101")

	options := []string{"first", "second", "third", "fourth"}
	poll := mustPoll(t, svc, classroom, "Q", options)

	reloaded, err := svc.GetPollWithID(poll.ID)
	if err != nil {
		t.Fatalf("failed to reload poll: %v", err)
	}
	if len(reloaded.Options) != len(options) {
		t.Fatalf("got %d options, want %d", len(reloaded.Options), len(options))
	}
	for idx, want := range options {
		if reloaded.Options[idx] != want {
			t.Errorf("option %d = %q, want %q", idx, reloaded.Options[idx], want)
		}
	}
}

func TestGetPollMetric(t *testing.T) {
	svc := testService(t)
	owner := mustAccount(t, svc, "prof", models.RoleProfessor)
	bob := mustAccount(t, svc, "bob", models.RoleStudent)
	carol := mustAccount(t, svc, "carol", models.RoleStudent)
	classroom := mustClassroom(t, svc, owner, "Ethics 101")
	poll := mustPoll(t, svc, classroom, "Q", []string{"A", "B"})

	if _, err := svc.AddPollVote(poll, bob, 1); err != nil {
		t.Fatalf("failed to vote: %v", err)
	}
	if _, err := svc.AddPollVote(poll, carol, 1); err != nil {
		t.Fatalf("failed to vote: %v", err)
	}

	metric := svc.GetPollMetric(poll)
	if metric.TotalVotes != 2 {
		t.Errorf("total votes = %d, want 2", metric.TotalVotes)
	}
	if metric.ByOptions[1] != 2 {
		t.Errorf("count for option 1 = %d, want 2", metric.ByOptions[1])
	}
	if len(metric.Voters[1]) != 2 {
		t.Fatalf("got %d voters for option 1, want 2", len(metric.Voters[1]))
	}

	names := map[string]bool{}
	for _, name := range metric.Voters[1] {
		names[name] = true
	}
	if !names["bob"] || !names["carol"] {
		t.Errorf("voters of option 1 = %v, want bob and carol", metric.Voters[1])
	}
}

func TestListClassroomPollNewestFirst(t *testing.T) {
	svc := testService(t)
	owner := mustAccount(t, svc, "prof", models.RoleProfessor)
	classroom := mustClassroom(t, svc, owner, "Ethics 101")

	older := mustPoll(t, svc, classroom, "older", []string{"A"})
	if err := svc.db.Model(&models.Poll{}).Where("id = ?", older.ID).
		Update("created_at", older.CreatedAt.Add(-time.Hour)).Error; err != nil {
		t.Fatalf("failed to backdate poll: %v", err)
	}
	newer := mustPoll(t, svc, classroom, "newer", []string{"A"})

	polls, err := svc.ListClassroomPoll(classroom)
	if err != nil {
		t.Fatalf("failed to list polls: %v", err)
	}
	if len(polls) != 2 {
		t.Fatalf("got %d polls, want 2", len(polls))
	}
	if polls[0].ID != newer.ID {
		t.Errorf("newest poll is not listed first")
	}
}

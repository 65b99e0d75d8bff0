package service

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"storyfeed/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func seedDuplicates(repo *fakeStoryRepo, authorID, content string, n int) {
	for i := 0; i < n; i++ {
		id := authorID
		repo.put(&models.Story{
			ID:        fmt.Sprintf("dup-%s-%d", authorID, i),
			AuthorID:  &id,
			Content:   content,
			IsPublic:  true,
			IsDeleted: i > 0, // hidden duplicates still count
			CreatedAt: time.Now().UTC(),
		})
	}
}

func TestEvaluateSubmission(t *testing.T) {
	tests := []struct {
		name       string
		authorID   string
		banned     bool
		duplicates int
		want       Decision
	}{
		{name: "anonymous skips heuristic", authorID: "", want: DecisionAccept},
		{name: "first submission", authorID: "alice", duplicates: 0, want: DecisionAccept},
		{name: "second submission hidden", authorID: "alice", duplicates: 1, want: DecisionAcceptHidden},
		{name: "nineteenth duplicate still hidden", authorID: "alice", duplicates: 19, want: DecisionAcceptHidden},
		{name: "twentieth duplicate bans", authorID: "alice", duplicates: 20, want: DecisionRejectSilently},
		{name: "already banned author", authorID: "alice", banned: true, want: DecisionRejectSilently},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authors := newFakeAuthorRepo(&models.Author{ID: "alice", Username: "alice", IsBanned: tt.banned})
			stories := newFakeStoryRepo(authors)
			seedDuplicates(stories, "alice", "same old story", tt.duplicates)

			guard := NewAbuseGuard(stories, authors, testLogger())
			got, err := guard.EvaluateSubmission(context.Background(), tt.authorID, "same old story")
			if err != nil {
				t.Fatalf("EvaluateSubmission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvaluateSubmission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateSubmissionBansAtThreshold(t *testing.T) {
	authors := newFakeAuthorRepo(&models.Author{ID: "alice"})
	stories := newFakeStoryRepo(authors)
	seedDuplicates(stories, "alice", "spam", 20)

	guard := NewAbuseGuard(stories, authors, testLogger())
	decision, err := guard.EvaluateSubmission(context.Background(), "alice", "spam")
	if err != nil {
		t.Fatalf("EvaluateSubmission() error = %v", err)
	}
	if decision != DecisionRejectSilently {
		t.Fatalf("EvaluateSubmission() = %v, want DecisionRejectSilently", decision)
	}

	author, err := authors.GetByID(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !author.IsBanned {
		t.Error("author not banned after crossing the threshold")
	}
}

func TestEvaluateSubmissionDifferentContentAccepted(t *testing.T) {
	authors := newFakeAuthorRepo(&models.Author{ID: "alice"})
	stories := newFakeStoryRepo(authors)
	seedDuplicates(stories, "alice", "one story", 5)

	guard := NewAbuseGuard(stories, authors, testLogger())
	decision, err := guard.EvaluateSubmission(context.Background(), "alice", "a different story")
	if err != nil {
		t.Fatalf("EvaluateSubmission() error = %v", err)
	}
	if decision != DecisionAccept {
		t.Errorf("EvaluateSubmission() = %v, want DecisionAccept", decision)
	}
}

func TestEvaluateSubmissionUnknownAuthor(t *testing.T) {
	authors := newFakeAuthorRepo()
	stories := newFakeStoryRepo(authors)

	guard := NewAbuseGuard(stories, authors, testLogger())
	decision, err := guard.EvaluateSubmission(context.Background(), "ghost", "anything")
	if err != nil {
		t.Fatalf("EvaluateSubmission() error = %v", err)
	}
	if decision != DecisionAccept {
		t.Errorf("EvaluateSubmission() = %v, want DecisionAccept", decision)
	}
}

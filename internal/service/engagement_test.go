package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storyfeed/internal/domain"
	"storyfeed/internal/domain/models"
	svc "storyfeed/internal/domain/services"
)

func newEngagementFixture(t *testing.T) (svc.EngagementService, *fakeStoryRepo, *fakeEngagementRepo) {
	t.Helper()
	authors := newFakeAuthorRepo(
		&models.Author{ID: "alice"},
		&models.Author{ID: "bob"},
	)
	stories := newFakeStoryRepo(authors)
	alice := "alice"
	stories.put(&models.Story{ID: "s1", AuthorID: &alice, Content: "x", IsPublic: true, CreatedAt: time.Now().UTC()})

	engagements := newFakeEngagementRepo()
	service := NewEngagementService(engagements, stories, authors, fakeTxManager{}, testLogger())
	return service, stories, engagements
}

func TestLike(t *testing.T) {
	service, stories, _ := newEngagementFixture(t)

	if err := service.Like(context.Background(), "bob", "s1"); err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	story, _ := stories.GetByID(context.Background(), "s1")
	if story.LikeCount != 1 {
		t.Errorf("like count = %d, want 1", story.LikeCount)
	}

	// Second like for the same pair conflicts
	err := service.Like(context.Background(), "bob", "s1")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second Like() error = %v, want ErrConflict", err)
	}

	story, _ = stories.GetByID(context.Background(), "s1")
	if story.LikeCount != 1 {
		t.Errorf("like count after conflict = %d, want 1", story.LikeCount)
	}
}

func TestLikeMissingRows(t *testing.T) {
	service, _, _ := newEngagementFixture(t)

	tests := []struct {
		name     string
		authorID string
		storyID  string
	}{
		{name: "missing story", authorID: "bob", storyID: "nope"},
		{name: "missing author", authorID: "ghost", storyID: "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Like(context.Background(), tt.authorID, tt.storyID)
			if !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("Like() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestLikeCountTracksDistinctAuthors(t *testing.T) {
	service, stories, _ := newEngagementFixture(t)

	if err := service.Like(context.Background(), "alice", "s1"); err != nil {
		t.Fatalf("Like() error = %v", err)
	}
	if err := service.Like(context.Background(), "bob", "s1"); err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	story, _ := stories.GetByID(context.Background(), "s1")
	if story.LikeCount != 2 {
		t.Errorf("like count = %d, want 2", story.LikeCount)
	}
}

func TestUnlike(t *testing.T) {
	service, stories, _ := newEngagementFixture(t)

	// Unliking without a prior like fails
	err := service.Unlike(context.Background(), "bob", "s1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Unlike() without like error = %v, want ErrNotFound", err)
	}

	if err := service.Like(context.Background(), "bob", "s1"); err != nil {
		t.Fatalf("Like() error = %v", err)
	}
	if err := service.Unlike(context.Background(), "bob", "s1"); err != nil {
		t.Fatalf("Unlike() error = %v", err)
	}

	story, _ := stories.GetByID(context.Background(), "s1")
	if story.LikeCount != 0 {
		t.Errorf("like count after unlike = %d, want 0", story.LikeCount)
	}

	// A second unlike on the same pair fails again
	err = service.Unlike(context.Background(), "bob", "s1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("repeat Unlike() error = %v, want ErrNotFound", err)
	}
}

func TestReport(t *testing.T) {
	service, _, engagements := newEngagementFixture(t)

	report, err := service.Report(context.Background(), "s1", "bob")
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if report.AuthorID == nil || *report.AuthorID != "bob" {
		t.Errorf("report author = %v, want bob", report.AuthorID)
	}

	// Anonymous report is allowed
	report, err = service.Report(context.Background(), "s1", "")
	if err != nil {
		t.Fatalf("anonymous Report() error = %v", err)
	}
	if report.AuthorID != nil {
		t.Errorf("anonymous report has author %v", report.AuthorID)
	}

	// Repeated reports by the same author are not deduplicated
	if _, err := service.Report(context.Background(), "s1", "bob"); err != nil {
		t.Fatalf("repeat Report() error = %v", err)
	}
	if len(engagements.reports) != 3 {
		t.Errorf("stored reports = %d, want 3", len(engagements.reports))
	}
}

func TestReportMissingStory(t *testing.T) {
	service, _, _ := newEngagementFixture(t)
	_, err := service.Report(context.Background(), "nope", "bob")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Report() error = %v, want ErrNotFound", err)
	}
}

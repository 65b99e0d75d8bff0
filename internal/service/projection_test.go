package service

import (
	"testing"
	"time"

	"storyfeed/internal/domain/models"
)

func TestProjectStoryTiers(t *testing.T) {
	alice := "alice"
	postcard := "postcards/s1.jpg"
	story := &models.Story{
		ID:          "s1",
		AuthorID:    &alice,
		Content:     "a story",
		Description: "about things",
		CreatedAt:   time.Now().UTC(),
		ViewCount:   7,
		LikeCount:   3,
		IsPublic:    true,
		IsDeleted:   true, // projection must not expose this either way
		Postcard:    &postcard,
		EditToken:   "secret",
		Author:      &models.Author{ID: "alice", Username: "alice", Email: "a@example.com", IsBanned: false},
	}

	public := ProjectStory(story, TierPublic)
	if public.Author != nil {
		t.Error("public projection leaked author sub-fields")
	}
	if public.EditToken != "" {
		t.Error("projection leaked the edit token")
	}
	if public.ID != "s1" || public.ViewCount != 7 || public.LikeCount != 3 {
		t.Errorf("public projection = %+v", public)
	}
	if public.Postcard == nil || *public.Postcard != postcard {
		t.Errorf("postcard = %v", public.Postcard)
	}

	elevated := ProjectStory(story, TierElevated)
	if elevated.Author == nil {
		t.Fatal("elevated projection missing author")
	}
	if elevated.Author.Email != "a@example.com" {
		t.Errorf("elevated author = %+v", elevated.Author)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name   string
		caller models.Caller
		want   ProjectionTier
	}{
		{name: "anonymous", caller: models.Caller{}, want: TierPublic},
		{name: "authenticated", caller: models.Caller{AuthorID: "alice"}, want: TierPublic},
		// Ownership is irrelevant; only the capability flag selects the tier
		{name: "elevated", caller: models.Caller{AuthorID: "root", Elevated: true}, want: TierElevated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierFor(tt.caller); got != tt.want {
				t.Errorf("TierFor(%+v) = %v, want %v", tt.caller, got, tt.want)
			}
		})
	}
}

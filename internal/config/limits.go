package config

const (
	// FeedDefaultLimit is the page size used when the caller sends no limit
	// or an invalid one.
	FeedDefaultLimit = 10

	// FeedMaxLimit caps the page size; larger requests are clamped, not
	// rejected.
	FeedMaxLimit = 50

	// BanThreshold is the number of prior identical public submissions at
	// which the duplicate heuristic stops hiding and bans the author.
	BanThreshold = 20

	// MaxContentLength is the maximum length for story bodies.
	// Stories are meant to be short; 2000 runes is generous.
	MaxContentLength = 2000

	// MaxDescriptionLength is the maximum length for the free-text
	// description attached to a story.
	MaxDescriptionLength = 1000
)

package domain

import (
	"errors"
	"time"

	"github.com/orgball2608/mention-pulse/internal/timestamp"
)

var ErrInvalidTimestamp = errors.New("post timestamp is not a valid date")

// Mention is an accepted post record in typed form.
type Mention struct {
	ID          int
	Subject     string
	Platform    string
	AccountName string
	AccountType string
	Content     string
	Likes       *float64
	Views       *float64
	Engagement  float64
	Sentiment   *float64
	PostedAt    time.Time
	PostURL     string
	CreatedAt   time.Time
}

// NewMention converts a record that already passed validation.
func NewMention(subject string, post RawPost) (Mention, error) {
	ts, _ := post.String(FieldPostTimestamp)
	postedAt, ok := timestamp.Parse(ts)
	if !ok {
		return Mention{}, ErrInvalidTimestamp
	}

	platform, _ := post.String(FieldPlatform)
	accountName, _ := post.String(FieldAccountName)
	accountType, _ := post.String(FieldAccountType)
	content, _ := post.String(FieldContent)
	postURL, _ := post.String(FieldPostURL)
	engagement := EngagementOf(post)

	return Mention{
		Subject:     subject,
		Platform:    platform,
		AccountName: accountName,
		AccountType: accountType,
		Content:     content,
		Likes:       engagement.Likes,
		Views:       engagement.Views,
		Engagement:  engagement.Value(),
		Sentiment:   Number(post[FieldSentiment]),
		PostedAt:    postedAt,
		PostURL:     postURL,
	}, nil
}

// Package validator filters discovery-service post records by schema and content rules.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/internal/timestamp"
)

// Reason names the first rule a record failed.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonMissingField     Reason = "missing_field"
	ReasonInvalidPlatform  Reason = "invalid_platform"
	ReasonNoEngagement     Reason = "no_engagement"
	ReasonInvalidTimestamp Reason = "invalid_timestamp"
)

// Reasons lists every rejection reason in check order.
var Reasons = []Reason{
	ReasonMissingField,
	ReasonInvalidPlatform,
	ReasonNoEngagement,
	ReasonInvalidTimestamp,
}

var (
	validate    = validator.New()
	platformTag = "required,oneof=" + strings.Join(domain.Platforms, " ")
)

// Filter returns the posts that pass every check, in their original order.
// Records are passed through as-is. subject is not used for filtering.
func Filter(posts []domain.RawPost, subject string) []domain.RawPost {
	valid := make([]domain.RawPost, 0, len(posts))
	for _, post := range posts {
		if Check(post) == ReasonNone {
			valid = append(valid, post)
		}
	}
	return valid
}

// Check returns ReasonNone when post is valid, otherwise the first failed rule.
func Check(post domain.RawPost) Reason {
	for _, field := range domain.RequiredFields {
		if _, ok := post[field]; !ok {
			return ReasonMissingField
		}
	}

	if !ValidPlatform(post[domain.FieldPlatform]) {
		return ReasonInvalidPlatform
	}

	if domain.EngagementOf(post).Value() <= 0 {
		return ReasonNoEngagement
	}

	ts, ok := post.String(domain.FieldPostTimestamp)
	if !ok || !timestamp.HasDateTimePrefix(ts) {
		return ReasonInvalidTimestamp
	}

	return ReasonNone
}

// ValidPlatform reports whether v is one of the accepted platform names.
func ValidPlatform(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return validate.Var(s, platformTag) == nil
}

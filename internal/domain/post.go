package domain

import (
	"encoding/json"
	"math"
	"reflect"
)

// Raw record keys as produced by the discovery service.
const (
	FieldPlatform      = "platform"
	FieldAccountName   = "account_name"
	FieldAccountType   = "account_type"
	FieldContent       = "content"
	FieldEngagement    = "engagement"
	FieldPostTimestamp = "post_timestamp"
	FieldPostURL       = "post_url"
	FieldSentiment     = "sentiment_score"

	EngagementLikes = "likes"
	EngagementViews = "views"
)

// RequiredFields must all be present as keys on a record.
var RequiredFields = []string{
	FieldPlatform,
	FieldAccountName,
	FieldContent,
	FieldEngagement,
	FieldPostTimestamp,
	FieldPostURL,
}

const (
	PlatformInstagram = "Instagram"
	PlatformFacebook  = "Facebook"
	PlatformTikTok    = "TikTok"
	PlatformYouTube   = "YouTube"
	PlatformNews      = "News"
)

// Platforms lists the accepted platform values. Matching is case-sensitive.
var Platforms = []string{
	PlatformInstagram,
	PlatformFacebook,
	PlatformTikTok,
	PlatformYouTube,
	PlatformNews,
}

// RawPost is a single post record as decoded from the upstream response.
type RawPost map[string]any

// Batch is one upstream response for one subject.
type Batch struct {
	Subject string    `json:"subject"`
	Posts   []RawPost `json:"posts"`
}

// String returns the string value under key, or false when missing or not a string.
func (p RawPost) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Engagement holds the popularity counters of a post. Nil means absent.
type Engagement struct {
	Likes *float64
	Views *float64
}

// Value returns likes when non-zero, views otherwise. Zero and absence are the same.
func (e Engagement) Value() float64 {
	if e.Likes != nil && *e.Likes != 0 {
		return *e.Likes
	}
	if e.Views != nil {
		return *e.Views
	}
	return 0
}

// EngagementOf decodes the engagement mapping of a record. Any string-keyed map
// is accepted. Anything that is not a mapping yields an empty Engagement.
func EngagementOf(p RawPost) Engagement {
	switch m := p[FieldEngagement].(type) {
	case map[string]any:
		return Engagement{Likes: Number(m[EngagementLikes]), Views: Number(m[EngagementViews])}
	case RawPost:
		return Engagement{Likes: Number(m[EngagementLikes]), Views: Number(m[EngagementViews])}
	}

	rv := reflect.ValueOf(p[FieldEngagement])
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return Engagement{}
	}
	return Engagement{
		Likes: Number(mapValue(rv, EngagementLikes)),
		Views: Number(mapValue(rv, EngagementViews)),
	}
}

func mapValue(m reflect.Value, key string) any {
	v := m.MapIndex(reflect.ValueOf(key).Convert(m.Type().Key()))
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

// Number converts a decoded JSON value to float64. Non-numeric values and NaN return nil.
func Number(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		default:
			return nil
		}
	}

	if math.IsNaN(f) {
		return nil
	}
	return &f
}

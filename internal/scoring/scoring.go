// Package scoring turns per-mention sentiment into per-subject popularity summaries.
package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/orgball2608/mention-pulse/internal/domain"
)

type Trend string

const (
	TrendFastRising  Trend = "Fast Rising"
	TrendRising      Trend = "Rising"
	TrendStable      Trend = "Stable"
	TrendFalling     Trend = "Falling"
	TrendFastFalling Trend = "Fast Falling"
	// TrendNoBaseline is reported when there is no previous score to compare with.
	TrendNoBaseline Trend = "-> Stable"
)

const DefaultWeight = 5

// DefaultWeights are the platform weights on a 0-10 scale.
var DefaultWeights = map[string]int{
	domain.PlatformTikTok:    10,
	domain.PlatformInstagram: 9,
	domain.PlatformYouTube:   8,
	domain.PlatformFacebook:  7,
	domain.PlatformNews:      6,
}

// Thresholds decide endorsement readiness.
type Thresholds struct {
	Confidence float64
	StddevMax  float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Confidence: 0.70,
		StddevMax:  0.25,
	}
}

// NormalizeSentiment clamps score to [-1, 1].
func NormalizeSentiment(score float64) float64 {
	return math.Max(-1, math.Min(1, score))
}

// Weight returns the platform weight as a fraction. Unknown platforms get DefaultWeight.
func Weight(platform string, weights map[string]int) float64 {
	w, ok := weights[platform]
	if !ok {
		w = DefaultWeight
	}
	return float64(w) / 10
}

func WeightedScore(score float64, platform string, weights map[string]int) float64 {
	return score * Weight(platform, weights)
}

// TrendDirection compares current against previous by relative change.
func TrendDirection(current float64, previous *float64) Trend {
	if previous == nil || *previous == 0 {
		return TrendNoBaseline
	}

	deltaPercent := (current - *previous) / math.Abs(*previous) * 100

	switch {
	case deltaPercent > 15:
		return TrendFastRising
	case deltaPercent > 5:
		return TrendRising
	case deltaPercent < -15:
		return TrendFastFalling
	case deltaPercent < -5:
		return TrendFalling
	default:
		return TrendStable
	}
}

// EndorsementReady requires a score strictly above the confidence threshold
// and a volatility strictly below the maximum.
func EndorsementReady(score, stddev float64, t Thresholds) bool {
	return score > t.Confidence && stddev < t.StddevMax
}

var rowFields = []string{"Celebrity", "Platform", "Post_Content", "Engagement_Metric", "Post_Timestamp"}

// RowComplete reports whether a sheet row carries a non-empty value for every column the pipeline reads.
func RowComplete(row map[string]any) bool {
	for _, field := range rowFields {
		if !truthy(row[field]) {
			return false
		}
	}
	return true
}

// MentionRow lays out a stored mention as the sheet row it is exported to.
func MentionRow(m domain.Mention) map[string]any {
	row := map[string]any{
		"Celebrity":         m.Subject,
		"Platform":          m.Platform,
		"Post_Content":      m.Content,
		"Engagement_Metric": m.Engagement,
		"Post_Timestamp":    nil,
	}
	if !m.PostedAt.IsZero() {
		row["Post_Timestamp"] = m.PostedAt.Format(time.RFC3339)
	}
	return row
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	}
	if n := domain.Number(v); n != nil {
		return *n != 0
	}
	// NaN and other non-numeric scalars.
	if _, isFloat := v.(float64); isFloat {
		return false
	}
	return true
}

// Summary aggregates the mentions of one subject.
type Summary struct {
	Subject         string
	Mentions        int
	Scored          int
	MeanSentiment   float64
	StdDev          float64
	WeightedScore   float64
	TotalEngagement float64
	Rank            int
}

// Summarize aggregates mentions for subject. Mentions without a sentiment
// count towards Mentions and TotalEngagement only.
func Summarize(subject string, mentions []domain.Mention, weights map[string]int) Summary {
	s := Summary{Subject: subject, Mentions: len(mentions)}

	var sentiments []float64
	var weighted float64
	for _, m := range mentions {
		s.TotalEngagement += m.Engagement
		if m.Sentiment == nil {
			continue
		}
		score := NormalizeSentiment(*m.Sentiment)
		sentiments = append(sentiments, score)
		weighted += WeightedScore(score, m.Platform, weights)
	}

	s.Scored = len(sentiments)
	if s.Scored == 0 {
		return s
	}

	s.MeanSentiment = mean(sentiments)
	s.StdDev = sampleStdDev(sentiments, s.MeanSentiment)
	s.WeightedScore = weighted / float64(s.Scored)
	return s
}

// Rank orders summaries by weighted score, highest first, and numbers them from 1.
// Ties keep subject order.
func Rank(summaries []Summary) []Summary {
	ranked := make([]Summary, len(summaries))
	copy(ranked, summaries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].WeightedScore != ranked[j].WeightedScore {
			return ranked[i].WeightedScore > ranked[j].WeightedScore
		}
		return ranked[i].Subject < ranked[j].Subject
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses n-1 in the denominator; a single value has no spread.
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

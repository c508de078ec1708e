package domain

import "time"

// SubjectScore is a ranking snapshot for one subject.
type SubjectScore struct {
	ID               int
	Subject          string
	Mentions         int
	MeanSentiment    float64
	StdDev           float64
	WeightedScore    float64
	TotalEngagement  float64
	Trend            string
	EndorsementReady bool
	Rank             int
	ComputedAt       time.Time
}

// IngestReport summarises one ingested batch.
type IngestReport struct {
	Subject     string
	Received    int
	Accepted    int
	Rejected    map[string]int
	Unparseable int
	Stored      int
	Duplicates  int
}

package model

import "time"

// Report is one user report filed against a video. Reports are immutable
// once filed; repeat reports from the same reporter are all retained.
type Report struct {
	ID       int64     `json:"-"`
	VideoID  string    `json:"videoId"`
	Reporter Principal `json:"reporter"`
	Reason   string    `json:"reason"`
	FiledAt  time.Time `json:"timestamp"`
}

// VideoReports groups the reports filed against one video, in filing order.
type VideoReports struct {
	VideoID string   `json:"videoId"`
	Reports []Report `json:"reports"`
}

// ReportRequest is the API request body for filing a report.
type ReportRequest struct {
	Reason string `json:"reason"`
}

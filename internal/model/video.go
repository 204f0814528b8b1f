package model

import "time"

// Video is a content record as the moderation engine sees it. Upload and
// playback are owned elsewhere; this subsystem only reads listings and flips
// the moderation flags.
type Video struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Uploader    Principal `json:"uploader"`
	Featured    bool      `json:"featured"`
	Hidden      bool      `json:"hidden"`
	Views       int64     `json:"views"`
	UploadedAt  time.Time `json:"uploadTime"`
}

// BulkResult is the per-item outcome of a bulk moderation action. Ids the
// content store knew about land in Applied, the rest in Skipped.
type BulkResult struct {
	Applied []string `json:"applied"`
	Skipped []string `json:"skipped"`
}

// BulkRequest is the API request body for bulk video actions.
type BulkRequest struct {
	VideoIDs []string `json:"videoIds"`
}

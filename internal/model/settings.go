package model

// PlatformSettings is the single-row platform configuration the moderation
// engine reads. Values arrive already validated by the admin surface.
type PlatformSettings struct {
	MaxVideoSizeMB     int      `json:"maxVideoSizeMB"`
	AllowedCategories  []string `json:"allowedCategories"`
	ModerationPolicies string   `json:"moderationPolicies"`
}

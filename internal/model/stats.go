package model

// PlatformStats are aggregate platform figures, always derived on demand
// from the source-of-truth stores. Nothing mutates them independently, so
// they cannot drift from the underlying records.
type PlatformStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalVideos    int `json:"totalVideos"`
	TotalReports   int `json:"totalReports"`
	SuspendedUsers int `json:"suspendedUsers"`
	BannedUsers    int `json:"bannedUsers"`
}

package model

import "time"

// UserProfile is the minimal profile record kept alongside moderation state.
type UserProfile struct {
	Principal Principal `json:"principal"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

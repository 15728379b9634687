package models

// PushToken is one registered FCM device token from the admin mobile app.
type PushToken struct {
	Token     string `json:"token"`
	Platform  string `json:"platform,omitempty"`
	CreatedAt string `json:"created_at"`
	LastSeen  string `json:"last_seen"`
}

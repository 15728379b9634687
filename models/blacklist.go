package models

// BlacklistEntry bars an identity (by email, phone or IP) from submitting
// bookings. Email and phone are stored normalized.
type BlacklistEntry struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IP        string `json:"ip"`
	Name      string `json:"name,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

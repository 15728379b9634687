package models

// TouringEntry marks an inclusive date range spent in a city. Type is
// "tour" or "block"; block entries mark travel dates as unbookable on the
// public site.
type TouringEntry struct {
	Start string `json:"start"`
	End   string `json:"end"`
	City  string `json:"city"`
	Type  string `json:"type,omitempty"`
	Notes string `json:"notes,omitempty"`
}

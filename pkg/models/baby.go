package models

// BabyRecord is one growth measurement of the baby
type BabyRecord struct {
	ID                string  `json:"id"`
	Date              string  `json:"date"` // YYYY-MM-DD
	Weight            float64 `json:"weight,omitempty"`            // kg
	Height            float64 `json:"height,omitempty"`            // cm
	HeadCircumference float64 `json:"headCircumference,omitempty"` // cm
	Notes             string  `json:"notes,omitempty"`
}

// FeedingRecord is one feeding entry
type FeedingRecord struct {
	ID       string `json:"id"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM
	Type     string `json:"type"` // breastfeed, formula or mixed
	Duration int    `json:"duration,omitempty"` // minutes
	Amount   int    `json:"amount,omitempty"`   // ml
	Side     string `json:"side,omitempty"`     // left, right or both
	Notes    string `json:"notes,omitempty"`
}

// DiaperRecord is one diaper change entry
type DiaperRecord struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Type  string `json:"type"` // wet, dirty or both
	Notes string `json:"notes,omitempty"`
}

// VaccineRecord tracks a scheduled or completed vaccination
type VaccineRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ScheduledDate string `json:"scheduledDate"`
	CompletedDate string `json:"completedDate,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

package models

// PregnancyInfo is the user-entered pregnancy baseline. Either the due date
// or the last menstrual period date may be set; the other is derived.
// Dates use the YYYY-MM-DD form.
type PregnancyInfo struct {
	DueDate        string `json:"dueDate,omitempty"`
	LastPeriodDate string `json:"lastPeriodDate,omitempty"`
}

// PregnancyStatus is the derived view of the current pregnancy state
type PregnancyStatus struct {
	CurrentWeek   int      `json:"currentWeek"`
	CurrentDay    int      `json:"currentDay"`
	Trimester     int      `json:"trimester"`
	DueDate       string   `json:"dueDate"`
	DaysUntilDue  int      `json:"daysUntilDue"`
	Milestone     string   `json:"milestone"`
	Description   string   `json:"description"`
	PastCheckups  []string `json:"pastCheckups"`
	NextCheckups  []string `json:"nextCheckups"`
	FormattedWeek string   `json:"formattedWeek"`
}

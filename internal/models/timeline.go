package models

import "time"

// TimelineItemType distinguishes report events from vitals events.
type TimelineItemType string

const (
	TimelineItemReport TimelineItemType = "report"
	TimelineItemVitals TimelineItemType = "vitals"
)

// TimelineItem is one event in the chronological health feed. Report fields
// and vitals fields are mutually exclusive; Type says which set is populated.
type TimelineItem struct {
	// The timeline endpoint re-keys entity ids as plain "id", unlike the
	// resource endpoints which use Mongo-style "_id".
	ID           string           `json:"id"`
	Type         TimelineItemType `json:"type"`
	Date         time.Time        `json:"date"`
	FamilyMember *FamilyMember    `json:"familyMember,omitempty"`

	// Report events.
	FileName   string     `json:"fileName,omitempty"`
	ReportType ReportType `json:"reportType,omitempty"`
	AIInsight  *AIInsight `json:"aiInsight,omitempty"`

	// Vitals events.
	BloodPressure *BloodPressure `json:"bloodPressure,omitempty"`
	BloodSugar    float64        `json:"bloodSugar,omitempty"`
	Weight        float64        `json:"weight,omitempty"`
	Notes         string         `json:"notes,omitempty"`
}

// DashboardSummary is the aggregate behind the dashboard screen.
type DashboardSummary struct {
	TotalReports       int        `json:"totalReports"`
	TotalVitals        int        `json:"totalVitals"`
	TotalFamilyMembers int        `json:"totalFamilyMembers"`
	LastActivity       *time.Time `json:"lastActivity,omitempty"`
}

// Pagination accompanies every list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

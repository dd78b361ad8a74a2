package models

// FamilyMember is a dependent whose records the account owner manages.
type FamilyMember struct {
	ID                string   `json:"_id,omitempty"`
	Name              string   `json:"name"`
	Relationship      string   `json:"relationship"`
	DateOfBirth       string   `json:"dateOfBirth,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	BloodGroup        string   `json:"bloodGroup,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Email             string   `json:"email,omitempty"`
	EmergencyContact  string   `json:"emergencyContact,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`
	MedicalConditions []string `json:"medicalConditions,omitempty"`
	Medications       []string `json:"medications,omitempty"`
	ReportsCount      int      `json:"reportsCount,omitempty"`
	VitalsCount       int      `json:"vitalsCount,omitempty"`
}

// FamilyOverview aggregates counts across all family members.
type FamilyOverview struct {
	TotalMembers int            `json:"totalMembers"`
	TotalReports int            `json:"totalReports"`
	TotalVitals  int            `json:"totalVitals"`
	Members      []FamilyMember `json:"members,omitempty"`
}

// HealthSummary is the per-member rollup returned by the health-summary
// endpoint.
type HealthSummary struct {
	Member        FamilyMember `json:"member"`
	RecentReports []Report     `json:"recentReports,omitempty"`
	RecentVitals  []VitalSigns `json:"recentVitals,omitempty"`
}

package models

import "time"

// BloodPressure is a systolic/diastolic pair in mmHg.
type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// VitalSigns is a single vitals entry. BloodSugar is mg/dL, Weight is kg.
// FamilyMemberID is empty when the entry belongs to the account owner.
type VitalSigns struct {
	ID              string         `json:"_id,omitempty"`
	BloodPressure   *BloodPressure `json:"bloodPressure,omitempty"`
	BloodSugar      float64        `json:"bloodSugar,omitempty"`
	Weight          float64        `json:"weight,omitempty"`
	MeasurementDate time.Time      `json:"measurementDate"`
	Notes           string         `json:"notes,omitempty"`
	FamilyMemberID  string         `json:"familyMemberId,omitempty"`
	FamilyMember    *FamilyMember  `json:"familyMember,omitempty"`
}

// VitalsStats is the aggregate returned by the stats endpoint for a period.
type VitalsStats struct {
	Period            string         `json:"period"`
	Count             int            `json:"count"`
	AvgBloodPressure  *BloodPressure `json:"avgBloodPressure,omitempty"`
	AvgBloodSugar     float64        `json:"avgBloodSugar,omitempty"`
	AvgWeight         float64        `json:"avgWeight,omitempty"`
	LatestMeasurement *VitalSigns    `json:"latestMeasurement,omitempty"`
}

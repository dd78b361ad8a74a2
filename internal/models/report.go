package models

import "time"

// ReportType classifies an uploaded medical report.
type ReportType string

const (
	ReportTypeBloodTest  ReportType = "blood-test"
	ReportTypeUrineTest  ReportType = "urine-test"
	ReportTypeXRay       ReportType = "x-ray"
	ReportTypeCTScan     ReportType = "ct-scan"
	ReportTypeMRI        ReportType = "mri"
	ReportTypeECG        ReportType = "ecg"
	ReportTypeUltrasound ReportType = "ultrasound"
	ReportTypeOther      ReportType = "other"
)

// ReportTypes lists the values accepted by the upload endpoint, in menu order.
var ReportTypes = []ReportType{
	ReportTypeBloodTest,
	ReportTypeUrineTest,
	ReportTypeXRay,
	ReportTypeCTScan,
	ReportTypeMRI,
	ReportTypeECG,
	ReportTypeUltrasound,
	ReportTypeOther,
}

// Valid reports whether t is one of the accepted report types.
func (t ReportType) Valid() bool {
	for _, rt := range ReportTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// Report is an uploaded medical report together with its processing state
// and, once analysis has completed, the AI-generated insight.
type Report struct {
	ID           string        `json:"_id"`
	FileName     string        `json:"fileName"`
	ReportType   ReportType    `json:"reportType"`
	FileSize     int64         `json:"fileSize"`
	UploadDate   time.Time     `json:"uploadDate"`
	IsProcessed  bool          `json:"isProcessed"`
	FileURL      string        `json:"cloudinaryUrl,omitempty"`
	FamilyMember *FamilyMember `json:"familyMember,omitempty"`
	AIInsight    *AIInsight    `json:"aiInsight,omitempty"`
}

// AIInsight is the analysis the backend attaches to a processed report.
// Summaries come in English and Roman Urdu.
type AIInsight struct {
	SummaryEnglish      string              `json:"summaryEnglish"`
	SummaryRomanUrdu    string              `json:"summaryRomanUrdu"`
	AbnormalValues      []AbnormalValue     `json:"abnormalValues,omitempty"`
	FoodRecommendations FoodRecommendations `json:"foodRecommendations"`
	DoctorQuestions     []string            `json:"doctorQuestions,omitempty"`
	Disclaimer          string              `json:"disclaimer,omitempty"`
}

// AbnormalValue flags a single out-of-range measurement found in a report.
type AbnormalValue struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	NormalRange string `json:"normalRange,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

// FoodRecommendations are dietary suggestions derived from a report.
type FoodRecommendations struct {
	Include []string `json:"include,omitempty"`
	Avoid   []string `json:"avoid,omitempty"`
}

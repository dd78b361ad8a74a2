package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate/cli/internal/models"
)

func reportsFixture() []models.Report {
	return []models.Report{
		{FileName: "cbc.pdf", ReportType: models.ReportTypeBloodTest, AIInsight: &models.AIInsight{
			DoctorQuestions:     []string{"Ask about iron levels"},
			FoodRecommendations: models.FoodRecommendations{Include: []string{"spinach"}},
		}},
		{FileName: "chest.png", ReportType: models.ReportTypeXRay, FamilyMember: &models.FamilyMember{Name: "Ali"}},
		{FileName: "sugar.pdf", ReportType: models.ReportTypeBloodTest, FamilyMember: &models.FamilyMember{Name: "Sara"}},
	}
}

func TestRespond_ReportsKeyword(t *testing.T) {
	out := Respond("tell me about my reports", reportsFixture())
	assert.Contains(t, out, "3 medical reports")
	assert.Contains(t, out, `"cbc.pdf"`)
	assert.Contains(t, out, "blood-test")
}

func TestRespond_ReportsKeyword_NoReports(t *testing.T) {
	out := Respond("any analysis for me?", nil)
	assert.Contains(t, out, "don't see any medical reports")
}

func TestRespond_DietKeyword_PersonalizedWhenInsightPresent(t *testing.T) {
	out := Respond("what should my diet be", reportsFixture())
	assert.Contains(t, out, "iron-rich foods")
	assert.Contains(t, out, "personalized dietary recommendations")
}

func TestRespond_DietKeyword_GenericWithoutInsight(t *testing.T) {
	out := Respond("nutrition advice", []models.Report{{FileName: "x.pdf"}})
	assert.Contains(t, out, "iron-rich foods")
	assert.NotContains(t, out, "personalized dietary recommendations")
}

func TestRespond_DoctorKeyword(t *testing.T) {
	out := Respond("questions for my doctor", reportsFixture())
	assert.Contains(t, out, "energy level")
	assert.Contains(t, out, "next doctor visit")
}

func TestRespond_FamilyKeyword_NamesEachMemberOnce(t *testing.T) {
	reports := append(reportsFixture(), models.Report{FileName: "dup.pdf", FamilyMember: &models.FamilyMember{Name: "Ali"}})
	out := Respond("how is my family", reports)
	assert.Contains(t, out, "Ali, Sara")
}

func TestRespond_FamilyKeyword_NoFamilyReports(t *testing.T) {
	out := Respond("family member records", nil)
	assert.Contains(t, out, "add family members")
}

func TestRespond_SummaryKeyword(t *testing.T) {
	out := Respond("give me an overview", reportsFixture())
	assert.Contains(t, out, "Total Reports: 3")
	assert.Contains(t, out, "Self Reports: 1")
	assert.Contains(t, out, "Family Reports: 2")
	assert.Contains(t, out, "1. cbc.pdf (blood-test)")
}

func TestRespond_Default(t *testing.T) {
	out := Respond("what's the weather", reportsFixture())
	assert.Contains(t, out, "be more specific")
}

func TestRespond_IsPure(t *testing.T) {
	reports := reportsFixture()
	first := Respond("summary please", reports)
	second := Respond("summary please", reports)
	require.Equal(t, first, second)
}

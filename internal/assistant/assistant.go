// Package assistant generates canned health-assistant replies by keyword
// matching against the user's previously fetched reports. It is a pure
// function of its inputs: no hidden state, no network calls.
package assistant

import (
	"fmt"
	"strings"

	"github.com/healthmate/cli/internal/models"
)

// Greeting opens every assistant conversation.
const Greeting = "Hello! I'm your AI health assistant. I can help you understand your medical reports, answer health questions, and provide guidance. How can I assist you today?"

// Respond maps the user's input and their report history to a reply.
// Matching is case-insensitive substring search, first rule wins.
func Respond(input string, reports []models.Report) string {
	in := strings.ToLower(input)

	recent := reports
	if len(recent) > 3 {
		recent = recent[:3]
	}

	var familyReports, selfReports []models.Report
	for _, r := range reports {
		if r.FamilyMember != nil {
			familyReports = append(familyReports, r)
		} else {
			selfReports = append(selfReports, r)
		}
	}

	switch {
	case containsAny(in, "report", "analysis"):
		return respondReports(reports, recent)
	case containsAny(in, "diet", "food", "nutrition"):
		return respondDiet(recent)
	case containsAny(in, "doctor", "question"):
		return respondDoctor(recent)
	case containsAny(in, "family", "member"):
		return respondFamily(familyReports)
	case containsAny(in, "summary", "overview"):
		return respondSummary(reports, selfReports, familyReports, recent)
	case containsAny(in, "health", "wellness"):
		return "Maintaining good health involves:\n- Regular exercise\n- Balanced nutrition\n- Adequate sleep\n- Stress management\n- Regular health checkups\n\nBased on your medical reports, I can provide personalized wellness recommendations. Would you like specific advice on any of these areas?"
	default:
		return "Thank you for your question! I'm here to help with health-related queries, medical report analysis, and wellness guidance. I can see your health data and provide personalized insights. Could you please be more specific about what you'd like to know?"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func respondReports(all, recent []models.Report) string {
	if len(all) == 0 {
		return "I don't see any medical reports in your account yet. You can upload reports from the upload screen, and I'll be able to provide detailed analysis and insights!"
	}

	plural := ""
	if len(all) > 1 {
		plural = "s"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "I can see you have %d medical report%s in your account. ", len(all), plural)

	if len(recent) > 0 {
		latest := recent[0]
		fmt.Fprintf(&b, "Your most recent report is %q (%s). ", latest.FileName, latest.ReportType)
		if latest.AIInsight != nil {
			b.WriteString("Based on the AI analysis, I can help explain any specific values or provide recommendations. ")
		}
	}

	b.WriteString("Would you like me to explain any specific report or provide health recommendations?")
	return b.String()
}

func respondDiet(recent []models.Report) string {
	response := "For optimal health, I recommend:\n- Including iron-rich foods like spinach and lean meats\n- Avoiding processed foods with high sodium\n- Eating green leafy vegetables for vitamins\n- Maintaining a balanced diet with lean proteins\n\n"

	for _, r := range recent {
		if r.AIInsight != nil && (len(r.AIInsight.FoodRecommendations.Include) > 0 || len(r.AIInsight.FoodRecommendations.Avoid) > 0) {
			return response + "Based on your recent reports, I can provide personalized dietary recommendations. Would you like me to analyze your specific nutritional needs?"
		}
	}
	return response
}

func respondDoctor(recent []models.Report) string {
	response := "Here are some important questions to ask your doctor:\n- How is your overall energy level?\n- Are you experiencing any fatigue or weakness?\n- Have you noticed any changes in your appetite?\n\n"

	for _, r := range recent {
		if r.AIInsight != nil && len(r.AIInsight.DoctorQuestions) > 0 {
			return response + "Based on your recent reports, I can suggest specific questions tailored to your health status. Would you like me to generate personalized questions for your next doctor visit?"
		}
	}
	return response
}

func respondFamily(familyReports []models.Report) string {
	if len(familyReports) == 0 {
		return "I can help you manage your family's health records! You can add family members from the family screen, and I'll be able to track their reports and provide family-specific health insights."
	}

	seen := make(map[string]struct{})
	var names []string
	for _, r := range familyReports {
		name := r.FamilyMember.Name
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return fmt.Sprintf("I can see you're tracking health for your family members: %s. I can help you manage their health records, analyze their reports, and provide family-specific health guidance. What would you like to know about your family's health?", strings.Join(names, ", "))
}

func respondSummary(all, self, family, recent []models.Report) string {
	if len(all) == 0 {
		return "You don't have any medical reports yet. Upload some reports to get a comprehensive health overview!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's your health overview:\n- Total Reports: %d\n- Self Reports: %d\n- Family Reports: %d\n\n", len(all), len(self), len(family))

	if len(recent) > 0 {
		b.WriteString("Recent Reports:\n")
		for i, r := range recent {
			fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, r.FileName, r.ReportType)
		}
	}
	return b.String()
}

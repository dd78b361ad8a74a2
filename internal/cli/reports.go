package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/healthmate/cli/internal/api"
	"github.com/healthmate/cli/internal/models"
	"github.com/healthmate/cli/internal/netx"
)

func formatReportLine(r models.Report) string {
	status := "pending"
	if r.IsProcessed {
		status = "processed"
	}
	return fmt.Sprintf("%s  %-12s %-10s %s", r.ID, r.ReportType, status, r.FileName)
}

// Upload reads a local file and submits it for analysis. Report type comes
// from a fixed menu; the family member is optional and picked from the
// user's actual family list.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Path to the report file", os.Stdout)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot open file: " + err.Error())
		return nil
	}
	defer f.Close()

	options := make([]string, len(models.ReportTypes))
	for i, t := range models.ReportTypes {
		options[i] = string(t)
	}
	choice, err := GetChoice(a.reader, "Report type:", options, os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	familyMemberID, err := a.pickFamilyMember(ctx)
	if err != nil {
		return err
	}

	report, err := a.files.UploadReport(ctx, f, filepath.Base(path), models.ReportType(choice), familyMemberID)
	if err != nil {
		printlnFn("Upload failed: " + err.Error())
		return nil
	}

	printlnFn("Uploaded " + report.FileName + " (id " + report.ID + ")")
	if report.IsProcessed && report.AIInsight != nil {
		printInsight(report.AIInsight)
	} else {
		printlnFn("Analysis is pending; run 'analyze " + report.ID + "' to request it.")
	}
	return nil
}

// pickFamilyMember offers the family list as a menu. An empty selection files
// the record under the account owner.
func (a *App) pickFamilyMember(ctx context.Context) (string, error) {
	members, err := a.family.ListFamilyMembers(ctx)
	if err != nil || len(members) == 0 {
		return "", nil
	}

	options := []string{"myself"}
	for _, m := range members {
		options = append(options, m.Name+" ("+m.Relationship+")")
	}
	choice, err := GetChoice(a.reader, "Who is this record for?", options, os.Stdout)
	if err != nil {
		return "", nil
	}
	for i, m := range members {
		if options[i+1] == choice {
			return m.ID, nil
		}
	}
	return "", nil
}

// Reports lists the user's reports, optionally narrowed by type.
func (a *App) Reports(ctx context.Context) error {
	typeText, err := getSimpleText(a.reader, "Filter by type (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	filter := api.ReportFilter{Page: 1, Limit: 20}
	if typeText != "" {
		rt := models.ReportType(typeText)
		if !rt.Valid() {
			printlnFn("Unknown report type: " + typeText)
			return nil
		}
		filter.ReportType = rt
	}

	page, err := a.files.ListReports(ctx, filter)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if len(page.Reports) == 0 {
		printlnFn("No reports yet.")
		return nil
	}
	for _, r := range page.Reports {
		printlnFn(formatReportLine(r))
	}
	printlnFn(fmt.Sprintf("Page %d of %d (%d total)", page.Pagination.Page, page.Pagination.Pages, page.Pagination.Total))
	return nil
}

// resolveID takes the id from command args or prompts for it.
func (a *App) resolveID(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, os.Stdout)
}

// ShowReport renders one report in full, including its analysis if present.
func (a *App) ShowReport(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "Report id")
	if err != nil {
		return err
	}

	r, err := a.files.GetReport(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	printlnFn(formatReportLine(*r))
	printlnFn(fmt.Sprintf("Uploaded: %s  Size: %d bytes", r.UploadDate.Format("2006-01-02 15:04"), r.FileSize))
	if r.FamilyMember != nil {
		printlnFn("For: " + r.FamilyMember.Name)
	}
	if r.FileURL != "" {
		printlnFn("File: " + r.FileURL)
	}
	if r.AIInsight != nil {
		printInsight(r.AIInsight)
	}
	return nil
}

// DeleteReport removes a report after confirmation.
func (a *App) DeleteReport(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "Report id")
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, "Delete report "+id+"? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}

	if err := a.files.DeleteReport(ctx, id); err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn("Report deleted.")
	return nil
}

// Download saves a report's original file into the current directory.
func (a *App) Download(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "Report id")
	if err != nil {
		return err
	}

	r, err := a.files.GetReport(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}
	if r.FileURL == "" {
		printlnFn("No file is stored for this report.")
		return nil
	}

	data, err := netx.DownloadFile(ctx, r.FileURL)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if err := os.WriteFile(r.FileName, data, 0o600); err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn(fmt.Sprintf("Saved %s (%d bytes)", r.FileName, len(data)))
	return nil
}

// Analyze requests (or re-requests) AI analysis for a report.
func (a *App) Analyze(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "Report id")
	if err != nil {
		return err
	}

	r, err := a.files.AnalyzeReport(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if r.AIInsight != nil {
		printInsight(r.AIInsight)
	} else {
		printlnFn("Analysis requested; check back shortly.")
	}
	return nil
}

func printInsight(ins *models.AIInsight) {
	printlnFn("--- Analysis ---")
	printlnFn(ins.SummaryEnglish)
	if ins.SummaryRomanUrdu != "" {
		printlnFn("(Roman Urdu) " + ins.SummaryRomanUrdu)
	}
	if len(ins.AbnormalValues) > 0 {
		printlnFn("Abnormal values:")
		for _, v := range ins.AbnormalValues {
			line := fmt.Sprintf("  %s: %s", v.Name, v.Value)
			if v.NormalRange != "" {
				line += " (normal " + v.NormalRange + ")"
			}
			printlnFn(line)
		}
	}
	if len(ins.FoodRecommendations.Include) > 0 {
		printlnFn("Eat more: " + strings.Join(ins.FoodRecommendations.Include, ", "))
	}
	if len(ins.FoodRecommendations.Avoid) > 0 {
		printlnFn("Avoid: " + strings.Join(ins.FoodRecommendations.Avoid, ", "))
	}
	if len(ins.DoctorQuestions) > 0 {
		printlnFn("Questions for your doctor:")
		for _, q := range ins.DoctorQuestions {
			printlnFn("  - " + q)
		}
	}
	if ins.Disclaimer != "" {
		printlnFn(ins.Disclaimer)
	}
}

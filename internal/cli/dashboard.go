package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/healthmate/cli/internal/api"
	"github.com/healthmate/cli/internal/models"
)

// Dashboard fetches the summary, the 30-day vitals stats and the most recent
// reports concurrently and renders whatever succeeded. One failing section
// does not blank the others.
func (a *App) Dashboard(ctx context.Context) error {
	var (
		wg      sync.WaitGroup
		summary *models.DashboardSummary
		stats   *models.VitalsStats
		recent  *api.ReportsPage
		sumErr  error
		statErr error
		repErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		summary, sumErr = a.timeline.Dashboard(ctx)
	}()
	go func() {
		defer wg.Done()
		stats, statErr = a.vitals.VitalsStats(ctx, "30d")
	}()
	go func() {
		defer wg.Done()
		recent, repErr = a.files.ListReports(ctx, api.ReportFilter{Page: 1, Limit: 5})
	}()
	wg.Wait()

	if sumErr != nil {
		printlnFn("Summary unavailable: " + sumErr.Error())
	} else {
		printlnFn(fmt.Sprintf("Reports: %d   Vitals: %d   Family members: %d",
			summary.TotalReports, summary.TotalVitals, summary.TotalFamilyMembers))
		if summary.LastActivity != nil {
			printlnFn("Last activity: " + summary.LastActivity.Format("2006-01-02 15:04"))
		}
	}

	if statErr != nil {
		printlnFn("Vitals stats unavailable: " + statErr.Error())
	} else if stats.Count > 0 {
		line := fmt.Sprintf("Last 30 days: %d vitals entries", stats.Count)
		if stats.AvgBloodPressure != nil {
			line += fmt.Sprintf(", avg BP %d/%d", stats.AvgBloodPressure.Systolic, stats.AvgBloodPressure.Diastolic)
		}
		if stats.AvgBloodSugar > 0 {
			line += fmt.Sprintf(", avg sugar %.1f mg/dL", stats.AvgBloodSugar)
		}
		printlnFn(line)
	}

	if repErr != nil {
		printlnFn("Recent reports unavailable: " + repErr.Error())
	} else if len(recent.Reports) > 0 {
		printlnFn("Recent reports:")
		for _, r := range recent.Reports {
			printlnFn("  " + formatReportLine(r))
		}
	}

	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/healthmate/cli/internal/api"
	"github.com/healthmate/cli/internal/models"
)

// Timeline shows the chronological health feed, newest first, optionally
// narrowed to reports or vitals.
func (a *App) Timeline(ctx context.Context) error {
	kind, err := getSimpleText(a.reader, "Show only 'report' or 'vitals'? (empty for both)", os.Stdout)
	if err != nil {
		return err
	}

	filter := api.TimelineFilter{Page: 1, Limit: 20}
	switch kind {
	case "":
	case string(models.TimelineItemReport), string(models.TimelineItemVitals):
		filter.Type = models.TimelineItemType(kind)
	default:
		printlnFn("Unknown type: " + kind)
		return nil
	}

	page, err := a.timeline.Timeline(ctx, filter)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if len(page.Timeline) == 0 {
		printlnFn("Nothing here yet.")
		return nil
	}

	for _, item := range page.Timeline {
		printlnFn(formatTimelineItem(item))
	}
	printlnFn(fmt.Sprintf("Page %d of %d (%d total)", page.Pagination.Page, page.Pagination.Pages, page.Pagination.Total))
	return nil
}

func formatTimelineItem(item models.TimelineItem) string {
	line := item.Date.Format("2006-01-02 15:04")

	switch item.Type {
	case models.TimelineItemReport:
		line += fmt.Sprintf("  report  %s (%s)", item.FileName, item.ReportType)
	case models.TimelineItemVitals:
		line += "  vitals"
		if item.BloodPressure != nil {
			line += fmt.Sprintf("  BP %d/%d", item.BloodPressure.Systolic, item.BloodPressure.Diastolic)
		}
		if item.BloodSugar > 0 {
			line += fmt.Sprintf("  sugar %.1f", item.BloodSugar)
		}
		if item.Weight > 0 {
			line += fmt.Sprintf("  weight %.1f kg", item.Weight)
		}
	default:
		line += "  " + string(item.Type)
	}

	if item.FamilyMember != nil {
		line += "  (" + item.FamilyMember.Name + ")"
	}
	return line
}

package cli

import (
	"context"
	"os"

	"github.com/healthmate/cli/internal/api"
	"github.com/healthmate/cli/internal/assistant"
	"github.com/healthmate/cli/internal/models"
)

// Assistant runs the health-assistant sub-loop. Responses are generated
// locally from the user's report list; an empty line returns to the main
// prompt.
func (a *App) Assistant(ctx context.Context) error {
	var reports []models.Report
	if page, err := a.files.ListReports(ctx, api.ReportFilter{Page: 1, Limit: 50}); err == nil {
		reports = page.Reports
	}

	printlnFn(assistant.Greeting)
	printlnFn("(empty line to leave the assistant)")

	for {
		question, err := getSimpleText(a.reader, "You", os.Stdout)
		if err != nil {
			return err
		}
		if question == "" {
			return nil
		}
		printlnFn(assistant.Respond(question, reports))
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/healthmate/cli/internal/api"
	"github.com/healthmate/cli/internal/models"
)

func formatVitalsLine(v models.VitalSigns) string {
	line := fmt.Sprintf("%s  %s", v.ID, v.MeasurementDate.Format("2006-01-02 15:04"))
	if v.BloodPressure != nil {
		line += fmt.Sprintf("  BP %d/%d", v.BloodPressure.Systolic, v.BloodPressure.Diastolic)
	}
	if v.BloodSugar > 0 {
		line += fmt.Sprintf("  sugar %.1f", v.BloodSugar)
	}
	if v.Weight > 0 {
		line += fmt.Sprintf("  weight %.1f kg", v.Weight)
	}
	if v.FamilyMember != nil {
		line += "  (" + v.FamilyMember.Name + ")"
	}
	return line
}

// promptVitals collects a vitals entry. All measurements are optional but at
// least one must be provided.
func (a *App) promptVitals() (models.VitalSigns, bool, error) {
	var entry models.VitalSigns

	sys, err := GetOptionalNumber(a.reader, "Systolic blood pressure", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return entry, false, nil
	}
	dia, err := GetOptionalNumber(a.reader, "Diastolic blood pressure", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return entry, false, nil
	}
	if sys > 0 && dia > 0 {
		entry.BloodPressure = &models.BloodPressure{Systolic: int(sys), Diastolic: int(dia)}
	}

	sugar, err := GetOptionalNumber(a.reader, "Blood sugar (mg/dL)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return entry, false, nil
	}
	entry.BloodSugar = sugar

	weight, err := GetOptionalNumber(a.reader, "Weight (kg)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return entry, false, nil
	}
	entry.Weight = weight

	if entry.BloodPressure == nil && entry.BloodSugar == 0 && entry.Weight == 0 {
		printlnFn("Enter at least one measurement.")
		return entry, false, nil
	}

	notes, err := getSimpleText(a.reader, "Notes (optional)", os.Stdout)
	if err != nil {
		return entry, false, err
	}
	entry.Notes = notes
	entry.MeasurementDate = time.Now()

	return entry, true, nil
}

// AddVitals records a new vitals entry, optionally for a family member.
func (a *App) AddVitals(ctx context.Context) error {
	entry, ok, err := a.promptVitals()
	if err != nil || !ok {
		return err
	}

	entry.FamilyMemberID, err = a.pickFamilyMember(ctx)
	if err != nil {
		return err
	}

	saved, err := a.vitals.AddVitals(ctx, entry)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn("Recorded: " + formatVitalsLine(*saved))
	return nil
}

// Vitals lists recent vitals entries.
func (a *App) Vitals(ctx context.Context) error {
	page, err := a.vitals.ListVitals(ctx, api.VitalsFilter{Page: 1, Limit: 20})
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if len(page.Vitals) == 0 {
		printlnFn("No vitals recorded yet.")
		return nil
	}
	for _, v := range page.Vitals {
		printlnFn(formatVitalsLine(v))
	}
	printlnFn(fmt.Sprintf("Page %d of %d (%d total)", page.Pagination.Page, page.Pagination.Pages, page.Pagination.Total))
	return nil
}

// EditVitals replaces the measurements of an existing entry.
func (a *App) EditVitals(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "Vitals id")
	if err != nil {
		return err
	}

	current, err := a.vitals.GetVitals(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn("Editing: " + formatVitalsLine(*current))

	entry, ok, err := a.promptVitals()
	if err != nil || !ok {
		return err
	}
	entry.FamilyMemberID = current.FamilyMemberID

	saved, err := a.vitals.UpdateVitals(ctx, id, entry)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn("Updated: " + formatVitalsLine(*saved))
	return nil
}

// DeleteVitals removes a vitals entry after confirmation.
func (a *App) DeleteVitals(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "Vitals id")
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, "Delete vitals entry "+id+"? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}

	if err := a.vitals.DeleteVitals(ctx, id); err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn("Entry deleted.")
	return nil
}

// VitalsStats shows aggregates for a chosen period.
func (a *App) VitalsStats(ctx context.Context) error {
	period, err := GetChoice(a.reader, "Period:", []string{"7d", "30d", "90d"}, os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	stats, err := a.vitals.VitalsStats(ctx, period)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	printlnFn(fmt.Sprintf("Entries in the last %s: %d", stats.Period, stats.Count))
	if stats.AvgBloodPressure != nil {
		printlnFn(fmt.Sprintf("Average blood pressure: %d/%d", stats.AvgBloodPressure.Systolic, stats.AvgBloodPressure.Diastolic))
	}
	if stats.AvgBloodSugar > 0 {
		printlnFn(fmt.Sprintf("Average blood sugar: %.1f mg/dL", stats.AvgBloodSugar))
	}
	if stats.AvgWeight > 0 {
		printlnFn(fmt.Sprintf("Average weight: %.1f kg", stats.AvgWeight))
	}
	if stats.LatestMeasurement != nil {
		printlnFn("Latest: " + formatVitalsLine(*stats.LatestMeasurement))
	}
	return nil
}

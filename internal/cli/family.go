package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/healthmate/cli/internal/models"
)

func formatFamilyLine(m models.FamilyMember) string {
	line := fmt.Sprintf("%s  %-20s %s", m.ID, m.Name, m.Relationship)
	if m.ReportsCount > 0 || m.VitalsCount > 0 {
		line += fmt.Sprintf("  (%d reports, %d vitals)", m.ReportsCount, m.VitalsCount)
	}
	return line
}

// Family shows the overview and the member list.
func (a *App) Family(ctx context.Context) error {
	overview, err := a.family.FamilyOverview(ctx)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	printlnFn(fmt.Sprintf("Members: %d   Reports: %d   Vitals: %d",
		overview.TotalMembers, overview.TotalReports, overview.TotalVitals))

	members := overview.Members
	if len(members) == 0 {
		members, err = a.family.ListFamilyMembers(ctx)
		if err != nil {
			printlnFn(err.Error())
			return nil
		}
	}
	if len(members) == 0 {
		printlnFn("No family members yet. Use 'addfamily' to add one.")
		return nil
	}
	for _, m := range members {
		printlnFn(formatFamilyLine(m))
	}
	return nil
}

// promptFamilyMember collects member details. Name and relationship are
// required; everything else may be left empty.
func (a *App) promptFamilyMember() (models.FamilyMember, bool, error) {
	var m models.FamilyMember

	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return m, false, err
	}
	if name == "" {
		printlnFn("Name is required.")
		return m, false, nil
	}
	m.Name = name

	rel, err := getSimpleText(a.reader, "Relationship (e.g. mother, son)", os.Stdout)
	if err != nil {
		return m, false, err
	}
	if rel == "" {
		printlnFn("Relationship is required.")
		return m, false, nil
	}
	m.Relationship = rel

	if m.DateOfBirth, err = getSimpleText(a.reader, "Date of birth YYYY-MM-DD (optional)", os.Stdout); err != nil {
		return m, false, err
	}
	if m.Gender, err = getSimpleText(a.reader, "Gender (optional)", os.Stdout); err != nil {
		return m, false, err
	}
	if m.BloodGroup, err = getSimpleText(a.reader, "Blood group (optional)", os.Stdout); err != nil {
		return m, false, err
	}

	allergies, err := getSimpleText(a.reader, "Allergies, comma separated (optional)", os.Stdout)
	if err != nil {
		return m, false, err
	}
	m.Allergies = splitList(allergies)

	conditions, err := getSimpleText(a.reader, "Medical conditions, comma separated (optional)", os.Stdout)
	if err != nil {
		return m, false, err
	}
	m.MedicalConditions = splitList(conditions)

	return m, true, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AddFamily creates a new family member.
func (a *App) AddFamily(ctx context.Context) error {
	m, ok, err := a.promptFamilyMember()
	if err != nil || !ok {
		return err
	}

	saved, err := a.family.AddFamilyMember(ctx, m)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn("Added: " + formatFamilyLine(*saved))
	return nil
}

// EditFamily replaces a member's details.
func (a *App) EditFamily(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "Family member id")
	if err != nil {
		return err
	}

	current, err := a.family.GetFamilyMember(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn("Editing: " + formatFamilyLine(*current))

	m, ok, err := a.promptFamilyMember()
	if err != nil || !ok {
		return err
	}

	saved, err := a.family.UpdateFamilyMember(ctx, id, m)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn("Updated: " + formatFamilyLine(*saved))
	return nil
}

// DeleteFamily removes a member and, per the backend contract, their records.
func (a *App) DeleteFamily(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "Family member id")
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, "Delete member "+id+" and all their records? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}

	if err := a.family.DeleteFamilyMember(ctx, id); err != nil {
		printlnFn(err.Error())
		return nil
	}
	printlnFn("Member deleted.")
	return nil
}

// FamilySummary shows the per-member health rollup.
func (a *App) FamilySummary(ctx context.Context, args []string) error {
	id, err := a.resolveID(args, "Family member id")
	if err != nil {
		return err
	}

	sum, err := a.family.FamilyHealthSummary(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	printlnFn(sum.Member.Name + " (" + sum.Member.Relationship + ")")
	if len(sum.Member.MedicalConditions) > 0 {
		printlnFn("Conditions: " + strings.Join(sum.Member.MedicalConditions, ", "))
	}
	if len(sum.Member.Allergies) > 0 {
		printlnFn("Allergies: " + strings.Join(sum.Member.Allergies, ", "))
	}

	if len(sum.RecentReports) > 0 {
		printlnFn("Recent reports:")
		for _, r := range sum.RecentReports {
			printlnFn("  " + formatReportLine(r))
		}
	}
	if len(sum.RecentVitals) > 0 {
		printlnFn("Recent vitals:")
		for _, v := range sum.RecentVitals {
			printlnFn("  " + formatVitalsLine(v))
		}
	}
	return nil
}

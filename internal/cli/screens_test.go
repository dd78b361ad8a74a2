package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/healthmate/cli/internal/api"
	"github.com/healthmate/cli/internal/models"
	"github.com/healthmate/cli/internal/session"
	"github.com/stretchr/testify/require"
)

// capturePrint redirects printlnFn into a buffer and returns a getter for
// everything printed so far.
func capturePrint(t *testing.T) func() string {
	t.Helper()
	var sb strings.Builder
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		sb.WriteString(fmt.Sprintln(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return sb.String
}

// stubInputs replaces the interactive input seams with canned answers,
// consumed in order. The password stub always returns pw.
func stubInputs(t *testing.T, answers []string, pw []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return pw, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeStore struct {
	loginCreds models.Credentials
	reg        models.Registration
	upd        models.ProfileUpdate
	res        session.Result
	user       *models.UserProfile
	auth       bool
	loading    bool

	logoutCalled bool
	forceCalled  bool
	bootCalled   bool
}

func (f *fakeStore) Bootstrap(ctx context.Context) { f.bootCalled = true }
func (f *fakeStore) Login(ctx context.Context, creds models.Credentials) session.Result {
	f.loginCreds = creds
	return f.res
}
func (f *fakeStore) Register(ctx context.Context, reg models.Registration) session.Result {
	f.reg = reg
	return f.res
}
func (f *fakeStore) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) session.Result {
	f.upd = upd
	return f.res
}
func (f *fakeStore) Logout()               { f.logoutCalled = true }
func (f *fakeStore) ForceLogout()          { f.forceCalled = true }
func (f *fakeStore) IsAuthenticated() bool { return f.auth }
func (f *fakeStore) Loading() bool         { return f.loading }
func (f *fakeStore) User() *models.UserProfile {
	return f.user
}

type fakeFiles struct {
	uploadName   string
	uploadType   models.ReportType
	uploadFamily string
	uploadBody   []byte
	uploaded     *models.Report
	uploadErr    error

	page    *api.ReportsPage
	pageErr error

	report    *models.Report
	reportErr error

	deletedID string
}

func (f *fakeFiles) UploadReport(_ context.Context, file io.Reader, fileName string, rt models.ReportType, famID string) (*models.Report, error) {
	f.uploadName, f.uploadType, f.uploadFamily = fileName, rt, famID
	f.uploadBody, _ = io.ReadAll(file)
	return f.uploaded, f.uploadErr
}
func (f *fakeFiles) ListReports(context.Context, api.ReportFilter) (*api.ReportsPage, error) {
	return f.page, f.pageErr
}
func (f *fakeFiles) GetReport(context.Context, string) (*models.Report, error) {
	return f.report, f.reportErr
}
func (f *fakeFiles) DeleteReport(_ context.Context, id string) error {
	f.deletedID = id
	return nil
}
func (f *fakeFiles) AnalyzeReport(context.Context, string) (*models.Report, error) {
	return f.report, f.reportErr
}

type fakeVitals struct {
	added       models.VitalSigns
	stats       *models.VitalsStats
	statsPeriod string
	page        *api.VitalsPage
	outErr      error
}

func (f *fakeVitals) AddVitals(_ context.Context, entry models.VitalSigns) (*models.VitalSigns, error) {
	f.added = entry
	return &entry, f.outErr
}
func (f *fakeVitals) ListVitals(context.Context, api.VitalsFilter) (*api.VitalsPage, error) {
	return f.page, f.outErr
}
func (f *fakeVitals) GetVitals(context.Context, string) (*models.VitalSigns, error) {
	return &f.added, f.outErr
}
func (f *fakeVitals) UpdateVitals(_ context.Context, _ string, entry models.VitalSigns) (*models.VitalSigns, error) {
	return &entry, f.outErr
}
func (f *fakeVitals) DeleteVitals(context.Context, string) error { return f.outErr }
func (f *fakeVitals) VitalsStats(_ context.Context, period string) (*models.VitalsStats, error) {
	f.statsPeriod = period
	return f.stats, f.outErr
}

type fakeTimeline struct {
	summary *models.DashboardSummary
	page    *api.TimelinePage
	sumErr  error
}

func (f *fakeTimeline) Timeline(context.Context, api.TimelineFilter) (*api.TimelinePage, error) {
	return f.page, nil
}
func (f *fakeTimeline) Dashboard(context.Context) (*models.DashboardSummary, error) {
	return f.summary, f.sumErr
}

type fakeFamily struct {
	members []models.FamilyMember
}

func (f *fakeFamily) AddFamilyMember(_ context.Context, m models.FamilyMember) (*models.FamilyMember, error) {
	return &m, nil
}
func (f *fakeFamily) ListFamilyMembers(context.Context) ([]models.FamilyMember, error) {
	return f.members, nil
}
func (f *fakeFamily) FamilyOverview(context.Context) (*models.FamilyOverview, error) {
	return &models.FamilyOverview{TotalMembers: len(f.members), Members: f.members}, nil
}
func (f *fakeFamily) GetFamilyMember(context.Context, string) (*models.FamilyMember, error) {
	if len(f.members) == 0 {
		return nil, errors.New("not found")
	}
	return &f.members[0], nil
}
func (f *fakeFamily) UpdateFamilyMember(_ context.Context, _ string, m models.FamilyMember) (*models.FamilyMember, error) {
	return &m, nil
}
func (f *fakeFamily) DeleteFamilyMember(context.Context, string) error { return nil }
func (f *fakeFamily) FamilyHealthSummary(context.Context, string) (*models.HealthSummary, error) {
	if len(f.members) == 0 {
		return nil, errors.New("not found")
	}
	return &models.HealthSummary{Member: f.members[0]}, nil
}

func TestLogin_PassesCredentialsToStore(t *testing.T) {
	capturePrint(t)
	stubInputs(t, []string{"alice@example.org"}, []byte("secret"))

	store := &fakeStore{res: session.Result{Success: true}, user: &models.UserProfile{Name: "Alice"}}
	a := &App{store: store}

	require.NoError(t, a.Login(context.Background()))
	require.Equal(t, "alice@example.org", store.loginCreds.Email)
	require.Equal(t, "secret", store.loginCreds.Password)
}

func TestLogin_FailureIsReportedNotReturned(t *testing.T) {
	printed := capturePrint(t)
	stubInputs(t, []string{"alice@example.org"}, []byte("wrong"))

	store := &fakeStore{res: session.Result{Success: false, Error: "invalid credentials"}}
	a := &App{store: store}

	require.NoError(t, a.Login(context.Background()))
	require.Contains(t, printed(), "invalid credentials")
}

func TestRegister_SendsOptionalAge(t *testing.T) {
	capturePrint(t)
	stubInputs(t, []string{"Alice", "alice@example.org", "30"}, []byte("secret"))

	store := &fakeStore{res: session.Result{Success: true}}
	a := &App{store: store}

	require.NoError(t, a.Register(context.Background()))
	require.Equal(t, "Alice", store.reg.Name)
	require.Equal(t, 30, store.reg.Age)
	require.Equal(t, "secret", store.reg.Password)
}

func TestDashboard_SectionsFailIndependently(t *testing.T) {
	printed := capturePrint(t)

	vit := &fakeVitals{stats: &models.VitalsStats{Period: "30d", Count: 2,
		AvgBloodPressure: &models.BloodPressure{Systolic: 120, Diastolic: 80}}}
	a := &App{
		timeline: &fakeTimeline{sumErr: errors.New("boom")},
		vitals:   vit,
		files: &fakeFiles{page: &api.ReportsPage{Reports: []models.Report{
			{ID: "r1", FileName: "cbc.pdf", ReportType: models.ReportTypeBloodTest},
		}}},
	}

	require.NoError(t, a.Dashboard(context.Background()))

	out := printed()
	require.Contains(t, out, "Summary unavailable")
	require.Contains(t, out, "avg BP 120/80")
	require.Contains(t, out, "cbc.pdf")
	require.Equal(t, "30d", vit.statsPeriod)
}

func TestVitalsStats_SendsPeriodToken(t *testing.T) {
	capturePrint(t)
	stubInputs(t, []string{"3"}, nil)

	vit := &fakeVitals{stats: &models.VitalsStats{Period: "90d", Count: 1}}
	a := &App{vitals: vit}

	require.NoError(t, a.VitalsStats(context.Background()))
	require.Equal(t, "90d", vit.statsPeriod)
}

func TestUpload_SendsFileAndSelectedType(t *testing.T) {
	capturePrint(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "cbc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("report bytes"), 0o600))

	stubInputs(t, []string{path, "1"}, nil)

	files := &fakeFiles{uploaded: &models.Report{ID: "r1", FileName: "cbc.pdf"}}
	a := &App{files: files, family: &fakeFamily{}}

	require.NoError(t, a.Upload(context.Background()))
	require.Equal(t, "cbc.pdf", files.uploadName)
	require.Equal(t, models.ReportTypeBloodTest, files.uploadType)
	require.Equal(t, "", files.uploadFamily)
	require.Equal(t, []byte("report bytes"), files.uploadBody)
}

func TestUpload_FamilyMemberSelection(t *testing.T) {
	capturePrint(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "xray.jpg")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o600))

	// Menu answers pick report type 3 (x-ray), then family option 2.
	stubInputs(t, []string{path, "3", "2"}, nil)

	files := &fakeFiles{uploaded: &models.Report{ID: "r2", FileName: "xray.jpg"}}
	fam := &fakeFamily{members: []models.FamilyMember{
		{ID: "fm1", Name: "Ahmed", Relationship: "father"},
	}}
	a := &App{files: files, family: fam}

	require.NoError(t, a.Upload(context.Background()))
	require.Equal(t, models.ReportTypeXRay, files.uploadType)
	require.Equal(t, "fm1", files.uploadFamily)
}

func TestAddVitals_BuildsEntryFromPrompts(t *testing.T) {
	capturePrint(t)
	stubInputs(t, []string{"120", "80", "95.5", "", "feeling fine"}, nil)

	vit := &fakeVitals{}
	a := &App{vitals: vit, family: &fakeFamily{}}

	require.NoError(t, a.AddVitals(context.Background()))
	require.NotNil(t, vit.added.BloodPressure)
	require.Equal(t, 120, vit.added.BloodPressure.Systolic)
	require.Equal(t, 80, vit.added.BloodPressure.Diastolic)
	require.InDelta(t, 95.5, vit.added.BloodSugar, 0.001)
	require.Equal(t, "feeling fine", vit.added.Notes)
	require.WithinDuration(t, time.Now(), vit.added.MeasurementDate, time.Minute)
}

func TestAddVitals_RequiresAtLeastOneMeasurement(t *testing.T) {
	printed := capturePrint(t)
	stubInputs(t, []string{"", "", "", ""}, nil)

	vit := &fakeVitals{}
	a := &App{vitals: vit, family: &fakeFamily{}}

	require.NoError(t, a.AddVitals(context.Background()))
	require.Contains(t, printed(), "at least one measurement")
	require.Zero(t, vit.added)
}

func TestAssistant_AnswersUntilEmptyLine(t *testing.T) {
	printed := capturePrint(t)
	stubInputs(t, []string{"tell me about my reports", ""}, nil)

	a := &App{files: &fakeFiles{page: &api.ReportsPage{Reports: []models.Report{
		{ID: "r1", FileName: "cbc.pdf", ReportType: models.ReportTypeBloodTest, IsProcessed: true},
	}}}}

	require.NoError(t, a.Assistant(context.Background()))

	out := printed()
	require.Contains(t, out, "1 medical report")
}

func TestDeleteReport_RequiresConfirmation(t *testing.T) {
	capturePrint(t)
	stubInputs(t, []string{"n"}, nil)

	files := &fakeFiles{}
	a := &App{files: files}

	require.NoError(t, a.DeleteReport(context.Background(), []string{"r1"}))
	require.Empty(t, files.deletedID)
}

func TestDeleteReport_Confirmed(t *testing.T) {
	capturePrint(t)
	stubInputs(t, []string{"y"}, nil)

	files := &fakeFiles{}
	a := &App{files: files}

	require.NoError(t, a.DeleteReport(context.Background(), []string{"r1"}))
	require.Equal(t, "r1", files.deletedID)
}

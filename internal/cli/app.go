// Package cli implements the interactive HealthMate terminal client: a REPL
// whose commands map one-to-one to the user-facing screens, gated behind the
// session's auth state.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/healthmate/cli/internal/api"
	"github.com/healthmate/cli/internal/config"
	"github.com/healthmate/cli/internal/filex"
	"github.com/healthmate/cli/internal/logging"
	"github.com/healthmate/cli/internal/models"
	"github.com/healthmate/cli/internal/session"
	"github.com/healthmate/cli/internal/storage/credentials"
)

// Mode reflects backend reachability as seen by the status watcher.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// sessionStore is the surface of the session container the screens use.
// *session.Store satisfies it; tests provide a stub.
type sessionStore interface {
	Bootstrap(ctx context.Context)
	Login(ctx context.Context, creds models.Credentials) session.Result
	Register(ctx context.Context, reg models.Registration) session.Result
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) session.Result
	Logout()
	ForceLogout()
	IsAuthenticated() bool
	Loading() bool
	User() *models.UserProfile
}

// authAPI etc. are the per-resource slices of the backend client consumed by
// the screens; *api.Client satisfies all of them.
type filesAPI interface {
	UploadReport(ctx context.Context, file io.Reader, fileName string, reportType models.ReportType, familyMemberID string) (*models.Report, error)
	ListReports(ctx context.Context, filter api.ReportFilter) (*api.ReportsPage, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	DeleteReport(ctx context.Context, id string) error
	AnalyzeReport(ctx context.Context, id string) (*models.Report, error)
}

type vitalsAPI interface {
	AddVitals(ctx context.Context, entry models.VitalSigns) (*models.VitalSigns, error)
	ListVitals(ctx context.Context, filter api.VitalsFilter) (*api.VitalsPage, error)
	GetVitals(ctx context.Context, id string) (*models.VitalSigns, error)
	UpdateVitals(ctx context.Context, id string, entry models.VitalSigns) (*models.VitalSigns, error)
	DeleteVitals(ctx context.Context, id string) error
	VitalsStats(ctx context.Context, period string) (*models.VitalsStats, error)
}

type timelineAPI interface {
	Timeline(ctx context.Context, filter api.TimelineFilter) (*api.TimelinePage, error)
	Dashboard(ctx context.Context) (*models.DashboardSummary, error)
}

type familyAPI interface {
	AddFamilyMember(ctx context.Context, member models.FamilyMember) (*models.FamilyMember, error)
	ListFamilyMembers(ctx context.Context) ([]models.FamilyMember, error)
	FamilyOverview(ctx context.Context) (*models.FamilyOverview, error)
	GetFamilyMember(ctx context.Context, id string) (*models.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, id string, member models.FamilyMember) (*models.FamilyMember, error)
	DeleteFamilyMember(ctx context.Context, id string) error
	FamilyHealthSummary(ctx context.Context, id string) (*models.HealthSummary, error)
}

type healthAPI interface {
	Health(ctx context.Context) error
}

// App wires the screens to the session store and the backend client.
type App struct {
	config   *config.Config
	store    sessionStore
	files    filesAPI
	vitals   vitalsAPI
	timeline timelineAPI
	family   familyAPI
	health   healthAPI
	log      logging.Logger
	reader   *bufio.Reader
	db       *sql.DB
	Mode     Mode
}

// NewApp builds the application: opens the local credential store, wires the
// HTTP client's forced-logout path into the session store, and prepares the
// screens. The store is injected everywhere by reference; there are no
// package-level singletons.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	dataDir, err := filex.EnsureAppDir("healthmate")
	if err != nil {
		return nil, err
	}

	db, err := credentials.InitDatabase(ctx, filepath.Join(dataDir, "credentials.db"))
	if err != nil {
		log.Error(ctx, "error initializing credential database", "err", err)
		return nil, err
	}

	creds := credentials.NewSQLiteRepository(db)

	app := &App{config: c, log: log, reader: bufio.NewReader(os.Stdin), db: db, Mode: ModeOnline}

	apiClient := api.NewClient(c.BaseURL, c.RequestTimeout, creds, log,
		api.WithUnauthorizedHandler(app.onForcedLogout))

	store := session.NewStore(apiClient, creds, log)

	app.store = store
	app.files = apiClient
	app.vitals = apiClient
	app.timeline = apiClient
	app.family = apiClient
	app.health = apiClient

	return app, nil
}

// onForcedLogout runs after the HTTP client has cleared persisted
// credentials on a 401: it flips the in-memory session and tells the user
// where they ended up.
func (a *App) onForcedLogout() {
	a.store.ForceLogout()
	printlnFn("Session expired, please log in again.")
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn("Backend is now " + string(mode))
	}
}

// StartStatusWatcher periodically probes the backend health endpoint and
// updates the prompt's online/offline marker. Informational only: no command
// is blocked while offline.
func (a *App) StartStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.health.Health(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/healthmate/cli/internal/api"
	"github.com/healthmate/cli/internal/logging"
	"github.com/healthmate/cli/internal/models"
)

// ---- fakes ----

type fakeCreds struct {
	mu    sync.Mutex
	token string
	user  *models.UserProfile
}

func (f *fakeCreds) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeCreds) User(context.Context) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return nil, nil
	}
	u := *f.user
	return &u, nil
}

func (f *fakeCreds) SaveSession(_ context.Context, token string, user *models.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	u := *user
	f.user = &u
	return nil
}

func (f *fakeCreds) SaveUser(_ context.Context, user *models.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *user
	f.user = &u
	return nil
}

func (f *fakeCreds) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.user = nil
	return nil
}

func (f *fakeCreds) snapshot() (string, *models.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.user
}

type fakeAuthAPI struct {
	loginRes *api.AuthResult
	loginErr error

	registerRes *api.AuthResult
	registerErr error

	profileRes *models.UserProfile
	profileErr error

	updateFn func(models.ProfileUpdate) (*models.UserProfile, error)

	profileCalls int
}

func (f *fakeAuthAPI) Login(context.Context, models.Credentials) (*api.AuthResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeAuthAPI) Register(context.Context, models.Registration) (*api.AuthResult, error) {
	return f.registerRes, f.registerErr
}

func (f *fakeAuthAPI) Profile(context.Context) (*models.UserProfile, error) {
	f.profileCalls++
	return f.profileRes, f.profileErr
}

func (f *fakeAuthAPI) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	if f.updateFn != nil {
		return f.updateFn(upd)
	}
	return nil, nil
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(authAPI AuthAPI, creds *fakeCreds) *Store {
	log := logging.NewSlogLogger(newDiscardLogger())
	return NewStore(authAPI, creds, log)
}

// ---- tests ----

func TestLogin_Success_PersistsAndAuthenticates(t *testing.T) {
	creds := &fakeCreds{}
	a := &fakeAuthAPI{loginRes: &api.AuthResult{Token: "T1", User: models.UserProfile{Name: "A"}}}
	s := newTestStore(a, creds)

	res := s.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})

	require.True(t, res.Success)
	require.True(t, s.IsAuthenticated())

	token, user := creds.snapshot()
	require.Equal(t, "T1", token)
	require.Equal(t, "A", user.Name)
}

func TestLogin_Failure_RecordsErrorAndStaysAnonymous(t *testing.T) {
	creds := &fakeCreds{}
	a := &fakeAuthAPI{loginErr: &api.APIError{StatusCode: 400, Message: "invalid credentials"}}
	s := newTestStore(a, creds)

	res := s.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "wrong"})

	require.False(t, res.Success)
	require.Equal(t, "invalid credentials", res.Error)
	require.Equal(t, "invalid credentials", s.Err())
	require.False(t, s.IsAuthenticated())
	require.False(t, s.Loading(), "loading must clear on failure too")

	token, user := creds.snapshot()
	require.Empty(t, token)
	require.Nil(t, user)
}

func TestLogin_ConnectivityFailure_SurfacesOnlySentinelText(t *testing.T) {
	creds := &fakeCreds{}
	a := &fakeAuthAPI{loginErr: fmt.Errorf("POST /api/auth/login: %w", api.ErrUnavailable)}
	s := newTestStore(a, creds)

	res := s.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})

	require.False(t, res.Success)
	require.Equal(t, api.ErrUnavailable.Error(), res.Error,
		"method/path diagnostics must not leak into the user-facing message")
	require.Equal(t, api.ErrUnavailable.Error(), s.Err())
}

func TestLoginLogout_PredicateHoldsStrictlyBetween(t *testing.T) {
	creds := &fakeCreds{}
	a := &fakeAuthAPI{loginRes: &api.AuthResult{Token: "T1", User: models.UserProfile{Name: "A"}}}
	s := newTestStore(a, creds)

	require.False(t, s.IsAuthenticated())

	s.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.True(t, s.IsAuthenticated())

	s.Logout()
	require.False(t, s.IsAuthenticated())

	token, user := creds.snapshot()
	require.Empty(t, token)
	require.Nil(t, user)
}

func TestRegister_SameContractAsLogin(t *testing.T) {
	creds := &fakeCreds{}
	a := &fakeAuthAPI{registerRes: &api.AuthResult{Token: "T2", User: models.UserProfile{Name: "B"}}}
	s := newTestStore(a, creds)

	res := s.Register(context.Background(), models.Registration{Name: "B", Email: "b@c.com", Password: "y"})

	require.True(t, res.Success)
	require.True(t, s.IsAuthenticated())

	token, _ := creds.snapshot()
	require.Equal(t, "T2", token)
}

func TestBootstrap_NoStoredSession_EndsAnonymous(t *testing.T) {
	creds := &fakeCreds{}
	a := &fakeAuthAPI{}
	s := newTestStore(a, creds)

	s.Bootstrap(context.Background())

	require.Equal(t, Anonymous, s.State())
	require.False(t, s.IsAuthenticated())
	require.Zero(t, a.profileCalls, "no validation call without a stored token")
}

func TestBootstrap_InvalidToken_ClearsStorage(t *testing.T) {
	creds := &fakeCreds{token: "stored-token", user: &models.UserProfile{Name: "Stale"}}
	a := &fakeAuthAPI{profileErr: api.ErrUnauthorized}
	s := newTestStore(a, creds)

	s.Bootstrap(context.Background())

	require.Equal(t, Anonymous, s.State())
	require.False(t, s.IsAuthenticated())

	token, user := creds.snapshot()
	require.Empty(t, token, "invalid-in must mean empty-out")
	require.Nil(t, user)
}

func TestBootstrap_NetworkFailure_TreatedAsInvalid(t *testing.T) {
	creds := &fakeCreds{token: "stored-token", user: &models.UserProfile{Name: "Stale"}}
	a := &fakeAuthAPI{profileErr: api.ErrUnavailable}
	s := newTestStore(a, creds)

	s.Bootstrap(context.Background())

	require.Equal(t, Anonymous, s.State())
	token, _ := creds.snapshot()
	require.Empty(t, token)
}

func TestBootstrap_ValidToken_AdoptsFreshProfile(t *testing.T) {
	creds := &fakeCreds{token: "stored-token", user: &models.UserProfile{Name: "Stale"}}
	a := &fakeAuthAPI{profileRes: &models.UserProfile{Name: "Fresh"}}
	s := newTestStore(a, creds)

	s.Bootstrap(context.Background())

	require.Equal(t, Authenticated, s.State())
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "Fresh", s.User().Name, "fresh profile must replace the persisted copy")

	_, user := creds.snapshot()
	require.Equal(t, "Fresh", user.Name)
}

func TestBootstrap_LocallyExpiredToken_SkipsValidationCall(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := expired.SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	creds := &fakeCreds{token: signed, user: &models.UserProfile{Name: "Stale"}}
	a := &fakeAuthAPI{profileRes: &models.UserProfile{Name: "Fresh"}}
	s := newTestStore(a, creds)

	s.Bootstrap(context.Background())

	require.Equal(t, Anonymous, s.State())
	require.Zero(t, a.profileCalls, "expired token must not be validated over the network")

	tok, _ := creds.snapshot()
	require.Empty(t, tok)
}

func TestUpdateProfile_Failure_LeavesSessionUntouched(t *testing.T) {
	creds := &fakeCreds{}
	a := &fakeAuthAPI{loginRes: &api.AuthResult{Token: "T1", User: models.UserProfile{Name: "A"}}}
	a.updateFn = func(models.ProfileUpdate) (*models.UserProfile, error) {
		return nil, &api.APIError{StatusCode: 400, Message: "name too short"}
	}
	s := newTestStore(a, creds)
	s.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})

	res := s.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "X"})

	require.False(t, res.Success)
	require.Equal(t, "name too short", res.Error)
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "A", s.User().Name)
}

func TestUpdateProfile_Concurrent_LastResolvedWins(t *testing.T) {
	creds := &fakeCreds{}
	a := &fakeAuthAPI{loginRes: &api.AuthResult{Token: "T1", User: models.UserProfile{Name: "Initial"}}}

	releaseA := make(chan struct{})
	releaseB := make(chan struct{})
	a.updateFn = func(upd models.ProfileUpdate) (*models.UserProfile, error) {
		switch upd.Name {
		case "A":
			<-releaseA
		case "B":
			<-releaseB
		}
		return &models.UserProfile{Name: upd.Name}, nil
	}

	s := newTestStore(a, creds)
	s.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "B"})
	}()
	go func() {
		defer wg.Done()
		s.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "A"})
	}()

	// B was issued first but resolves first; A resolves last and must win.
	close(releaseB)
	time.Sleep(50 * time.Millisecond)
	close(releaseA)
	wg.Wait()

	require.Equal(t, "A", s.User().Name)
}

func TestForceLogout_ReflectsTeardown(t *testing.T) {
	creds := &fakeCreds{}
	a := &fakeAuthAPI{loginRes: &api.AuthResult{Token: "T1", User: models.UserProfile{Name: "A"}}}
	s := newTestStore(a, creds)
	s.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})

	s.ForceLogout()

	require.False(t, s.IsAuthenticated())
	require.Equal(t, Anonymous, s.State())
}

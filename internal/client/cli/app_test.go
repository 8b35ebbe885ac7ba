package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/campushub/internal/client/guard"
	"github.com/dmitrijs2005/campushub/internal/client/models"
	"github.com/dmitrijs2005/campushub/internal/client/session"
	"github.com/dmitrijs2005/campushub/internal/client/validation"
)

func TestMain(m *testing.M) {
	pterm.DisableOutput()
	os.Exit(m.Run())
}

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte

	DeleteErr error

	// FailSets makes the next n Set calls return assert.AnError.
	FailSets int
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSets > 0 {
		s.FailSets--
		return assert.AnError
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.data, key)
	return nil
}

// stubAnswers feeds getSimpleText from answers and getPassword from
// passwords, in order. Exhausted input behaves like EOF.
func stubAnswers(t *testing.T, answers []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}

	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func newTestApp(t *testing.T, store *memStore) *App {
	t.Helper()
	a, err := NewApp(store, nil, strings.NewReader(""))
	require.NoError(t, err)
	a.out = io.Discard
	a.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

func readyApp(t *testing.T, store *memStore) *App {
	t.Helper()
	a := newTestApp(t, store)
	require.NoError(t, a.session.Initialize(context.Background()))
	return a
}

func storedUser() []byte {
	return []byte(`{"userId":"u1","collegeName":"MIT","collegeCode":"M01"}`)
}

func TestNewApp_NilStore(t *testing.T) {
	_, err := NewApp(nil, nil, strings.NewReader(""))
	require.ErrorIs(t, err, session.ErrNoStore)
}

func TestOpen_UnknownPath(t *testing.T) {
	a := readyApp(t, newMemStore())
	require.ErrorIs(t, a.Open(context.Background(), "/nope"), ErrNotFound)
	assert.Equal(t, guard.LoginPath, a.path)
}

func TestOpen_ProtectedWhileLoading(t *testing.T) {
	out := capturePrint(t)
	a := newTestApp(t, newMemStore())
	a.path = guard.SignupPath

	require.NoError(t, a.Open(context.Background(), guard.DashboardPath))
	assert.Equal(t, guard.SignupPath, a.path, "no redirect while loading")
	assert.Contains(t, *out, "Loading…")
}

func TestOpen_ProtectedWhenAnonymous(t *testing.T) {
	a := readyApp(t, newMemStore())
	a.path = guard.SignupPath

	require.NoError(t, a.Open(context.Background(), guard.AppsPath))
	assert.Equal(t, guard.LoginPath, a.path)
}

func TestOpen_RootGoesToLogin(t *testing.T) {
	a := readyApp(t, newMemStore())
	a.path = guard.SignupPath
	require.NoError(t, a.Open(context.Background(), "/"))
	assert.Equal(t, guard.LoginPath, a.path)
}

func TestOpen_DashboardGreetsByName(t *testing.T) {
	out := capturePrint(t)
	store := newMemStore()
	store.data[session.UserKey] = []byte(`{"userId":"u1","collegeName":"MIT","collegeCode":"M01","fullName":"Ann"}`)
	a := readyApp(t, store)

	require.NoError(t, a.Open(context.Background(), "dashboard"))
	assert.Equal(t, guard.DashboardPath, a.path)
	assert.Contains(t, *out, "Welcome, Ann!")
}

func TestLogin_Success(t *testing.T) {
	out := capturePrint(t)
	store := newMemStore()
	a := readyApp(t, store)
	stubAnswers(t, []string{"MIT", "M01", "u1"}, "secret1")

	require.NoError(t, a.Login(context.Background()))

	s := a.session.Snapshot()
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, models.User{UserID: "u1", CollegeName: "MIT", CollegeCode: "M01"}, *s.User)
	assert.Equal(t, guard.DashboardPath, a.path)
	assert.Contains(t, *out, "Welcome, u1!")
	assert.NotContains(t, string(store.data[session.UserKey]), "secret1")
}

func TestLogin_InvalidForm(t *testing.T) {
	a := readyApp(t, newMemStore())
	stubAnswers(t, []string{"", "M01", "u1"}, "abc")

	err := a.Login(context.Background())
	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, validation.MsgCollegeNameRequired, fe["collegeName"])
	assert.Equal(t, validation.MsgPasswordTooShort, fe["password"])
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, guard.LoginPath, a.path)
}

func TestLogin_InputEOF(t *testing.T) {
	a := readyApp(t, newMemStore())
	stubAnswers(t, []string{"MIT"})

	require.ErrorIs(t, a.Login(context.Background()), io.EOF)
	assert.False(t, a.isLoggedIn())
}

func TestSignup_WithBackAndRetry(t *testing.T) {
	store := newMemStore()
	a := readyApp(t, store)
	stubAnswers(t,
		[]string{
			"", "X", // step 1 rejected: no college name
			"MIT", "M01", // step 1 accepted
			":back",  // back to step 1
			"", "",   // keep buffered values
			"u1",     // step 2, passwords mismatch
			"u1",     // step 2, accepted
		},
		"abcdef", "abcdeg",
		"abcdef", "abcdef",
	)

	require.NoError(t, a.Signup(context.Background()))

	s := a.session.Snapshot()
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, models.User{UserID: "u1", CollegeName: "MIT", CollegeCode: "M01"}, *s.User)
	assert.Equal(t, guard.DashboardPath, a.path)
}

func TestSignup_StoreFailureRetriesAccountStep(t *testing.T) {
	store := newMemStore()
	store.FailSets = 1
	a := readyApp(t, store)
	stubAnswers(t,
		[]string{
			"MIT", "M01", // step 1, asked once
			"u1", // step 2, store write fails
			"u1", // step 2 again, succeeds
		},
		"abcdef", "abcdef",
		"abcdef", "abcdef",
	)

	require.NoError(t, a.Signup(context.Background()))

	s := a.session.Snapshot()
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, models.User{UserID: "u1", CollegeName: "MIT", CollegeCode: "M01"}, *s.User)
	assert.Equal(t, guard.DashboardPath, a.path)
	assert.Equal(t, 0, store.FailSets)
}

func TestSignup_StopsWhenContextCancelled(t *testing.T) {
	store := newMemStore()
	store.FailSets = 1
	a := readyApp(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	origGP := getPassword
	stubAnswers(t, []string{"MIT", "M01", "u1", "u1"}, "abcdef", "abcdef", "abcdef", "abcdef")
	stubbed := getPassword
	calls := 0
	getPassword = func(w io.Writer, prompt string) ([]byte, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return stubbed(w, prompt)
	}
	t.Cleanup(func() { getPassword = origGP })

	require.Error(t, a.Signup(ctx))
	assert.False(t, a.isLoggedIn())
}

func TestSignup_InputEOF(t *testing.T) {
	a := readyApp(t, newMemStore())
	stubAnswers(t, []string{"MIT", "M01", "u1"}, "abcdef")

	require.ErrorIs(t, a.Signup(context.Background()), io.EOF)
	assert.False(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	store := newMemStore()
	store.data[session.UserKey] = storedUser()
	a := readyApp(t, store)
	a.path = guard.DashboardPath

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, guard.LoginPath, a.path)
	assert.Empty(t, store.data)
}

func TestLogout_StoreFailureStillSignsOut(t *testing.T) {
	store := newMemStore()
	store.data[session.UserKey] = storedUser()
	store.DeleteErr = assert.AnError
	a := readyApp(t, store)

	require.ErrorIs(t, a.Logout(context.Background()), session.ErrStorageWrite)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, guard.LoginPath, a.path)
}

func TestEditProfile(t *testing.T) {
	out := capturePrint(t)
	store := newMemStore()
	store.data[session.UserKey] = []byte(`{"userId":"u1","collegeName":"MIT","collegeCode":"M01","place":"Boston"}`)
	a := readyApp(t, store)
	stubAnswers(t, []string{"Ann Lee", "2001-04-05", ""})

	require.NoError(t, a.EditProfile(context.Background()))

	u := a.session.Snapshot().User
	assert.Equal(t, "Ann Lee", u.FullName)
	assert.Equal(t, "2001-04-05T00:00:00.000Z", u.DOB)
	assert.Equal(t, "Boston", u.Place)
	assert.Equal(t, guard.ProfilePath, a.path)
	assert.Contains(t, *out, "Date of birth: 2001-04-05")
}

func TestEditProfile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		field   string
		message string
	}{
		{"short name", []string{"A", "", ""}, "fullName", validation.MsgFullNameTooShort},
		{"future dob", []string{"Ann", "2030-01-01", ""}, "dob", validation.MsgDOBOutOfRange},
		{"too old", []string{"Ann", "1899-12-31", ""}, "dob", validation.MsgDOBOutOfRange},
		{"bad date", []string{"Ann", "05/04/2001", ""}, "dob", "Invalid date"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			store.data[session.UserKey] = storedUser()
			a := readyApp(t, store)
			stubAnswers(t, tc.answers)

			err := a.EditProfile(context.Background())
			fe, ok := validation.AsFieldErrors(err)
			require.True(t, ok)
			assert.Equal(t, tc.message, fe[tc.field])
			assert.JSONEq(t, string(storedUser()), string(store.data[session.UserKey]))
		})
	}
}

func TestEditProfile_ClearOptionalFields(t *testing.T) {
	store := newMemStore()
	store.data[session.UserKey] = []byte(`{"userId":"u1","collegeName":"MIT","collegeCode":"M01","fullName":"Ann","dob":"2001-04-05T00:00:00.000Z","place":"Boston"}`)
	a := readyApp(t, store)
	stubAnswers(t, []string{"", "-", "-"})

	require.NoError(t, a.EditProfile(context.Background()))

	u := a.session.Snapshot().User
	assert.Equal(t, "Ann", u.FullName)
	assert.Empty(t, u.DOB)
	assert.Empty(t, u.Place)
	assert.JSONEq(t, `{"userId":"u1","collegeName":"MIT","collegeCode":"M01","fullName":"Ann"}`, string(store.data[session.UserKey]))
}

func TestEditProfile_KeepsStoredDOBTimestamp(t *testing.T) {
	store := newMemStore()
	store.data[session.UserKey] = []byte(`{"userId":"u1","collegeName":"MIT","collegeCode":"M01","dob":"2001-04-04T18:30:00.000Z"}`)
	a := readyApp(t, store)
	stubAnswers(t, []string{"Ann Lee", "", ""})

	require.NoError(t, a.EditProfile(context.Background()))

	u := a.session.Snapshot().User
	assert.Equal(t, "Ann Lee", u.FullName)
	assert.Equal(t, "2001-04-04T18:30:00.000Z", u.DOB)
}

func TestEditProfile_ChangesDOBDay(t *testing.T) {
	store := newMemStore()
	store.data[session.UserKey] = []byte(`{"userId":"u1","collegeName":"MIT","collegeCode":"M01","fullName":"Ann","dob":"2001-04-04T18:30:00.000Z"}`)
	a := readyApp(t, store)
	stubAnswers(t, []string{"", "2001-04-06", ""})

	require.NoError(t, a.EditProfile(context.Background()))
	assert.Equal(t, "2001-04-06T00:00:00.000Z", a.session.Snapshot().User.DOB)
}

func TestEditProfile_NothingChanged(t *testing.T) {
	out := capturePrint(t)
	store := newMemStore()
	store.data[session.UserKey] = []byte(`{"userId":"u1","collegeName":"MIT","collegeCode":"M01","fullName":"Ann"}`)
	a := readyApp(t, store)
	stubAnswers(t, []string{"", "", ""})

	require.NoError(t, a.EditProfile(context.Background()))
	assert.Contains(t, *out, "Nothing to update.")
}

func TestEditProfile_Anonymous(t *testing.T) {
	a := readyApp(t, newMemStore())
	stubAnswers(t, nil)

	require.NoError(t, a.EditProfile(context.Background()))
	assert.Equal(t, guard.LoginPath, a.path)
}

func TestWhoAmI(t *testing.T) {
	out := capturePrint(t)
	store := newMemStore()
	a := newTestApp(t, store)

	require.NoError(t, a.WhoAmI(context.Background()))
	require.NoError(t, a.session.Initialize(context.Background()))
	require.NoError(t, a.WhoAmI(context.Background()))

	store.data[session.UserKey] = storedUser()
	b := readyApp(t, store)
	require.NoError(t, b.WhoAmI(context.Background()))

	assert.Equal(t, []string{
		"Not signed in (loading)",
		"Not signed in (anonymous)",
		"u1 at MIT (M01)",
	}, *out)
}

func TestStatus(t *testing.T) {
	store := newMemStore()
	a := newTestApp(t, store)
	assert.Equal(t, "/login (loading)", a.status())

	require.NoError(t, a.session.Initialize(context.Background()))
	assert.Equal(t, "/login (anonymous)", a.status())

	require.NoError(t, a.session.Login(context.Background(), models.Credentials{UserID: "u1", CollegeName: "MIT", CollegeCode: "M01"}))
	a.path = guard.AppsPath
	assert.Equal(t, "/apps (u1)", a.status())
}

func TestRun_RestoresSessionAndExits(t *testing.T) {
	capturePrint(t)
	store := newMemStore()
	store.data[session.UserKey] = storedUser()

	a, err := NewApp(store, nil, strings.NewReader("whoami\nexit\n"))
	require.NoError(t, err)
	a.out = io.Discard

	require.NoError(t, a.Run(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.session.WaitReady(ctx))
	assert.True(t, a.isLoggedIn())
}

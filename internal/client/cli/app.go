package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/dmitrijs2005/campushub/internal/client/guard"
	"github.com/dmitrijs2005/campushub/internal/client/models"
	"github.com/dmitrijs2005/campushub/internal/client/session"
	"github.com/dmitrijs2005/campushub/internal/common"
	"github.com/dmitrijs2005/campushub/internal/logging"
)

// sessionManager is the part of session.Manager used by the views.
type sessionManager interface {
	Initialize(ctx context.Context) error
	WaitReady(ctx context.Context) error
	Snapshot() session.Snapshot
	Subscribe(fn func(session.Snapshot)) func()
	Login(ctx context.Context, creds models.Credentials) error
	Signup(ctx context.Context, req models.SignupRequest) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error
}

type App struct {
	session sessionManager
	guard   *guard.Guard
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	// path is the route currently shown. Only the REPL goroutine touches it.
	path string
}

// NewApp builds the client around store. in is the source of user input.
func NewApp(store session.Store, log logging.Logger, in io.Reader) (*App, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	m, err := session.NewManager(store, session.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return newApp(m, log, in)
}

func newApp(m sessionManager, log logging.Logger, in io.Reader) (*App, error) {
	g, err := guard.NewGuard(m)
	if err != nil {
		return nil, err
	}
	return &App{
		session: m,
		guard:   g,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     os.Stdout,
		now:     time.Now,
		path:    guard.LoginPath,
	}, nil
}

// Run restores the stored session in the background and runs the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	pterm.DefaultHeader.Println(common.AppName + " - " + common.AppTagline)

	unsubscribe := a.session.Subscribe(func(s session.Snapshot) {
		a.log.Debug(ctx, "session changed", "status", s.Status.String())
	})
	defer unsubscribe()

	go func() {
		if err := a.session.Initialize(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error(ctx, "session initialization failed", "error", err)
		}
	}()

	printlnFn("Type 'help' for commands")
	_ = a.Open(ctx, guard.RootPath)

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

// status is shown in the prompt: current path, then the user or session state.
func (a *App) status() string {
	s := a.session.Snapshot()

	label := s.Status.String()
	if s.IsAuthenticated() {
		label = s.User.UserID
	}
	if s.Busy {
		label += ", busy"
	}
	return fmt.Sprintf("%s (%s)", a.path, label)
}

// ready waits for the stored session to be read before a mutation.
func (a *App) ready(ctx context.Context) error {
	if a.session.Snapshot().Status != session.StatusLoading {
		return nil
	}
	printlnFn("Loading…")
	return a.session.WaitReady(ctx)
}

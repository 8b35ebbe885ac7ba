// Package signup drives the two-step account creation flow: college details
// first, then the account credentials.
package signup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/campushub/internal/client/models"
	"github.com/dmitrijs2005/campushub/internal/client/validation"
	"github.com/dmitrijs2005/campushub/internal/logging"
)

var (
	ErrNoSigner    = errors.New("signup: signer is required")
	ErrInvalidStep = errors.New("signup: action not allowed at this step")
)

type Step int

const (
	StepCollegeInfo Step = iota
	StepAccountInfo
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepCollegeInfo:
		return "college-info"
	case StepAccountInfo:
		return "account-info"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Signer creates the account and signs it in.
type Signer interface {
	Signup(ctx context.Context, req models.SignupRequest) error
}

// CollegeInfo is the data accepted by step one.
type CollegeInfo struct {
	CollegeName string
	CollegeCode string
}

// Wizard is the signup state machine. It is safe for concurrent use.
type Wizard struct {
	signer Signer
	log    logging.Logger

	mu       sync.Mutex
	step     Step
	college  CollegeInfo
	buffered bool
}

type Option func(*Wizard)

func WithLogger(l logging.Logger) Option {
	return func(w *Wizard) {
		if l != nil {
			w.log = l
		}
	}
}

func NewWizard(signer Signer, opts ...Option) (*Wizard, error) {
	if signer == nil {
		return nil, ErrNoSigner
	}
	w := &Wizard{signer: signer, log: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With("flow_id", uuid.NewString())
	return w, nil
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// CollegeInfo returns the buffered step-one data, if any.
func (w *Wizard) CollegeInfo() (CollegeInfo, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.college, w.buffered
}

// SubmitStep1 validates and buffers the college details. On failure it
// returns validation.FieldErrors and nothing changes.
func (w *Wizard) SubmitStep1(collegeName, collegeCode string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepCollegeInfo {
		return fmt.Errorf("%w: submit college info at %s", ErrInvalidStep, w.step)
	}

	form := validation.CollegeInfoForm{CollegeName: collegeName, CollegeCode: collegeCode}
	if err := form.Validate(); err != nil {
		return err
	}

	w.college = CollegeInfo{CollegeName: collegeName, CollegeCode: collegeCode}
	w.buffered = true
	w.step = StepAccountInfo
	w.log.Debug(context.Background(), "college info accepted")
	return nil
}

// Back returns to step one, keeping the buffered data.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAccountInfo {
		return fmt.Errorf("%w: back at %s", ErrInvalidStep, w.step)
	}
	w.step = StepCollegeInfo
	return nil
}

// SubmitStep2 validates the account details and signs up with the buffered
// college info. When signup fails the wizard stays on step two. The caller
// owns password and confirm and may wipe them afterwards.
func (w *Wizard) SubmitStep2(ctx context.Context, userID string, password, confirm []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAccountInfo {
		return fmt.Errorf("%w: submit account info at %s", ErrInvalidStep, w.step)
	}

	form := validation.AccountInfoForm{UserID: userID, Password: password, ConfirmPassword: confirm}
	if err := form.Validate(); err != nil {
		return err
	}

	req := models.SignupRequest{
		User: models.User{
			UserID:      userID,
			CollegeName: w.college.CollegeName,
			CollegeCode: w.college.CollegeCode,
		},
		Password: password,
	}
	if err := w.signer.Signup(ctx, req); err != nil {
		w.log.Warn(ctx, "signup failed", "error", err)
		return err
	}

	w.step = StepSubmitted
	w.log.Info(ctx, "signup complete", "user_id", userID)
	return nil
}

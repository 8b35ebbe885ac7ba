package cli

import (
	"context"
	"errors"
	"io"

	"github.com/pterm/pterm"

	"github.com/dmitrijs2005/campushub/internal/client/guard"
	"github.com/dmitrijs2005/campushub/internal/client/models"
	"github.com/dmitrijs2005/campushub/internal/client/signup"
	"github.com/dmitrijs2005/campushub/internal/client/validation"
	"github.com/dmitrijs2005/campushub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// backCommand returns from the account step of signup to the college step.
const backCommand = ":back"

// Login prompts for college details and credentials, validates them and
// signs the user in. On success the dashboard is shown. The password byte
// slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if err := a.ready(ctx); err != nil {
		return err
	}

	collegeName, err := getSimpleText(a.reader, "College name", a.out)
	if err != nil {
		return err
	}
	collegeCode, err := getSimpleText(a.reader, "College code", a.out)
	if err != nil {
		return err
	}
	userID, err := getSimpleText(a.reader, "User ID", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := validation.LoginForm{
		CollegeName: collegeName,
		CollegeCode: collegeCode,
		UserID:      userID,
		Password:    password,
	}
	if err := form.Validate(); err != nil {
		reportError(err)
		return err
	}

	creds := models.Credentials{
		UserID:      userID,
		CollegeName: collegeName,
		CollegeCode: collegeCode,
		Password:    password,
	}
	if err := a.session.Login(ctx, creds); err != nil {
		pterm.Error.Println("Login failed. Please try again.")
		a.log.Error(ctx, "login failed", "error", err)
		return err
	}

	pterm.Success.Println("Signed in")
	return a.Open(ctx, guard.DashboardPath)
}

// Signup runs the two-step signup wizard. Typing :back at the user id prompt
// returns to the college step with the previous answers kept; an empty
// answer there reuses the buffered value. A failed signup asks for the
// account details again. Signup returns when input ends or ctx is done.
func (a *App) Signup(ctx context.Context) error {
	if err := a.ready(ctx); err != nil {
		return err
	}

	w, err := signup.NewWizard(a.session, signup.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.path = guard.SignupPath

	for {
		switch w.Step() {
		case signup.StepCollegeInfo:
			if err := a.signupCollegeStep(w); err != nil && !isFieldError(err) {
				return err
			}

		case signup.StepAccountInfo:
			err := a.signupAccountStep(ctx, w)
			switch {
			case err == nil, isFieldError(err), errors.Is(err, errBack):
			case errors.Is(err, io.EOF), ctx.Err() != nil:
				return err
			default:
				// the wizard keeps step one, so only the account step is asked again
				pterm.Error.Println("Signup failed. Please try again.")
				a.log.Error(ctx, "signup failed", "error", err)
			}

		case signup.StepSubmitted:
			pterm.Success.Println("Account created")
			return a.Open(ctx, guard.DashboardPath)
		}
	}
}

var errBack = errors.New("back to college step")

func (a *App) signupCollegeStep(w *signup.Wizard) error {
	pterm.DefaultSection.Println("Step 1 of 2: college")
	prev, _ := w.CollegeInfo()

	name, err := getSimpleText(a.reader, withDefault("College name", prev.CollegeName), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = prev.CollegeName
	}
	code, err := getSimpleText(a.reader, withDefault("College code", prev.CollegeCode), a.out)
	if err != nil {
		return err
	}
	if code == "" {
		code = prev.CollegeCode
	}

	if err := w.SubmitStep1(name, code); err != nil {
		reportError(err)
		return err
	}
	return nil
}

func (a *App) signupAccountStep(ctx context.Context, w *signup.Wizard) error {
	pterm.DefaultSection.Println("Step 2 of 2: account")

	userID, err := getSimpleText(a.reader, "User ID ("+backCommand+" to go back)", a.out)
	if err != nil {
		return err
	}
	if userID == backCommand {
		if err := w.Back(); err != nil {
			return err
		}
		return errBack
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := w.SubmitStep2(ctx, userID, password, confirm); err != nil {
		if isFieldError(err) {
			reportError(err)
		}
		return err
	}
	return nil
}

// Logout signs the user out and shows the login screen. A failure to remove
// the stored session is reported, but the user is signed out regardless.
func (a *App) Logout(ctx context.Context) error {
	if err := a.ready(ctx); err != nil {
		return err
	}

	err := a.session.Logout(ctx)
	if err != nil {
		pterm.Warning.Println("Signed out, but the saved session could not be removed.")
		a.log.Error(ctx, "logout failed", "error", err)
	} else {
		pterm.Success.Println("Signed out")
	}

	_ = a.Open(ctx, guard.LoginPath)
	return err
}

func isFieldError(err error) bool {
	_, ok := validation.AsFieldErrors(err)
	return ok
}

func withDefault(prompt, value string) string {
	if value == "" {
		return prompt
	}
	return prompt + " [" + value + "]"
}

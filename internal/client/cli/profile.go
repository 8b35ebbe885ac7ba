package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/dmitrijs2005/campushub/internal/client/guard"
	"github.com/dmitrijs2005/campushub/internal/client/models"
	"github.com/dmitrijs2005/campushub/internal/client/validation"
)

// clearValue as an answer empties an optional profile field.
const clearValue = "-"

// EditProfile prompts for full name, date of birth (YYYY-MM-DD) and place.
// An empty answer keeps the current value and "-" clears it. The identity
// fields cannot be changed here.
func (a *App) EditProfile(ctx context.Context) error {
	route, _ := guard.Lookup(guard.ProfilePath)
	if d := a.guard.Check(route); d != guard.Render {
		return a.Open(ctx, guard.ProfilePath)
	}
	if err := a.ready(ctx); err != nil {
		return err
	}

	current := a.session.Snapshot().User
	if current == nil {
		return a.Open(ctx, guard.ProfilePath)
	}
	a.path = guard.ProfilePath

	fullName, err := a.askField("Full name", current.FullName)
	if err != nil {
		return err
	}
	dob, err := a.askField("Date of birth (YYYY-MM-DD)", dobDate(current.DOB))
	if err != nil {
		return err
	}
	place, err := a.askField("Place", current.Place)
	if err != nil {
		return err
	}

	form := validation.ProfileForm{FullName: fullName, Place: place}
	fe := validation.FieldErrors{}
	if dob != "" {
		t, err := models.ParseDOB(dob)
		if err != nil {
			fe["dob"] = "Invalid date"
		} else {
			form.DOB = &t
		}
	}
	if err := form.Validate(a.now()); err != nil {
		if more, ok := validation.AsFieldErrors(err); ok {
			for k, v := range more {
				fe[k] = v
			}
		} else {
			reportError(err)
			return err
		}
	}
	if len(fe) > 0 {
		reportError(fe)
		return fe
	}

	upd := profileUpdate(*current, form)
	if upd.IsEmpty() {
		printlnFn("Nothing to update.")
		return nil
	}

	if err := a.session.UpdateProfile(ctx, upd); err != nil {
		pterm.Error.Println("Could not save the profile.")
		a.log.Error(ctx, "profile update failed", "error", err)
		return err
	}

	pterm.Success.Println("Profile updated")
	return a.Open(ctx, guard.ProfilePath)
}

// askField prompts with the current value shown. An empty answer returns
// current, clearValue returns "".
func (a *App) askField(prompt, current string) (string, error) {
	if current != "" {
		prompt += " (" + clearValue + " to clear)"
	}
	v, err := getSimpleText(a.reader, withDefault(prompt, current), a.out)
	if err != nil {
		return "", err
	}
	switch v {
	case "":
		return current, nil
	case clearValue:
		return "", nil
	}
	return v, nil
}

// profileUpdate carries only the fields that differ from u. Dates of birth
// are compared by calendar day so a stored timestamp is kept unless the
// user picks another day.
func profileUpdate(u models.User, form validation.ProfileForm) models.ProfileUpdate {
	var upd models.ProfileUpdate
	if name := strings.TrimSpace(form.FullName); name != u.FullName {
		upd.FullName = models.StringPtr(name)
	}
	switch {
	case form.DOB == nil:
		if u.DOB != "" {
			upd.DOB = models.StringPtr("")
		}
	case form.DOB.UTC().Format(time.DateOnly) != dobDate(u.DOB):
		upd.DOB = models.StringPtr(models.FormatDOB(truncateDay(*form.DOB)))
	}
	if place := strings.TrimSpace(form.Place); place != u.Place {
		upd.Place = models.StringPtr(place)
	}
	return upd
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WhoAmI prints the session state.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Snapshot()
	if !s.IsAuthenticated() {
		printlnFn(fmt.Sprintf("Not signed in (%s)", s.Status))
		return nil
	}
	printlnFn(fmt.Sprintf("%s at %s (%s)", s.User.DisplayName(), s.User.CollegeName, s.User.CollegeCode))
	return nil
}

// Package validation holds the field rules shared by the login, signup and
// profile forms. Rules are ozzo-validation rules; Check wraps them into a
// total pass/fail result for views that only need a message.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dmitrijs2005/campushub/internal/client/models"
)

// Result is the outcome of checking a single value.
type Result struct {
	OK      bool
	Message string
}

// Check runs rules against value and never panics.
func Check(value any, rules ...validation.Rule) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{OK: false, Message: fmt.Sprint(r)}
		}
	}()

	if err := validation.Validate(value, rules...); err != nil {
		return Result{OK: false, Message: err.Error()}
	}
	return Result{OK: true}
}

// Required fails when the value is empty after trimming white space.
func Required(message string) validation.Rule {
	return requiredRule{message: message}
}

type requiredRule struct {
	message string
}

func (r requiredRule) Validate(value any) error {
	s, ok := textOf(value)
	if !ok {
		return validation.Required.Error(r.message).Validate(value)
	}
	if strings.TrimSpace(s) == "" {
		return errors.New(r.message)
	}
	return nil
}

// MinLength fails when the value has fewer than n characters. Unlike
// validation.RuneLength an empty value is not skipped.
func MinLength(n int, message string) validation.Rule {
	return minLengthRule{min: n, message: message}
}

type minLengthRule struct {
	min     int
	message string
}

func (r minLengthRule) Validate(value any) error {
	s, ok := textOf(value)
	if !ok {
		return fmt.Errorf("cannot measure length of %T", value)
	}
	if utf8.RuneCountInString(s) < r.min {
		return errors.New(r.message)
	}
	return nil
}

// DateRange fails when the value is a date outside [min, max]. Accepted
// values are time.Time, *time.Time and ISO-8601 strings; empty or nil values
// pass so the rule can guard optional fields.
func DateRange(min, max time.Time, message string) validation.Rule {
	return validation.By(func(value any) error {
		var t time.Time
		switch v := value.(type) {
		case time.Time:
			t = v
		case *time.Time:
			if v == nil {
				return nil
			}
			t = *v
		case string:
			if strings.TrimSpace(v) == "" {
				return nil
			}
			parsed, err := models.ParseDOB(v)
			if err != nil {
				return errors.New("Invalid date")
			}
			t = parsed
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return nil
			}
			parsed, err := models.ParseDOB(*v)
			if err != nil {
				return errors.New("Invalid date")
			}
			t = parsed
		default:
			return fmt.Errorf("cannot read date from %T", value)
		}
		if t.IsZero() {
			return nil
		}
		if t.Before(min) || t.After(max) {
			return errors.New(message)
		}
		return nil
	})
}

func textOf(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", true
		}
		return *v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

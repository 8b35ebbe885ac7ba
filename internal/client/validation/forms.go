package validation

import (
	"crypto/subtle"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Messages shown next to invalid fields.
const (
	MsgCollegeNameRequired = "College name is required"
	MsgCollegeCodeRequired = "College code is required"
	MsgUserIDRequired      = "User ID is required"
	MsgPasswordTooShort    = "Password must be at least 6 characters"
	MsgConfirmRequired     = "Confirm password is required"
	MsgPasswordsMismatch   = "Passwords don't match"
	MsgFullNameTooShort    = "Full name must be at least 2 characters"
	MsgDOBOutOfRange       = "Date of birth must be between 1900-01-01 and today"
)

// PasswordMinLength is the shortest password accepted by login and signup.
const PasswordMinLength = 6

// FullNameMinLength is the shortest full name accepted by the profile form.
const FullNameMinLength = 2

// DOBFloor is the earliest accepted date of birth.
var DOBFloor = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// LoginForm is the single-page login payload.
type LoginForm struct {
	CollegeName string `json:"collegeName"`
	CollegeCode string `json:"collegeCode"`
	UserID      string `json:"userId"`
	Password    []byte `json:"password"`
}

// Validate returns FieldErrors for every invalid field.
func (f LoginForm) Validate() error {
	return fromOzzo(validation.ValidateStruct(&f,
		validation.Field(&f.CollegeName, Required(MsgCollegeNameRequired)),
		validation.Field(&f.CollegeCode, Required(MsgCollegeCodeRequired)),
		validation.Field(&f.UserID, Required(MsgUserIDRequired)),
		validation.Field(&f.Password, MinLength(PasswordMinLength, MsgPasswordTooShort)),
	))
}

// CollegeInfoForm is step one of the signup wizard.
type CollegeInfoForm struct {
	CollegeName string `json:"collegeName"`
	CollegeCode string `json:"collegeCode"`
}

func (f CollegeInfoForm) Validate() error {
	return fromOzzo(validation.ValidateStruct(&f,
		validation.Field(&f.CollegeName, Required(MsgCollegeNameRequired)),
		validation.Field(&f.CollegeCode, Required(MsgCollegeCodeRequired)),
	))
}

// AccountInfoForm is step two of the signup wizard. The confirmation check
// is the only cross-field rule and is reported on confirmPassword.
type AccountInfoForm struct {
	UserID          string `json:"userId"`
	Password        []byte `json:"password"`
	ConfirmPassword []byte `json:"confirmPassword"`
}

func (f AccountInfoForm) Validate() error {
	return fromOzzo(validation.ValidateStruct(&f,
		validation.Field(&f.UserID, Required(MsgUserIDRequired)),
		validation.Field(&f.Password, MinLength(PasswordMinLength, MsgPasswordTooShort)),
		validation.Field(&f.ConfirmPassword,
			MinLength(1, MsgConfirmRequired),
			validation.By(equalsBytes(f.Password, MsgPasswordsMismatch)),
		),
	))
}

// ProfileForm holds the editable profile fields.
type ProfileForm struct {
	FullName string     `json:"fullName"`
	DOB      *time.Time `json:"dob"`
	Place    string     `json:"place"`
}

// Validate checks the form against now, the upper bound for the date of birth.
func (f ProfileForm) Validate(now time.Time) error {
	return fromOzzo(validation.ValidateStruct(&f,
		validation.Field(&f.FullName, MinLength(FullNameMinLength, MsgFullNameTooShort)),
		validation.Field(&f.DOB, DateRange(DOBFloor, now, MsgDOBOutOfRange)),
	))
}

func equalsBytes(want []byte, message string) validation.RuleFunc {
	return func(value any) error {
		got, ok := value.([]byte)
		if !ok {
			return errors.New(message)
		}
		if len(got) != len(want) || subtle.ConstantTimeCompare(got, want) != 1 {
			return errors.New(message)
		}
		return nil
	}
}

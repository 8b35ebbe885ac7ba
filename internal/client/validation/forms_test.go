package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginForm_Valid(t *testing.T) {
	f := LoginForm{CollegeName: "MIT", CollegeCode: "M1", UserID: "u1", Password: []byte("secret")}
	require.NoError(t, f.Validate())
}

func TestLoginForm_AllFieldsInvalid(t *testing.T) {
	err := LoginForm{Password: []byte("123")}.Validate()
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)

	assert.Equal(t, MsgCollegeNameRequired, fe["collegeName"])
	assert.Equal(t, MsgCollegeCodeRequired, fe["collegeCode"])
	assert.Equal(t, MsgUserIDRequired, fe["userId"])
	assert.Equal(t, MsgPasswordTooShort, fe["password"])
}

func TestCollegeInfoForm(t *testing.T) {
	require.NoError(t, CollegeInfoForm{CollegeName: "A", CollegeCode: "B"}.Validate())

	fe, ok := AsFieldErrors(CollegeInfoForm{CollegeName: "", CollegeCode: "X"}.Validate())
	require.True(t, ok)
	assert.True(t, fe.Has("collegeName"))
	assert.False(t, fe.Has("collegeCode"))
}

func TestAccountInfoForm_Mismatch_IsScopedToConfirmPassword(t *testing.T) {
	err := AccountInfoForm{UserID: "u1", Password: []byte("abcdef"), ConfirmPassword: []byte("abcxyz")}.Validate()
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)

	assert.Len(t, fe, 1)
	assert.Equal(t, MsgPasswordsMismatch, fe["confirmPassword"])
}

func TestAccountInfoForm_ShortPasswordAndMissingConfirm(t *testing.T) {
	err := AccountInfoForm{UserID: " ", Password: []byte("abc")}.Validate()
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)

	assert.Equal(t, MsgUserIDRequired, fe["userId"])
	assert.Equal(t, MsgPasswordTooShort, fe["password"])
	assert.Equal(t, MsgConfirmRequired, fe["confirmPassword"])
}

func TestAccountInfoForm_Valid(t *testing.T) {
	f := AccountInfoForm{UserID: "u1", Password: []byte("abcdef"), ConfirmPassword: []byte("abcdef")}
	require.NoError(t, f.Validate())
}

func TestProfileForm(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	dob := time.Date(2001, 4, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ProfileForm{FullName: "Ann Lee", DOB: &dob}.Validate(now))
	require.NoError(t, ProfileForm{FullName: "Ann"}.Validate(now), "dob is optional")

	tomorrow := now.Add(24 * time.Hour)
	fe, ok := AsFieldErrors(ProfileForm{FullName: "A", DOB: &tomorrow}.Validate(now))
	require.True(t, ok)
	assert.Equal(t, MsgFullNameTooShort, fe["fullName"])
	assert.Equal(t, MsgDOBOutOfRange, fe["dob"])

	ancient := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	fe, ok = AsFieldErrors(ProfileForm{FullName: "Ann", DOB: &ancient}.Validate(now))
	require.True(t, ok)
	assert.True(t, fe.Has("dob"))
}

func TestFieldErrors_Error_IsSortedAndStable(t *testing.T) {
	fe := FieldErrors{"userId": "b", "collegeName": "a"}
	assert.Equal(t, "collegeName: a; userId: b", fe.Error())
}

func TestAsFieldErrors_NotFieldErrors(t *testing.T) {
	_, ok := AsFieldErrors(errors.New("plain"))
	assert.False(t, ok)

	_, ok = AsFieldErrors(nil)
	assert.False(t, ok)
}

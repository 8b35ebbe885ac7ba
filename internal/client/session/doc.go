// Package session owns the identity of the signed-in user.
//
// # Overview
//
// A Manager keeps the current user in memory and mirrors it to a durable
// key-value store under the single key "user" (see UserKey). The stored value
// is the JSON encoding of models.User, which has no password field.
//
// Lifecycle:
//
//	Loading ──Initialize──▶ Authenticated | Anonymous
//	Authenticated ──UpdateProfile──▶ Authenticated
//	Authenticated ──Logout──▶ Anonymous
//	Anonymous | Authenticated ──Login/Signup──▶ Authenticated
//
// # Consistency
//
// Mutations (Initialize, Login, Signup, Logout, UpdateProfile) run one at a
// time. Login, Signup and UpdateProfile change the in-memory user only after
// the store accepted the write. Logout always clears the in-memory user, even
// when deleting the stored record fails; the failure is still returned.
//
// # Error Handling
//
// Sentinel errors, matched with errors.Is: ErrNotInitialized,
// ErrAlreadyInitialized, ErrNotAuthenticated, ErrStorageRead (only logged by
// Initialize) and ErrStorageWrite. Invalid identity fields are reported as
// validation.FieldErrors.
package session

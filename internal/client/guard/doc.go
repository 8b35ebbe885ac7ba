// Package guard decides, per route, whether a view renders, shows a pending
// placeholder or sends the user to the login screen.
package guard

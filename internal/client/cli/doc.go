// Package cli provides the interactive CampusHub command-line client.
//
// It wires the session manager, route guard and signup wizard to a small
// REPL. Every view is resolved through the route guard: protected views show
// a loading placeholder until the stored session has been read and send
// anonymous users to the login screen.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

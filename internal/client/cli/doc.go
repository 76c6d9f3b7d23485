// Package cli provides the interactive trip tracker command-line client.
//
// It wires configuration, the local session database, the request gateway
// and the endpoint catalog, then runs a REPL whose commands mirror the pages
// of the web client:
//   - register / login / logout / whoami
//   - profile / profile-update
//   - trip-start / trip-point / trip-batch / trip-finish / trips / trip / trip-delete
//   - path-search / path / path-add
//
// Protected commands check for a stored token first. Whenever the session is
// missing or rejected by the server the client's navigator announces it and
// the REPL prompts for credentials before the next command.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

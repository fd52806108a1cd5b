// Package cli is responsible for parsing command-line arguments and
// environment defaults into an app.Config. It isolates all user-input
// handling from the application logic.
package cli

// Package cli provides the interactive VidTube command-line client.
//
// It wires configuration, the local credential store, the API services and
// an interactive REPL. Typical flow: restore the session from stored
// credentials, then execute user commands against the VidTube API.
//
// Key features:
//   - Login / Register / Logout with persistent sessions
//   - Browse, search, upload and download videos
//   - Manage playlists and subscriptions
//   - Comment on and like videos
//   - Review pending notifications
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

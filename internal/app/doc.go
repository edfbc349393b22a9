// Package app is the composition root for herotail.
//
// # Overview
//
// Run loads configuration and preferences, sets up the diagnostic logger,
// builds the state.View with its export collaborators, picks a log source,
// and runs the Bubble Tea program until the user quits or the context is
// cancelled.
//
// # Sources
//
// Exactly one source feeds the program:
//
//   - stdin (the default): lines are scanned on a goroutine and sent as
//     ui.LineMsg. Keys are read from the controlling terminal.
//   - --file: the last capacity lines are loaded into the view before the
//     program starts; with --follow, appended lines are sent as they arrive.
//   - --app: the Heroku CLI is checked (installed, logged in), a
//     stream.Supervisor connects, and stream.Monitor restarts the process
//     with backoff. Records arrive as ui.RecordMsg and supervisor events as
//     ui.StatusMsg. After the monitor gives up, pressing r reconnects and
//     monitoring resumes.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        ~/.config/herotail/config.toml + flags
//	       ├─────> newLogger()          logrus to --log-file or discard
//	       ├─────> prefs.Load()         theme
//	       ├─────> state.New()          ring buffer, filters, export
//	       ├─────> source goroutine     stdin | file follow | live stream
//	       └─────> program.Run()        blocks; Update is the single consumer
//
// # Error Handling
//
// Failures before the UI starts are returned: a broken config file, an
// unreadable --file, a missing or logged-out Heroku CLI, a first connect that
// fails. Once the UI is up, source problems become status messages and are
// logged.
package app

// Package stream supervises the external process that tails remote logs.
//
// A Supervisor holds at most one Process for its target app. Connect always
// kills the previous process before launching a new one, and a successful
// connect resets the reconnect counter. Reconnect spends one attempt, sleeps
// for Backoff(attempt) (1s, 2s, 4s, 8s, 16s) and connects again; after
// MaxAttempts consecutive attempts it returns ErrMaxAttempts. Only Disconnect
// or a successful connect refills the budget.
//
// While connected, a reader goroutine parses stdout line by line and sends
// records to the Out channel. Unparseable lines are dropped. The goroutine
// exits quietly when the pipe closes or the process is replaced.
//
// Monitor is the supervising loop. It polls IsRunning on a fixed interval,
// reconnects after the process exits, and reports lifecycle changes as Event
// values.
//
// The real source is ExecLauncher, which runs the Heroku CLI. Tests provide
// their own Launcher and Process doubles.
package stream

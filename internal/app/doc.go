// Package app is the composition root of reel.
//
// Run loads the configuration, opens the log file and the persistence
// backend, and builds one storage context (adapter plus session, wishlist
// and theme stores) on a shared change bus. It then starts the watcher loop
// and hands everything to the terminal UI, blocking until the user quits.
//
// # Watcher loop
//
// Other reel processes may write the same backend. StartWatcher polls it at
// the configured interval and publishes changed keys on the bus as external
// events, so the stores re-read them. A failing poll is logged and retried
// with exponential back-off capped at 30 seconds.
//
// # Errors
//
// Run returns an error only when startup fails: an invalid config file, an
// unwritable log file, a backend that cannot be opened, or a terminal error.
// Everything after startup degrades instead of failing.
//
// Fetch counters collected by the loaders are written to the log on exit.
package app

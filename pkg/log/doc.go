// Package log provides the structured logging abstraction used across kalah.
//
// Library packages (sequencer, kalah, session, server) accept a Logger so
// that embedding programs decide where output goes. Two implementations are
// provided: a zerolog adapter for real output and a no-op logger that is the
// default everywhere a Logger is optional.
//
// # Usage
//
//	zl := log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel, false)
//	logger := log.NewZerologAdapterWithLogger(zl)
//
//	board := kalah.New(kalah.DefaultPlayers(), kalah.WithLogger(logger))
//
// Fields are attached with the helper constructors:
//
//	logger.Info("move accepted", log.Int("source", 3), log.Bool("capture", true))
//
// Use With to derive a logger that always carries a set of fields, for
// example the game ID of a session.
package log

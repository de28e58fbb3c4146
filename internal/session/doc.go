// Package session owns the game a host is presenting: the live kalah.Board,
// its game ID, the player settings, and the subscribers that redraw it.
//
// Restart abandons the current board (pending animation steps are cancelled)
// and starts a fresh one with a new ID. Subscribers only ever see updates
// from the current board.
//
// Plugins extend a session the way the config watcher does: they are
// initialized by Start in registration order and shut down by Close in
// reverse order.
package session

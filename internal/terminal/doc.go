// Package terminal plays a session as a hot-seat game on a text terminal.
//
// The board is drawn with player B's row on top, read right to left, and
// player A's row on the bottom. Both players number their own pits 1 to 6
// in sowing order.
package terminal

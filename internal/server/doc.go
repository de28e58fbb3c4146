// Package server exposes a session over HTTP and WebSocket for a browser
// front end on the same machine.
//
// Routes:
//
//	GET  /healthz                   liveness
//	GET  /api/game                  current state
//	GET  /api/layout                cell rectangles in board units
//	POST /api/pits/{position}/sow   play a pit
//	POST /api/click                 play the pit under {x, y} on a {width, height} surface
//	POST /api/restart               deal a new game
//	GET  /ws                        pushes {"type":"snapshot"} on every change;
//	                                accepts {"type":"sow","position":n} and {"type":"restart"}
//
// Moves answer 202 when accepted and 409 when the game ignores them.
package server

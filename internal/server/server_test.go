package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bft-labs/kalah/internal/session"
	"github.com/bft-labs/kalah/pkg/kalah"
	"github.com/bft-labs/kalah/pkg/sequencer"
)

type fixture struct {
	sess  *session.Session
	clock *sequencer.ManualClock
	srv   *Server
	ts    *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := sequencer.NewManualClock()
	sess, err := session.New(session.DefaultSettings(), session.WithClock(clock))
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	srv := New(sess)
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
		sess.Close()
	})
	return &fixture{sess: sess, clock: clock, srv: srv, ts: ts}
}

func (f *fixture) post(t *testing.T, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(f.ts.URL+path, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (f *fixture) getState(t *testing.T) session.State {
	t.Helper()
	resp, err := http.Get(f.ts.URL + "/api/game")
	if err != nil {
		t.Fatalf("GET /api/game: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/game status = %d", resp.StatusCode)
	}
	var st session.State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return st
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGetGame(t *testing.T) {
	f := newFixture(t)
	st := f.getState(t)

	if st.GameID != f.sess.GameID() {
		t.Errorf("game_id = %q, want %q", st.GameID, f.sess.GameID())
	}
	if st.Pits[0].Seeds != kalah.InitialSeeds || !st.Pits[kalah.StoreA].Store {
		t.Errorf("pits = %+v", st.Pits)
	}
	if st.Players[0].Name != "Red" || st.Winner != -1 {
		t.Errorf("state = %+v", st.Snapshot)
	}
}

func TestSow(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"own pit", "/api/pits/0/sow", http.StatusAccepted},
		{"store", "/api/pits/6/sow", http.StatusConflict},
		{"opponent pit", "/api/pits/9/sow", http.StatusConflict},
		{"out of range", "/api/pits/20/sow", http.StatusConflict},
		{"not a number", "/api/pits/abc/sow", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			resp, body := f.post(t, tt.path, "")
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d (%v)", resp.StatusCode, tt.wantStatus, body)
			}
		})
	}
}

func TestSow_IgnoredWhileAnimating(t *testing.T) {
	f := newFixture(t)

	if resp, _ := f.post(t, "/api/pits/0/sow", ""); resp.StatusCode != http.StatusAccepted {
		t.Fatalf("first move status = %d", resp.StatusCode)
	}
	resp, body := f.post(t, "/api/pits/1/sow", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("move during playback status = %d, want 409", resp.StatusCode)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "animating") {
		t.Errorf("error = %q", msg)
	}

	f.clock.Drain(100)
	if resp, _ := f.post(t, "/api/pits/7/sow", ""); resp.StatusCode != http.StatusAccepted {
		t.Errorf("player B move status = %d, want 202", resp.StatusCode)
	}
}

func TestClick(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantPit    int
	}{
		{"pit 0", `{"x":150,"y":250,"width":800,"height":300}`, http.StatusAccepted, 0},
		{"pit 5 on a small surface", `{"x":65,"y":25,"width":80,"height":30}`, http.StatusAccepted, 5},
		{"opponent pit", `{"x":150,"y":50,"width":800,"height":300}`, http.StatusConflict, -1},
		{"gap between rows", `{"x":450,"y":150,"width":800,"height":300}`, http.StatusConflict, -1},
		{"zero surface", `{"x":1,"y":1,"width":0,"height":300}`, http.StatusBadRequest, -1},
		{"bad json", `{"x":`, http.StatusBadRequest, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			resp, body := f.post(t, "/api/click", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, tt.wantStatus, body)
			}
			if tt.wantPit < 0 {
				return
			}
			f.clock.Drain(100)
			if got := f.getState(t).Pits[tt.wantPit].Seeds; got != 0 {
				t.Errorf("pit %d still holds %d seeds", tt.wantPit, got)
			}
		})
	}
}

func TestRestart(t *testing.T) {
	f := newFixture(t)
	first := f.sess.GameID()
	f.post(t, "/api/pits/2/sow", "")
	f.clock.Drain(100)

	resp, body := f.post(t, "/api/restart", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if id, _ := body["game_id"].(string); id == first || id != f.sess.GameID() {
		t.Errorf("game_id = %q after restart, first was %q", id, first)
	}
	if st := f.getState(t); st.Moves != 0 || st.Pits[2].Seeds != kalah.InitialSeeds {
		t.Errorf("restart kept the old position: %+v", st.Snapshot)
	}
}

func TestLayout(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.ts.URL + "/api/layout")
	if err != nil {
		t.Fatalf("GET /api/layout: %v", err)
	}
	defer resp.Body.Close()

	var got layoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Width != 8 || got.Height != 3 || len(got.Cells) != kalah.NumPits {
		t.Errorf("layout = %vx%v with %d cells", got.Width, got.Height, len(got.Cells))
	}
	if store := got.Cells[kalah.StoreA].Rect; store.Height() != 3 {
		t.Errorf("store A rect = %+v", store)
	}
}

func dialWS(t *testing.T, f *fixture) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMsg(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocket_SowAndPush(t *testing.T) {
	f := newFixture(t)
	conn := dialWS(t, f)

	hello := readMsg(t, conn)
	if hello.Type != "snapshot" {
		t.Fatalf("first message type = %q, want snapshot", hello.Type)
	}
	waitUntil(t, func() bool { return f.srv.hub.Len() == 1 })

	if err := conn.WriteJSON(map[string]any{"type": "sow", "position": 0}); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitUntil(t, f.sess.IsAnimating)
	f.clock.Drain(100)

	for {
		msg := readMsg(t, conn)
		if msg.Type != "snapshot" {
			continue
		}
		var st session.State
		if err := json.Unmarshal(msg.Payload, &st); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if st.Moves == 1 && !st.Animating {
			if st.Pits[0].Seeds != 0 || st.Current != 1 {
				t.Errorf("final pushed state = %+v", st.Snapshot)
			}
			return
		}
	}
}

func TestWebSocket_Errors(t *testing.T) {
	f := newFixture(t)
	conn := dialWS(t, f)
	readMsg(t, conn)

	tests := []struct {
		name     string
		frame    string
		wantType string
	}{
		{"illegal move", `{"type":"sow","position":6}`, "ignored"},
		{"missing position", `{"type":"sow"}`, "error"},
		{"unknown type", `{"type":"dance"}`, "error"},
		{"not json", `nope`, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.frame)); err != nil {
				t.Fatalf("write: %v", err)
			}
			msg := readMsg(t, conn)
			if msg.Type != tt.wantType || msg.Error == "" {
				t.Errorf("reply = %+v, want type %q with an error", msg, tt.wantType)
			}
		})
	}
}

func TestWebSocket_Restart(t *testing.T) {
	f := newFixture(t)
	conn := dialWS(t, f)
	readMsg(t, conn)
	waitUntil(t, func() bool { return f.srv.hub.Len() == 1 })
	first := f.sess.GameID()

	if err := conn.WriteJSON(map[string]string{"type": "restart"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readMsg(t, conn)
	var st session.State
	if err := json.Unmarshal(msg.Payload, &st); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if msg.Type != "snapshot" || st.GameID == first {
		t.Errorf("restart pushed %q for game %q", msg.Type, st.GameID)
	}
}

func TestClose_DisconnectsClients(t *testing.T) {
	f := newFixture(t)
	conn := dialWS(t, f)
	readMsg(t, conn)
	waitUntil(t, func() bool { return f.srv.hub.Len() == 1 })

	f.srv.Close()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure) {
				t.Errorf("close error = %v, want normal closure", err)
			}
			return
		}
	}
}

package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bft-labs/kalah/internal/session"
	"github.com/bft-labs/kalah/pkg/kalah"
)

// Renderer draws states as text.
type Renderer struct {
	// Color wraps player names in 24-bit ANSI color escapes.
	Color bool
}

// Render writes st to w.
func (r Renderer) Render(w io.Writer, st session.State) error {
	var b strings.Builder
	pits := st.Pits

	fmt.Fprintf(&b, "      %s\n", r.name(st.Players[1]))
	b.WriteString("      ")
	for pit := kalah.PitsPerSide; pit >= 1; pit-- {
		fmt.Fprintf(&b, "  %d  ", pit)
	}
	b.WriteString("\n      ")
	for pos := kalah.StoreB - 1; pos > kalah.StoreA; pos-- {
		fmt.Fprintf(&b, "[%3d]", pits[pos].Seeds)
	}
	fmt.Fprintf(&b, "\n[%3d]%s[%3d]\n      ", pits[kalah.StoreB].Seeds, strings.Repeat(" ", 5*kalah.PitsPerSide+1), pits[kalah.StoreA].Seeds)
	for pos := 0; pos < kalah.StoreA; pos++ {
		fmt.Fprintf(&b, "[%3d]", pits[pos].Seeds)
	}
	b.WriteString("\n      ")
	for pit := 1; pit <= kalah.PitsPerSide; pit++ {
		fmt.Fprintf(&b, "  %d  ", pit)
	}
	fmt.Fprintf(&b, "\n      %s\n", r.name(st.Players[0]))

	switch {
	case st.Finished():
		fmt.Fprintf(&b, "%s wins %d to %d. r: new game, q: quit\n",
			r.name(st.Players[st.Winner]), pits[kalah.StoreOf(st.Winner)].Seeds, pits[kalah.StoreOf(1-st.Winner)].Seeds)
	case st.Animating:
		fmt.Fprintf(&b, "%s is sowing (%d in hand)...\n", r.name(st.Players[st.Current]), st.InHand)
	default:
		fmt.Fprintf(&b, "%s to move (1-6, r, q): \n", r.name(st.Players[st.Current]))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r Renderer) name(p kalah.Player) string {
	if !r.Color {
		return p.Name
	}
	red, green, blue, ok := parseHexColor(p.Color)
	if !ok {
		return p.Name
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", red, green, blue, p.Name)
}

// parseHexColor reads "#rrggbb".
func parseHexColor(s string) (r, g, b uint8, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

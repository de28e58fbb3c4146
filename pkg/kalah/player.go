package kalah

// Player identifies one side of the board. Players are compared by pointer.
type Player struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultPlayers returns a fresh pair of players with the classic colors.
func DefaultPlayers() [2]*Player {
	return [2]*Player{
		{Name: "Red", Color: "#ff0000"},
		{Name: "Green", Color: "#00ff00"},
	}
}

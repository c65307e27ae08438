package team

import "strings"

const (
	PositionGoalkeeper = "Goalkeeper"
	PositionDefence    = "Defence"
	PositionMidfield   = "Midfield"
	PositionOffence    = "Offence"
	PositionUnknown    = "Unknown"
)

var positionOrder = []string{
	PositionGoalkeeper,
	PositionDefence,
	PositionMidfield,
	PositionOffence,
}

// SquadGroup holds the players sharing one position line.
type SquadGroup struct {
	Position string   `json:"position"`
	Players  []Player `json:"players"`
}

// GroupSquad buckets players by position line. Known lines come first in
// pitch order, unrecognised positions follow in first-seen order.
func GroupSquad(players []Player) []SquadGroup {
	buckets := make(map[string][]Player, len(positionOrder)+1)
	extra := make([]string, 0)
	for _, p := range players {
		line := PositionLine(p.Position)
		if _, seen := buckets[line]; !seen && !isKnownLine(line) {
			extra = append(extra, line)
		}
		buckets[line] = append(buckets[line], p)
	}

	out := make([]SquadGroup, 0, len(buckets))
	for _, line := range append(append([]string(nil), positionOrder...), extra...) {
		items, ok := buckets[line]
		if !ok {
			continue
		}
		out = append(out, SquadGroup{Position: line, Players: items})
	}
	return out
}

// PositionLine maps provider position labels onto the four pitch lines.
func PositionLine(position string) string {
	value := strings.ToLower(strings.TrimSpace(position))
	switch {
	case value == "":
		return PositionUnknown
	case strings.Contains(value, "goalkeeper") || value == "gk":
		return PositionGoalkeeper
	case strings.Contains(value, "midfield"):
		return PositionMidfield
	case strings.Contains(value, "back") || strings.Contains(value, "defen"):
		return PositionDefence
	case strings.Contains(value, "offence") || strings.Contains(value, "forward") ||
		strings.Contains(value, "winger") || strings.Contains(value, "striker") || strings.Contains(value, "attack"):
		return PositionOffence
	default:
		return strings.TrimSpace(position)
	}
}

func isKnownLine(line string) bool {
	for _, known := range positionOrder {
		if known == line {
			return true
		}
	}
	return false
}

package team

import "strings"

// Ref is the compact club reference embedded in match, standing and scorer payloads.
type Ref struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

// Abbreviation returns the shortest display label available for the club.
func (r Ref) Abbreviation() string {
	for _, candidate := range []string{r.TLA, r.ShortName, r.Name} {
		if value := strings.TrimSpace(candidate); value != "" {
			return value
		}
	}
	return ""
}

// Team is a club with its squad as returned by the football data provider.
type Team struct {
	Ref
	Founded    *int     `json:"founded"`
	Address    string   `json:"address"`
	Website    string   `json:"website"`
	Venue      string   `json:"venue"`
	ClubColors string   `json:"clubColors"`
	Squad      []Player `json:"squad"`
}

// Player is a squad member. Position is free-form text from the provider.
type Player struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Nationality string `json:"nationality"`
	ShirtNumber *int   `json:"shirtNumber"`
	DateOfBirth string `json:"dateOfBirth"`
}

package competition

import (
	"fmt"
	"strings"
)

const (
	TypeLeague = "LEAGUE"
	TypeCup    = "CUP"
)

// Competition is an upstream competition the service exposes.
type Competition struct {
	Code          string `json:"code" yaml:"code"`
	Name          string `json:"name" yaml:"name"`
	Area          string `json:"area" yaml:"area"`
	Emblem        string `json:"emblem,omitempty" yaml:"emblem"`
	Type          string `json:"type" yaml:"type"`
	CurrentSeason int    `json:"currentSeason,omitempty" yaml:"currentSeason"`
	IsDefault     bool   `json:"isDefault" yaml:"default"`
}

func (c Competition) Validate() error {
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("competition code is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("competition name is required for %s", c.Code)
	}
	switch c.Type {
	case TypeLeague, TypeCup:
	default:
		return fmt.Errorf("competition %s has invalid type %q", c.Code, c.Type)
	}
	if c.CurrentSeason < 0 {
		return fmt.Errorf("competition %s season must be >= 0", c.Code)
	}

	return nil
}

// NormalizeCode upper-cases and trims a competition code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Defaults is the catalog used when no competitions file is configured.
func Defaults() []Competition {
	return []Competition{
		{Code: "PL", Name: "Premier League", Area: "England", Type: TypeLeague, IsDefault: true},
		{Code: "PD", Name: "Primera Division", Area: "Spain", Type: TypeLeague},
		{Code: "BL1", Name: "Bundesliga", Area: "Germany", Type: TypeLeague},
		{Code: "SA", Name: "Serie A", Area: "Italy", Type: TypeLeague},
		{Code: "FL1", Name: "Ligue 1", Area: "France", Type: TypeLeague},
		{Code: "CL", Name: "UEFA Champions League", Area: "Europe", Type: TypeCup},
	}
}

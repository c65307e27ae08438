package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/matchcentre/internal/domain/competition"
)

type competitionsFile struct {
	Competitions []competition.Competition `yaml:"competitions"`
}

// LoadCompetitions reads the competition catalog from a YAML file. An empty
// path yields the built-in defaults.
func LoadCompetitions(path string) ([]competition.Competition, error) {
	if path == "" {
		return competition.Defaults(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read COMPETITIONS_FILE: %w", err)
	}

	return ParseCompetitions(raw)
}

// ParseCompetitions decodes and validates a YAML competition catalog.
func ParseCompetitions(raw []byte) ([]competition.Competition, error) {
	var file competitionsFile
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode competitions: %w", err)
	}
	if len(file.Competitions) == 0 {
		return nil, fmt.Errorf("competitions file must list at least one competition")
	}

	seen := make(map[string]struct{}, len(file.Competitions))
	out := make([]competition.Competition, 0, len(file.Competitions))
	hasDefault := false
	for _, item := range file.Competitions {
		item.Code = competition.NormalizeCode(item.Code)
		if item.Type == "" {
			item.Type = competition.TypeLeague
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[item.Code]; ok {
			return nil, fmt.Errorf("duplicate competition code %s", item.Code)
		}
		if item.IsDefault {
			if hasDefault {
				return nil, fmt.Errorf("only one competition can be marked default")
			}
			hasDefault = true
		}
		seen[item.Code] = struct{}{}
		out = append(out, item)
	}
	if !hasDefault {
		out[0].IsDefault = true
	}

	return out, nil
}

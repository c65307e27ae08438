package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/scorer"
	"github.com/riskibarqy/matchcentre/internal/domain/standing"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
	"github.com/riskibarqy/matchcentre/internal/usecase"
)

type teamsEnvelope struct {
	Teams []team.Team `json:"teams"`
}

type matchesEnvelope struct {
	Matches []match.Record `json:"matches"`
}

type standingsEnvelope struct {
	Standings []standing.Table `json:"standings"`
}

type scorersEnvelope struct {
	Scorers []scorer.Scorer `json:"scorers"`
}

func (c *Client) FetchCompetitionTeams(ctx context.Context, code string) ([]team.Team, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	var payload teamsEnvelope
	if err := c.doJSON(ctx, "/competitions/"+code+"/teams", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch teams competition=%s: %w", code, err)
	}
	if payload.Teams == nil {
		return []team.Team{}, nil
	}
	return payload.Teams, nil
}

func (c *Client) FetchCompetitionMatches(ctx context.Context, code string, filter match.Filter) ([]match.Record, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	var payload matchesEnvelope
	if err := c.doJSON(ctx, "/competitions/"+code+"/matches", filterQuery(filter, false), &payload); err != nil {
		return nil, fmt.Errorf("fetch matches competition=%s: %w", code, err)
	}
	return nonNilMatches(payload.Matches), nil
}

func (c *Client) FetchStandings(ctx context.Context, code string) ([]standing.Table, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	var payload standingsEnvelope
	if err := c.doJSON(ctx, "/competitions/"+code+"/standings", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch standings competition=%s: %w", code, err)
	}
	out := make([]standing.Table, 0, len(payload.Standings))
	for _, table := range payload.Standings {
		if table.Rows == nil {
			table.Rows = []standing.Row{}
		}
		out = append(out, table)
	}
	return out, nil
}

func (c *Client) FetchScorers(ctx context.Context, code string, limit int) ([]scorer.Scorer, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var payload scorersEnvelope
	if err := c.doJSON(ctx, "/competitions/"+code+"/scorers", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch scorers competition=%s: %w", code, err)
	}
	if payload.Scorers == nil {
		return []scorer.Scorer{}, nil
	}
	return payload.Scorers, nil
}

// FetchTeam returns the club with its squad; ok is false on 404.
func (c *Client) FetchTeam(ctx context.Context, teamID int64) (team.Team, bool, error) {
	if teamID <= 0 {
		return team.Team{}, false, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload team.Team
	err := c.doJSON(ctx, "/teams/"+strconv.FormatInt(teamID, 10), nil, &payload)
	if stderrors.Is(err, usecase.ErrNotFound) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, fmt.Errorf("fetch team id=%d: %w", teamID, err)
	}
	if payload.Squad == nil {
		payload.Squad = []team.Player{}
	}
	return payload, true, nil
}

func (c *Client) FetchTeamMatches(ctx context.Context, teamID int64, filter match.Filter) ([]match.Record, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload matchesEnvelope
	path := "/teams/" + strconv.FormatInt(teamID, 10) + "/matches"
	if err := c.doJSON(ctx, path, filterQuery(filter, true), &payload); err != nil {
		return nil, fmt.Errorf("fetch matches team=%d: %w", teamID, err)
	}
	return nonNilMatches(payload.Matches), nil
}

// FetchMatch returns a single match; ok is false on 404.
func (c *Client) FetchMatch(ctx context.Context, matchID int64) (match.Record, bool, error) {
	if matchID <= 0 {
		return match.Record{}, false, fmt.Errorf("%w: match id must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload match.Record
	err := c.doJSON(ctx, "/matches/"+strconv.FormatInt(matchID, 10), nil, &payload)
	if stderrors.Is(err, usecase.ErrNotFound) {
		return match.Record{}, false, nil
	}
	if err != nil {
		return match.Record{}, false, fmt.Errorf("fetch match id=%d: %w", matchID, err)
	}
	return payload, true, nil
}

func filterQuery(filter match.Filter, withLimit bool) url.Values {
	query := url.Values{}
	if status := strings.ToUpper(strings.TrimSpace(filter.Status)); status != "" {
		query.Set("status", status)
	}
	if from := strings.TrimSpace(filter.DateFrom); from != "" {
		query.Set("dateFrom", from)
	}
	if to := strings.TrimSpace(filter.DateTo); to != "" {
		query.Set("dateTo", to)
	}
	if filter.Matchday > 0 {
		query.Set("matchday", strconv.Itoa(filter.Matchday))
	}
	if filter.Season > 0 {
		query.Set("season", strconv.Itoa(filter.Season))
	}
	if withLimit && filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	return query
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%w: competition code is required", usecase.ErrInvalidInput)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", fmt.Errorf("%w: competition code %q is not alphanumeric", usecase.ErrInvalidInput, code)
		}
	}
	return code, nil
}

func nonNilMatches(items []match.Record) []match.Record {
	if items == nil {
		return []match.Record{}
	}
	return items
}

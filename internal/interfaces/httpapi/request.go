package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/matchcentre/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

type leaderboardRequest struct {
	Field string `validate:"omitempty,oneof=goals assists penalties playedMatches cleanSheets"`
	Min   *int   `validate:"omitempty,min=0"`
	Limit int    `validate:"omitempty,min=1,max=100"`
}

type fixturesRequest struct {
	Status   string `validate:"omitempty,max=100"`
	DateFrom string `validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `validate:"omitempty,datetime=2006-01-02"`
	Matchday int    `validate:"omitempty,min=1,max=60"`
	Order    string `validate:"omitempty,oneof=asc desc"`
}

type teamMatchesRequest struct {
	Status   string `validate:"omitempty,max=100"`
	DateFrom string `validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `validate:"omitempty,datetime=2006-01-02"`
	Limit    int    `validate:"omitempty,min=1,max=100"`
	Order    string `validate:"omitempty,oneof=asc desc"`
}

type headToHeadRequest struct {
	Home int64 `validate:"required,gt=0"`
	Away int64 `validate:"required,gt=0,nefield=Home"`
}

type mediaSearchRequest struct {
	Query string `validate:"omitempty,max=64"`
}

type updateSessionRequest struct {
	FavoriteTeamID      int64   `json:"favoriteTeamId" validate:"omitempty,gt=0"`
	FavoriteCompetition string  `json:"favoriteCompetition" validate:"omitempty,max=10"`
	FollowedTeamIDs     []int64 `json:"followedTeamIds" validate:"omitempty,max=50,dive,gt=0"`
	Timezone            string  `json:"timezone" validate:"omitempty,max=64"`
	Locale              string  `json:"locale" validate:"omitempty,bcp47_language_tag"`
}

type warmupRequest struct {
	Competitions []string `json:"competitions" validate:"omitempty,max=50,dive,required,max=10"`
	MaxWorkers   int      `json:"maxWorkers" validate:"omitempty,min=1,max=32"`
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func queryString(query url.Values, name string) string {
	return strings.TrimSpace(query.Get(name))
}

func queryInt(query url.Values, name string) (int, error) {
	raw := queryString(query, name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func queryOptionalInt(query url.Values, name string) (*int, error) {
	if queryString(query, name) == "" {
		return nil, nil
	}
	value, err := queryInt(query, name)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func queryInt64(query url.Values, name string) (int64, error) {
	raw := queryString(query, name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func queryBool(query url.Values, name string) (bool, error) {
	raw := queryString(query, name)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

// decodeBody reads a JSON body into target. An empty body leaves target
// untouched when allowEmpty is set.
func decodeBody(r *http.Request, target any, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, maxRequestBodyBytes)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

package matching

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	overrideRepo "therapair/database/repository/override"
	therapistRepo "therapair/database/repository/therapist"
	"therapair/models"
	"therapair/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MatchCachePrefix namespaces memoized match results in Redis.
const MatchCachePrefix = "match:"

// MatcherService is the HTTP-facing matching boundary: it loads the
// candidate pool from storage, runs the pure ranking engine and memoizes
// results.
type MatcherService interface {
	Match(criteria models.MatchCriteria) (*models.MatchResponse, error)
}

// DefaultMatcherService is our production implementation.
type DefaultMatcherService struct {
	TherapistRepo therapistRepo.TherapistRepository
	OverrideRepo  overrideRepo.OverrideRepository
	CacheClient   *redis.Client
	Engine        *Engine
	CacheTTL      time.Duration
}

// Match ranks the accepting-therapist pool against the criteria. It first
// attempts to retrieve the result from cache; if not found, it computes the
// match and caches it. The engine itself stays pure; caching lives here at
// the caller's boundary.
func (s *DefaultMatcherService) Match(criteria models.MatchCriteria) (*models.MatchResponse, error) {
	ctx := context.Background()
	logger := utils.GetLogger()

	cacheKey, err := matchCacheKey(criteria)
	if err != nil {
		return nil, err
	}

	if s.CacheClient != nil {
		if cached, err := s.CacheClient.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var resp models.MatchResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			// If unmarshal fails, fall through to re-computation.
		}
	}

	therapists, err := s.TherapistRepo.GetAccepting()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve therapists: %w", err)
	}

	candidates := make([]Candidate, 0, len(therapists))
	for _, t := range therapists {
		overrides, err := s.OverrideRepo.GetByTherapist(t.ID)
		if err != nil {
			// One candidate's broken override data must not abort the pass.
			logger.Warn("skipping therapist with unreadable overrides",
				zap.String("therapistID", t.ID), zap.Error(err))
			continue
		}
		candidates = append(candidates, Candidate{Profile: t, Overrides: overrides})
	}

	matches, err := s.Engine.RankCandidates(criteria, candidates)
	if err != nil {
		return nil, err
	}
	resp := &models.MatchResponse{Matches: matches, TotalMatches: len(matches)}

	if s.CacheClient != nil {
		ttl := s.CacheTTL
		if ttl == 0 {
			ttl = 5 * time.Minute
		}
		if respBytes, err := json.Marshal(resp); err == nil {
			s.CacheClient.Set(ctx, cacheKey, respBytes, ttl)
		}
	}

	return resp, nil
}

// matchCacheKey derives a stable cache key from the JSON representation of
// the criteria.
func matchCacheKey(criteria models.MatchCriteria) (string, error) {
	criteriaBytes, err := json.Marshal(criteria)
	if err != nil {
		return "", fmt.Errorf("failed to marshal match criteria: %w", err)
	}
	sum := sha256.Sum256(criteriaBytes)
	return fmt.Sprintf("%s%x", MatchCachePrefix, sum[:16]), nil
}

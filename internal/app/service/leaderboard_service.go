package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"prepforge/internal/common"
	"prepforge/internal/domain/model"
	"prepforge/internal/domain/repository"
)

// LeaderboardService derives ranked standings from solved practice
// questions. Pure read path: recomputed on every request, never cached.
type LeaderboardService struct {
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	limit        int
}

func NewLeaderboardService(questionRepo repository.QuestionRepository, userRepo repository.UserRepository, limit int) *LeaderboardService {
	if limit <= 0 {
		limit = 20
	}
	return &LeaderboardService{questionRepo: questionRepo, userRepo: userRepo, limit: limit}
}

// Top computes the standings: sum the per-difficulty point table over each
// user's solved questions, sort by total descending with user id ascending
// as the deterministic tie-break, cut to the configured limit, then join
// display data.
func (s *LeaderboardService) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	tallies, err := s.questionRepo.SolvedTallies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate solved questions: %w", err)
	}

	totals := make(map[string]int)
	for _, t := range tallies {
		totals[t.UserID] += t.Count * model.PointsFor(t.Difficulty)
	}

	entries := make([]model.LeaderboardEntry, 0, len(totals))
	for userID, score := range totals {
		entries = append(entries, model.LeaderboardEntry{UserID: userID, TotalScore: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	ranked := make([]model.LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		user, err := s.userRepo.FindByID(ctx, entry.UserID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				continue // user removed since solving; drop the row
			}
			return nil, fmt.Errorf("failed to load user %s: %w", entry.UserID, err)
		}
		entry.Name = user.Name
		entry.PhotoURL = user.PhotoURL
		entry.Rank = len(ranked) + 1
		ranked = append(ranked, entry)
	}

	return ranked, nil
}

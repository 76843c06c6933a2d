// Package leaderboard implements score submission, ranking and admin
// mutation over the score store.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/snakegame/leaderboard/internal/models"
)

// Service errors.
var (
	// ErrScoreNotFound indicates the score id does not resolve to a record.
	ErrScoreNotFound = errors.New("leaderboard: score not found")
	// ErrAuthorNotFound indicates a score has no resolvable author.
	ErrAuthorNotFound = errors.New("leaderboard: author not found")
)

// rankingOrder sorts by points descending, ties broken by ascending time.
// The strict two-digit MM:SS format keeps lexicographic and chronological
// order aligned for values under 100 minutes; validation enforces the format
// so the string comparison below stays safe.
const rankingOrder = "score DESC, time ASC"

// Service exposes leaderboard operations over the score store.
type Service struct {
	db *gorm.DB
}

// NewService constructs a Service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SubmitInput carries a public score submission. Score is a pointer so a
// missing field can be told apart from a legitimate zero.
type SubmitInput struct {
	Nickname string `json:"nickname"`
	Score    *int64 `json:"score"`
	Time     string `json:"time"`
}

// Submit validates and persists a new score entry.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.Score, error) {
	if err := validateSubmit(in); err != nil {
		return nil, err
	}

	entry := models.Score{
		Nickname:  normalizeNickname(in.Nickname),
		Score:     *in.Score,
		Time:      in.Time,
		CreatedAt: time.Now().UTC(),
	}
	if errCreate := s.db.WithContext(ctx).Create(&entry).Error; errCreate != nil {
		return nil, fmt.Errorf("leaderboard: create score: %w", errCreate)
	}
	return &entry, nil
}

// Get returns a single score by id.
func (s *Service) Get(ctx context.Context, id uint64) (*models.Score, error) {
	var entry models.Score
	if errFind := s.db.WithContext(ctx).First(&entry, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("leaderboard: load score: %w", errFind)
	}
	return &entry, nil
}

// List returns every score in ranking order.
func (s *Service) List(ctx context.Context) ([]models.Score, error) {
	var scores []models.Score
	if errFind := s.db.WithContext(ctx).Order(rankingOrder).Find(&scores).Error; errFind != nil {
		return nil, fmt.Errorf("leaderboard: list scores: %w", errFind)
	}
	return scores, nil
}

// Top returns the first n scores in ranking order.
func (s *Service) Top(ctx context.Context, n int) ([]models.Score, error) {
	if n <= 0 {
		return []models.Score{}, nil
	}
	var scores []models.Score
	if errFind := s.db.WithContext(ctx).Order(rankingOrder).Limit(n).Find(&scores).Error; errFind != nil {
		return nil, fmt.Errorf("leaderboard: top scores: %w", errFind)
	}
	return scores, nil
}

// UpdateInput carries a partial admin edit; nil fields are left untouched.
type UpdateInput struct {
	Nickname *string `json:"nickname"`
	Score    *int64  `json:"score"`
	Time     *string `json:"time"`
}

// Update applies the supplied fields to an existing score after revalidation.
// When actorID is set and the record has no author yet, the acting admin is
// recorded as the author.
func (s *Service) Update(ctx context.Context, id uint64, in UpdateInput, actorID *uint64) (*models.Score, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	var entry models.Score
	if errFind := s.db.WithContext(ctx).First(&entry, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("leaderboard: load score: %w", errFind)
	}

	changes := map[string]any{}
	if in.Nickname != nil {
		changes["nickname"] = normalizeNickname(*in.Nickname)
	}
	if in.Score != nil {
		changes["score"] = *in.Score
	}
	if in.Time != nil {
		changes["time"] = *in.Time
	}
	if actorID != nil && entry.CreatedByID == nil {
		changes["created_by_id"] = *actorID
	}
	if len(changes) == 0 {
		return &entry, nil
	}

	if errUpdate := s.db.WithContext(ctx).Model(&entry).Updates(changes).Error; errUpdate != nil {
		return nil, fmt.Errorf("leaderboard: update score: %w", errUpdate)
	}
	return &entry, nil
}

// Delete removes a score by id.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&models.Score{}, id)
	if result.Error != nil {
		return fmt.Errorf("leaderboard: delete score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrScoreNotFound
	}
	return nil
}

// Author resolves the weak created-by reference of a score. It returns
// ErrScoreNotFound when the score id does not resolve and ErrAuthorNotFound
// when the score has no author or the referenced admin no longer exists.
func (s *Service) Author(ctx context.Context, id uint64) (*models.Admin, error) {
	var entry models.Score
	if errFind := s.db.WithContext(ctx).First(&entry, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("leaderboard: load score: %w", errFind)
	}
	if entry.CreatedByID == nil {
		return nil, ErrAuthorNotFound
	}

	var author models.Admin
	if errFind := s.db.WithContext(ctx).First(&author, *entry.CreatedByID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("leaderboard: load author: %w", errFind)
	}
	return &author, nil
}

package ratings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	ratingstore "github.com/m04kA/SMC-SalonService/internal/infra/storage/rating"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubRatingRepo struct {
	activeConfig *domain.RatingConfig
	configErr    error
	deactivated  bool
	inserted     *domain.RatingConfig

	metrics    map[domain.RatingEntity][]*domain.DayMetrics
	metricsErr map[domain.RatingEntity]error
	entities   []domain.RatingEntity
	scores     []*domain.RatingScore
	recalcLogs []*domain.RecalcError
}

func (s *stubRatingRepo) GetActiveConfig(ctx context.Context) (*domain.RatingConfig, error) {
	if s.configErr != nil {
		return nil, s.configErr
	}
	return s.activeConfig, nil
}

func (s *stubRatingRepo) DeactivateActive(ctx context.Context) error {
	s.deactivated = true
	return nil
}

func (s *stubRatingRepo) InsertConfig(ctx context.Context, cfg *domain.RatingConfig) (*domain.RatingConfig, error) {
	saved := *cfg
	saved.ID = 100
	saved.IsActive = true
	s.inserted = &saved
	return &saved, nil
}

func (s *stubRatingRepo) GetDayMetrics(ctx context.Context, entity domain.RatingEntity, from, to time.Time) ([]*domain.DayMetrics, error) {
	if err := s.metricsErr[entity]; err != nil {
		return nil, err
	}
	return s.metrics[entity], nil
}

func (s *stubRatingRepo) UpsertScore(ctx context.Context, score *domain.RatingScore) error {
	s.scores = append(s.scores, score)
	return nil
}

func (s *stubRatingRepo) ListActiveEntities(ctx context.Context) ([]domain.RatingEntity, error) {
	return s.entities, nil
}

func (s *stubRatingRepo) LogRecalcError(ctx context.Context, recalcErr *domain.RecalcError) error {
	s.recalcLogs = append(s.recalcLogs, recalcErr)
	return nil
}

func defaultConfig() *domain.RatingConfig {
	return &domain.RatingConfig{
		ID:                 1,
		ReviewsWeight:      40,
		ProductivityWeight: 30,
		LoyaltyWeight:      20,
		DisciplineWeight:   10,
		WindowDays:         30,
		IsActive:           true,
	}
}

func newTestService(repo *stubRatingRepo, now time.Time) *Service {
	svc := NewService(repo, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return svc
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		req     *SaveConfigRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  &SaveConfigRequest{ReviewsWeight: 40, ProductivityWeight: 30, LoyaltyWeight: 20, DisciplineWeight: 10, WindowDays: 30},
		},
		{
			name:    "weights sum 99",
			req:     &SaveConfigRequest{ReviewsWeight: 40, ProductivityWeight: 30, LoyaltyWeight: 20, DisciplineWeight: 9, WindowDays: 30},
			wantErr: ErrInvalidWeights,
		},
		{
			name:    "weights sum 101",
			req:     &SaveConfigRequest{ReviewsWeight: 40, ProductivityWeight: 30, LoyaltyWeight: 20, DisciplineWeight: 11, WindowDays: 30},
			wantErr: ErrInvalidWeights,
		},
		{
			name:    "negative weight",
			req:     &SaveConfigRequest{ReviewsWeight: 110, ProductivityWeight: -10, LoyaltyWeight: 0, DisciplineWeight: 0, WindowDays: 30},
			wantErr: ErrInvalidWeights,
		},
		{
			name:    "window zero",
			req:     &SaveConfigRequest{ReviewsWeight: 100, WindowDays: 0},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "window too large",
			req:     &SaveConfigRequest{ReviewsWeight: 100, WindowDays: 366},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "recalc days back out of range",
			req:     &SaveConfigRequest{ReviewsWeight: 100, WindowDays: 30, RecalcDaysBack: ptr.Ptr(0)},
			wantErr: ErrInvalidDaysBack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.req)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveConfig_DeactivatesPrevious(t *testing.T) {
	repo := &stubRatingRepo{}
	svc := newTestService(repo, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	result, err := svc.SaveConfig(context.Background(), &SaveConfigRequest{
		ReviewsWeight: 40, ProductivityWeight: 30, LoyaltyWeight: 20, DisciplineWeight: 10, WindowDays: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.deactivated {
		t.Error("previous config was not deactivated")
	}
	if result.Config.ID != 100 {
		t.Errorf("Config.ID = %d, want 100 from insert", result.Config.ID)
	}
	if result.RecalcTriggered {
		t.Error("recalc must not run without RecalcDaysBack")
	}
}

func TestRecalculate_MeanOfWeightedScores(t *testing.T) {
	entity := domain.RatingEntity{Type: domain.RatingEntityStaff, ID: 7}
	repo := &stubRatingRepo{
		metrics: map[domain.RatingEntity][]*domain.DayMetrics{
			entity: {
				{Reviews: 80, Productivity: 60, Loyalty: 100, Discipline: 50},    // 75
				{Reviews: 100, Productivity: 100, Loyalty: 100, Discipline: 100}, // 100
			},
		},
	}
	svc := newTestService(repo, time.Now())

	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	score, err := svc.Recalculate(context.Background(), entity, asOf, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Score != 87.5 {
		t.Errorf("Score = %.2f, want 87.50", score.Score)
	}
	if len(repo.scores) != 1 {
		t.Fatalf("upserted %d scores, want 1", len(repo.scores))
	}
	if !repo.scores[0].MetricDate.Equal(asOf) {
		t.Errorf("MetricDate = %v, want %v", repo.scores[0].MetricDate, asOf)
	}
}

func TestRecalculate_NoMetricsGivesZero(t *testing.T) {
	entity := domain.RatingEntity{Type: domain.RatingEntityBranch, ID: 3}
	repo := &stubRatingRepo{}
	svc := newTestService(repo, time.Now())

	score, err := svc.Recalculate(context.Background(), entity, time.Now(), defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Score != 0 {
		t.Errorf("Score = %.2f, want 0.00", score.Score)
	}
}

func TestRecalculateAll_ContinuesPastEntityFailure(t *testing.T) {
	good := domain.RatingEntity{Type: domain.RatingEntityStaff, ID: 1}
	bad := domain.RatingEntity{Type: domain.RatingEntityStaff, ID: 2}
	repo := &stubRatingRepo{
		activeConfig: defaultConfig(),
		entities:     []domain.RatingEntity{good, bad},
		metricsErr: map[domain.RatingEntity]error{
			bad: errors.New("metrics table unavailable"),
		},
	}
	svc := newTestService(repo, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	result, err := svc.RecalculateAll(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.EntitiesProcessed != 1 {
		t.Errorf("EntitiesProcessed = %d, want 1", result.EntitiesProcessed)
	}
	if len(result.Errors) != 1 || result.Errors[0].Entity != bad {
		t.Errorf("Errors = %+v, want one error for entity %v", result.Errors, bad)
	}
	if len(repo.recalcLogs) != 1 {
		t.Errorf("logged %d recalc errors, want 1", len(repo.recalcLogs))
	}
	// Успешная сущность пересчитана за каждый день диапазона
	if len(repo.scores) != 3 {
		t.Errorf("upserted %d scores for good entity, want 3", len(repo.scores))
	}
}

func TestRecalculateAll_NoActiveConfig(t *testing.T) {
	repo := &stubRatingRepo{configErr: ratingstore.ErrConfigNotFound}
	svc := newTestService(repo, time.Now())

	_, err := svc.RecalculateAll(context.Background(), 7)
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("got %v, want ErrConfigNotFound", err)
	}
}

func TestRecalculateAll_DaysBackValidation(t *testing.T) {
	repo := &stubRatingRepo{activeConfig: defaultConfig()}
	svc := newTestService(repo, time.Now())

	for _, daysBack := range []int{0, 366} {
		_, err := svc.RecalculateAll(context.Background(), daysBack)
		if !errors.Is(err, ErrInvalidDaysBack) {
			t.Errorf("daysBack=%d: got %v, want ErrInvalidDaysBack", daysBack, err)
		}
	}
}

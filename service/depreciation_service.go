package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"

	"depreciation-calculator/domain"
	"depreciation-calculator/metrics"
	"depreciation-calculator/repository"
)

type DepreciationService struct {
	cache repository.CacheRepository
	ttl   time.Duration
}

// NewDepreciationService creates a service that memoizes schedules in cache.
// A nil cache disables memoization.
func NewDepreciationService(cache repository.CacheRepository, ttl time.Duration) *DepreciationService {
	return &DepreciationService{cache: cache, ttl: ttl}
}

// Calculate validates the input and returns its schedule.
func (s *DepreciationService) Calculate(
	ctx context.Context,
	input domain.DepreciationInput,
) (domain.Schedule, error) {

	req, err := NewRequest(input)
	if err != nil {
		metrics.RecordInvalid()
		return domain.Schedule{}, err
	}

	key := cacheKey(req)
	if schedule, ok := s.lookup(ctx, key); ok {
		return schedule, nil
	}

	schedule, err := Compute(req)
	if err != nil {
		metrics.RecordInvalid()
		return domain.Schedule{}, err
	}
	metrics.RecordCalculation(req.Method.Code().Slug())

	// Cache writes are not critical.
	s.store(ctx, key, schedule)

	return schedule, nil
}

// Methods returns the method catalog in selector order.
func (s *DepreciationService) Methods() []domain.MethodInfo {
	methods := make([]domain.MethodInfo, 0, len(domain.AllMethods))
	for _, code := range domain.AllMethods {
		methods = append(methods, domain.MethodInfo{
			Code:          code,
			Slug:          code.Slug(),
			Name:          code.String(),
			RequiresUnits: code.RequiresUnits(),
		})
	}
	return methods
}

func (s *DepreciationService) lookup(ctx context.Context, key string) (domain.Schedule, bool) {
	if s.cache == nil {
		return domain.Schedule{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		return domain.Schedule{}, false
	}
	var schedule domain.Schedule
	if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
		slog.WarnContext(ctx, "discarding unreadable cached schedule", "key", key, "err", err)
		return domain.Schedule{}, false
	}
	return schedule, true
}

func (s *DepreciationService) store(ctx context.Context, key string, schedule domain.Schedule) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(schedule)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode schedule for cache", "err", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
		slog.WarnContext(ctx, "failed to cache schedule", "key", key, "err", err)
	}
}

type cacheKeyPayload struct {
	Method        domain.MethodCode `json:"m"`
	Cost          float64           `json:"c"`
	Salvage       float64           `json:"s"`
	Life          int               `json:"l"`
	UnitsProduced float64           `json:"u,omitempty"`
	TotalUnits    float64           `json:"t,omitempty"`
}

// cacheKey hashes the validated request, so unit figures sent along with a
// method that ignores them do not produce distinct keys.
func cacheKey(req domain.DepreciationRequest) string {
	payload := cacheKeyPayload{
		Method:  req.Method.Code(),
		Cost:    req.Cost,
		Salvage: req.Salvage,
		Life:    req.Life,
	}
	if uop, ok := req.Method.(domain.UnitsOfProductionMethod); ok {
		payload.UnitsProduced = uop.UnitsProduced
		payload.TotalUnits = uop.TotalUnits
	}
	// Marshal of this flat struct cannot fail.
	raw, _ := json.Marshal(payload)
	return fmt.Sprintf("%s%016x", cacheKeyPrefix, xxhash.Sum64(raw))
}

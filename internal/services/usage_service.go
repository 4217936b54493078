package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// PlanLimits caps a subscription plan's resource use. Zero means
// unlimited.
type PlanLimits struct {
	MaxExtractions int
	MaxJobs        int
}

var planLimits = map[string]PlanLimits{
	"free":      {MaxExtractions: 15, MaxJobs: 10},
	"pro":       {MaxExtractions: 100, MaxJobs: 100},
	"unlimited": {},
}

// LimitsFor returns the limits for a plan name, falling back to the free
// plan for anything unrecognized.
func LimitsFor(plan string) PlanLimits {
	if l, ok := planLimits[strings.ToLower(plan)]; ok {
		return l
	}
	return planLimits["free"]
}

// UsageService meters LLM extractions per user per calendar month. The
// counter lives in Redis with a TTL past month end, so resets are free.
// A nil client or an unreachable Redis fails open: extraction
// availability wins over metering accuracy.
type UsageService struct {
	rdb *redis.Client
}

func NewUsageService(rdb *redis.Client) *UsageService {
	return &UsageService{rdb: rdb}
}

func (s *UsageService) monthKey(userID uint) string {
	return fmt.Sprintf("extractions:%d:%s", userID, time.Now().UTC().Format("2006-01"))
}

// Allow reports whether the user may run another extraction this month.
func (s *UsageService) Allow(ctx context.Context, userID uint, plan string) bool {
	limits := LimitsFor(plan)
	if limits.MaxExtractions == 0 || s.rdb == nil {
		return true
	}
	count, err := s.rdb.Get(ctx, s.monthKey(userID)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("extraction usage lookup failed: %v; allowing", err)
		return true
	}
	return count < limits.MaxExtractions
}

// Record counts one successful extraction. Called only after the
// pipeline produced a result, so refused or failed requests are free.
func (s *UsageService) Record(ctx context.Context, userID uint) {
	if s.rdb == nil {
		return
	}
	key := s.monthKey(userID)
	if err := s.rdb.Incr(ctx, key).Err(); err != nil {
		log.Printf("extraction usage increment failed: %v", err)
		return
	}
	// Outlives the month it belongs to, then expires on its own.
	s.rdb.Expire(ctx, key, 35*24*time.Hour)
}

package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/linesmerrill/scammer-blacklist/models"
)

// ScammerLister lists every reported profile of the registry
type ScammerLister interface {
	ListScammers(ctx context.Context) ([]models.ScammerProfile, error)
}

// RecentScammers holds the latest snapshot of recently reported profiles
type RecentScammers struct {
	mu        sync.RWMutex
	profiles  []models.ScammerProfile
	updatedAt time.Time
}

// Get returns the current snapshot
func (r *RecentScammers) Get() []models.ScammerProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles
}

// lastUpdate returns when the snapshot was last replaced
func (r *RecentScammers) lastUpdate() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updatedAt
}

// Set replaces the snapshot
func (r *RecentScammers) Set(profiles []models.ScammerProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = profiles
	r.updatedAt = time.Now()
}

// Scheduler refreshes the recently reported profiles shown on the home page
type Scheduler struct {
	cron     *cron.Cron
	API      ScammerLister
	Recent   *RecentScammers
	Limit    int
	Timeout  time.Duration
	schedule string
}

// NewScheduler creates a scheduler running the refresh on schedule, e.g. "@every 5m"
func NewScheduler(api ScammerLister, recent *RecentScammers, schedule string, limit int) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		API:      api,
		Recent:   recent,
		Limit:    limit,
		Timeout:  10 * time.Second,
		schedule: schedule,
	}
}

// Start registers the refresh job, runs it once and starts the cron
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RefreshRecent); err != nil {
		zap.S().Errorw("failed to register recent scammers job", "schedule", s.schedule, "error", err)
		return err
	}
	go s.RefreshRecent()
	s.cron.Start()
	zap.S().Infow("recent scammers scheduler started", "schedule", s.schedule)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("recent scammers scheduler stopped")
}

// RefreshRecent replaces the snapshot with the newest profiles. A failed
// refresh keeps the previous snapshot.
func (s *Scheduler) RefreshRecent() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	profiles, err := s.API.ListScammers(ctx)
	if err != nil {
		zap.S().Warnw("failed to refresh recent scammers", "error", err)
		return
	}
	s.Recent.Set(Newest(profiles, s.Limit))
}

// Newest returns up to limit profiles ordered by their latest report, newest first
func Newest(profiles []models.ScammerProfile, limit int) []models.ScammerProfile {
	out := make([]models.ScammerProfile, 0, len(profiles))
	for _, p := range profiles {
		if len(p.Reports) > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return latest(out[i]).After(latest(out[j]))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func latest(p models.ScammerProfile) time.Time {
	var t time.Time
	for _, r := range p.Reports {
		if r.CreatedAt.After(t) {
			t = r.CreatedAt
		}
	}
	return t
}

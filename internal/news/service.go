// Package news orchestrates a request: resolve the target date, consult the
// daily cache, and on a miss search and rank fresh coverage.
package news

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/hindsight-hq/past-news/internal/cache"
	"github.com/hindsight-hq/past-news/internal/dates"
	"github.com/hindsight-hq/past-news/internal/domain"
	"github.com/hindsight-hq/past-news/internal/logger"
	"github.com/hindsight-hq/past-news/internal/selector"
)

// Searcher is the external article search capability.
type Searcher interface {
	Search(ctx context.Context, keyword string, day time.Time) ([]domain.Article, error)
}

// Service resolves options into results. The clock and randomness source are
// injected so date logic stays deterministic in tests.
type Service struct {
	search  Searcher
	cache   *cache.Daily
	keyword string
	now     func() time.Time
	rngMu   sync.Mutex
	rng     *rand.Rand
	log     logger.Logger
}

// New wires a Service. Nil now, rng, store, and log fall back to the wall
// clock, a time-seeded generator, a fresh cache, and a nop logger.
func New(search Searcher, store *cache.Daily, keyword string, now func() time.Time, rng *rand.Rand, log logger.Logger) *Service {
	if store == nil {
		store = cache.NewDaily()
	}
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		search:  search,
		cache:   store,
		keyword: keyword,
		now:     now,
		rng:     rng,
		log:     log,
	}
}

// Fetch returns the result for opt. Cacheable options are served from the
// daily cache when present; random always resolves fresh and is never
// stored. Errors from date resolution or the search backend propagate
// unchanged, with no retries.
func (s *Service) Fetch(ctx context.Context, opt domain.Option) (domain.Result, error) {
	today := dates.Day(s.now())

	if opt.Cacheable() {
		if res, ok := s.cache.Get(today, opt); ok {
			s.log.DebugObj("serving cached result", "cache_hit", map[string]any{
				"option": string(opt),
				"day":    today.Format("2006-01-02"),
			})
			return res, nil
		}
	}

	// rand.Rand is not safe for concurrent use.
	s.rngMu.Lock()
	target, err := dates.Resolve(opt, today, s.rng)
	s.rngMu.Unlock()
	if err != nil {
		return domain.Result{}, err
	}

	candidates, err := s.search.Search(ctx, s.keyword, target)
	if err != nil {
		return domain.Result{}, err
	}

	res := selector.Select(candidates, s.keyword, target)
	if opt.Cacheable() {
		s.cache.Put(today, opt, res)
	}

	s.log.InfoObj("coverage resolved", "fetch_done", map[string]any{
		"option":     string(opt),
		"target":     target.Format("2006-01-02"),
		"candidates": len(candidates),
		"quiet":      res.Quiet(),
	})
	return res, nil
}

package source

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jask/showcase/internal/carousel"
)

// Fallback serves the primary source, then the last list the primary
// returned successfully, then the static assets.
type Fallback struct {
	Primary Source
	Static  Source
	Log     *zap.Logger

	mu       sync.Mutex
	lastGood map[string][]carousel.Item
}

func (s *Fallback) Load(ctx context.Context, placement string) ([]carousel.Item, error) {
	items, err := s.Primary.Load(ctx, placement)
	if err == nil && len(items) > 0 {
		s.remember(placement, items)
		return items, nil
	}
	if err != nil {
		s.logger().Warn("item source failed; using fallback", zap.String("placement", placement), zap.Error(err))
		if cached := s.cached(placement); len(cached) > 0 {
			return cached, nil
		}
	}
	if s.Static != nil {
		if static, serr := s.Static.Load(ctx, placement); serr == nil && len(static) > 0 {
			return static, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, ErrNoItems
}

func (s *Fallback) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Fallback) remember(placement string, items []carousel.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastGood == nil {
		s.lastGood = map[string][]carousel.Item{}
	}
	s.lastGood[placement] = append([]carousel.Item(nil), items...)
}

func (s *Fallback) cached(placement string) []carousel.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]carousel.Item(nil), s.lastGood[placement]...)
}

package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/GuotongWu/CookNote/internal/config"
	"github.com/GuotongWu/CookNote/internal/grouping"
)

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source for creation times and grouping.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the random recipe ID source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithOrphanPolicy sets what DeleteMember does to recipe likes.
func WithOrphanPolicy(p config.OrphanPolicy) Option {
	return func(s *Service) { s.orphans = p }
}

// WithGrouping passes options through to grouping.Sections.
func WithGrouping(opts ...grouping.Option) Option {
	return func(s *Service) { s.groupOpts = append(s.groupOpts, opts...) }
}

func defaultOptions(s *Service) {
	s.now = time.Now
	s.newID = uuid.NewString
	s.orphans = config.TolerateOrphans
}

// SaveOption adjusts a single SaveRecipe call.
type SaveOption func(*saveOptions)

type saveOptions struct {
	override *string
}

// WithCostOverride saves the recipe with the given manual cost text. An empty
// string clears any override so the automatic sum is stored.
func WithCostOverride(text string) SaveOption {
	return func(o *saveOptions) { o.override = &text }
}

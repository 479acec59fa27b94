package songs

import (
	"context"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/justestif/go-song-board/internal/cache"
)

// cacheNamespace is the shared cache namespace both surfaces read.
const cacheNamespace = "songs"

// Service orchestrates cache lookup, aggregation and cache write-back.
type Service struct {
	engine         *Engine
	cache          *cache.Accessor[BaseResult]
	logger         *log.Logger
	location       *time.Location
	publicDefaults Defaults
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLocation sets the zone used to format play times.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithPublicDefaults sets the public surface's defaults.
func WithPublicDefaults(d Defaults) Option {
	return func(s *Service) {
		s.publicDefaults = d
	}
}

// NewService creates a Service over catalog, caching base results in store.
func NewService(catalog Catalog, store cache.Store, codec *cache.Codec, opts ...Option) *Service {
	s := &Service{
		engine:         NewEngine(catalog),
		logger:         log.Default(),
		location:       time.Local,
		publicDefaults: PublicDefaults(DefaultLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = cache.NewAccessor[BaseResult](store, cacheNamespace, codec, s.logger)
	return s
}

// Internal returns the internal read surface.
func (s *Service) Internal() *Facade {
	return &Facade{service: s, defaults: InternalDefaults(), shape: internalView}
}

// Public returns the public read surface.
func (s *Service) Public() *Facade {
	return &Facade{service: s, defaults: s.publicDefaults, shape: publicView}
}

// load serves p from the cache, or aggregates and caches it on a miss.
//
// A hit only re-slices the cached songs by page and limit; grade, played and
// scheduled are not reapplied. A miss applies the scheduled filter to the
// freshly aggregated page after caching it, so totals count songs before
// that filter.
func (s *Service) load(ctx context.Context, p Params) ([]Record, Pagination, error) {
	if _, ok := CallerFrom(ctx); !ok {
		return nil, Pagination{}, ErrUnauthenticated
	}

	key := CacheKey(p)
	base, hit, err := s.cache.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed, treating as miss", "key", key, "err", err)
		hit = false
	}
	if hit {
		return slicePage(base.Songs, p.Page, p.Limit), newPagination(p, base.Total), nil
	}

	base, err = s.engine.Aggregate(ctx, p)
	if err != nil {
		return nil, Pagination{}, err
	}
	if err := s.cache.Store(ctx, key, base); err != nil {
		s.logger.Warn("cache write failed", "key", key, "err", err)
	}
	return filterScheduled(base.Songs, p.Scheduled), newPagination(p, base.Total), nil
}

// Facade is one read surface: its own defaults and output shape over the
// shared cache and pipeline.
type Facade struct {
	service  *Service
	defaults Defaults
	shape    func(Record, *time.Location) SongView
}

// Defaults returns the surface's parameter defaults.
func (f *Facade) Defaults() Defaults {
	return f.defaults
}

// List parses q permissively and returns the listing.
func (f *Facade) List(ctx context.Context, q url.Values) (*Response, error) {
	return f.Query(ctx, ParseParams(q, f.defaults))
}

// Query returns the listing for p. Out-of-range values fall back to the
// surface defaults. Failures are always *StatusError.
func (f *Facade) Query(ctx context.Context, p Params) (*Response, error) {
	records, pagination, err := f.service.load(ctx, p.Normalize(f.defaults))
	if err != nil {
		return nil, AsStatusError(err)
	}

	views := make([]SongView, len(records))
	for i, r := range records {
		views[i] = f.shape(r, f.service.location)
	}
	return &Response{
		Success: true,
		Data: ListData{
			Songs:      views,
			Pagination: pagination,
		},
	}, nil
}

// slicePage returns the page-th window of limit records.
func slicePage(records []Record, page, limit int) []Record {
	start := (page - 1) * limit
	if start >= len(records) {
		return []Record{}
	}
	end := min(start+limit, len(records))
	return records[start:end]
}

package resolve

import (
	"context"
	"log/slog"

	"kotoba/internal/logging"
)

// FetchFunc performs one live lookup for a term. An empty value with a nil
// error is treated as "the service answered but has nothing", same as an
// error.
type FetchFunc func(ctx context.Context) (string, error)

// Result is the outcome of a resolution.
type Result struct {
	// Value is the resolved payload, empty when Known is false.
	Value string
	// Known reports whether a usable value was found anywhere.
	Known bool
	// Fetched reports whether a live fetch was attempted for this call.
	// Callers use it to decide whether rate limiting applies.
	Fetched bool
}

// Resolver answers lookups for one source namespace using the layered
// curated / cached / fetched policy.
type Resolver struct {
	source  string
	store   *Store
	curated map[string]string
	offline bool
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCurated installs a curated table consulted before the cache. Curated
// hits never touch the store.
func WithCurated(table map[string]string) Option {
	return func(r *Resolver) { r.curated = table }
}

// WithOffline disables live fetching. Offline misses are reported unknown but
// never persisted, so a later online run still gets its one fetch attempt.
func WithOffline(offline bool) Option {
	return func(r *Resolver) { r.offline = offline }
}

// WithLogger sets the logger used for cache degradation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// New creates a resolver for the given source namespace backed by store.
func New(source string, store *Store, opts ...Option) *Resolver {
	r := &Resolver{
		source: source,
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "resolve/"+source)
	return r
}

// Source returns the namespace this resolver serves.
func (r *Resolver) Source() string { return r.source }

// Resolve answers a lookup for term. Layers are consulted in order: curated
// table, persisted cache (including the unknown sentinel), then a live fetch
// unless offline. Fetch outcomes, success or failure, are persisted so each
// key costs at most one live attempt. Store failures degrade to fetch-only
// operation and are never returned to the caller.
func (r *Resolver) Resolve(ctx context.Context, term string, fetch FetchFunc) Result {
	if value, ok := r.curated[term]; ok {
		return Result{Value: value, Known: true}
	}

	if entry, found, err := r.store.Get(ctx, r.source, term); err != nil {
		r.logger.WarnContext(ctx, "cache read failed, falling through to fetch",
			logging.String(logging.FieldSource, r.source),
			logging.String(logging.FieldWord, term),
			logging.Error(err))
	} else if found {
		return Result{Value: entry.Value, Known: entry.Known()}
	}

	if r.offline {
		return Result{}
	}

	value, err := fetch(ctx)
	if err != nil || value == "" {
		if err != nil {
			r.logger.WarnContext(ctx, "fetch failed, recording unknown",
				logging.String(logging.FieldSource, r.source),
				logging.String(logging.FieldWord, term),
				logging.Error(err))
		}
		r.persist(ctx, Entry{Source: r.source, Term: term, Status: StatusUnknown})
		return Result{Fetched: true}
	}

	r.persist(ctx, Entry{Source: r.source, Term: term, Status: StatusResolved, Value: value})
	return Result{Value: value, Known: true, Fetched: true}
}

func (r *Resolver) persist(ctx context.Context, entry Entry) {
	if err := r.store.Put(ctx, entry); err != nil {
		r.logger.WarnContext(ctx, "cache write failed, continuing without persistence",
			logging.String(logging.FieldSource, r.source),
			logging.String(logging.FieldWord, entry.Term),
			logging.Error(err))
	}
}

package systemid

import (
	"log/slog"
	"runtime"
	"slices"
	"sync"
)

// Diagnostics describes the outcome of the last resolution.
// Use [Resolver.Diagnostics] to retrieve it after calling [Resolver.Resolve].
type Diagnostics struct {
	Errors    map[StrategyName]error // strategies that yielded no result, with the reason
	Attempted []StrategyName         // strategies invoked, in priority order
	Selected  StrategyName           // strategy whose value was returned, empty if none
}

// Resolver walks a platform-specific, priority-ordered chain of strategies
// and returns the first identifier one of them produces.
// After the first successful call to Resolve the result is cached until a
// filter changes. Resolver methods are safe for concurrent use.
type Resolver struct {
	logger        *slog.Logger
	diagnostics   *Diagnostics
	cachedID      ID
	excluded      map[StrategyName]struct{}
	strategies    []strategy
	minConfidence Confidence
	mu            sync.Mutex
}

// New creates a Resolver for the strategies compiled in for the running
// platform, in their fixed priority order.
func New() *Resolver {
	return &Resolver{
		strategies:    platformStrategies(),
		minConfidence: ConfidenceLow,
	}
}

// WithLogger sets an optional [*slog.Logger] for observability.
// When set, the resolver logs each strategy attempt and its outcome.
// A nil logger (the default) disables all logging.
func (r *Resolver) WithLogger(logger *slog.Logger) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger = logger

	return r
}

// WithMinConfidence skips strategies whose confidence is below c.
// Use [ConfidenceHigh] to only accept values expected to last as long as the
// OS installation. A previously resolved identifier is discarded.
func (r *Resolver) WithMinConfidence(c Confidence) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.minConfidence = c
	r.reset()

	return r
}

// WithoutStrategies removes the named strategies from the chain.
// A previously resolved identifier is discarded.
func (r *Resolver) WithoutStrategies(names ...StrategyName) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.excluded == nil {
		r.excluded = make(map[StrategyName]struct{}, len(names))
	}
	for _, name := range names {
		r.excluded[name] = struct{}{}
	}
	r.reset()

	return r
}

// withStrategies replaces the compiled-in chain.
func (r *Resolver) withStrategies(strategies ...strategy) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.strategies = strategies
	r.reset()

	return r
}

// reset drops the cached identifier and diagnostics so the next Resolve
// walks the reconfigured chain. Callers hold mu.
func (r *Resolver) reset() {
	r.cachedID = ID{}
	r.diagnostics = nil
}

// Chain returns the effective priority table: the compiled-in strategies
// left after applying the configured filters, in the order they are tried.
func (r *Resolver) Chain() []StrategyInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	chain := r.chain()
	infos := make([]StrategyInfo, 0, len(chain))
	for _, s := range chain {
		infos = append(infos, s.info())
	}

	return infos
}

func (r *Resolver) chain() []strategy {
	return slices.DeleteFunc(slices.Clone(r.strategies), func(s strategy) bool {
		if s.confidence < r.minConfidence {
			return true
		}
		_, skip := r.excluded[s.name]

		return skip
	})
}

// Resolve returns the identifier of the first strategy in the chain that
// produces one, or [ErrUnavailable] when every strategy fails. Strategies
// are invoked at most once per resolution and their values are never
// combined. A resolved identifier is cached, so later calls return the same
// value; a failed resolution is retried on the next call.
// This method is safe for concurrent use.
func (r *Resolver) Resolve() (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.cachedID.IsZero() {
		r.logDebug("returning cached machine identity")

		return r.cachedID, nil
	}

	chain := r.chain()
	r.logInfo("resolving machine identity",
		"platform", runtime.GOOS,
		"strategies", len(chain),
	)

	diag := &Diagnostics{
		Errors: make(map[StrategyName]error),
	}
	r.diagnostics = diag

	for _, s := range chain {
		diag.Attempted = append(diag.Attempted, s.name)

		id, err := s.acquire()
		if err == nil && id.IsZero() {
			err = ErrMalformed
		}
		if err != nil {
			diag.Errors[s.name] = &StrategyError{Strategy: s.name, Err: err}
			r.logDebug("strategy yielded no result", "strategy", s.name, "error", err)

			continue
		}

		diag.Selected = s.name
		r.cachedID = id
		r.logInfo("machine identity resolved",
			"strategy", s.name,
			"confidence", id.Confidence(),
			"length", id.Len(),
		)
		r.logDebug("machine identity value", "strategy", s.name, "value", id.String())

		return id, nil
	}

	r.logWarn("no strategy produced a machine identity", "errors", len(diag.Errors))

	return ID{}, ErrUnavailable
}

// Diagnostics returns the per-strategy outcomes of the resolution.
// Returns nil if [Resolver.Resolve] has not been called yet.
func (r *Resolver) Diagnostics() *Diagnostics {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.diagnostics
}

// Resolve resolves the current machine identity with a default [Resolver].
func Resolve() (ID, error) {
	return New().Resolve()
}

// logDebug logs at debug level if a logger is configured.
func (r *Resolver) logDebug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

// logInfo logs at info level if a logger is configured.
func (r *Resolver) logInfo(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

// logWarn logs at warn level if a logger is configured.
func (r *Resolver) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

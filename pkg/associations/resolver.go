package associations

import (
	"iter"
	"slices"

	"github.com/arthur-debert/xdgmime/pkg/desktop"
	"github.com/arthur-debert/xdgmime/pkg/mimetype"
)

// TypeGraph is the part of the type graph the resolver walks
type TypeGraph interface {
	Unalias(t mimetype.TypeName) mimetype.TypeName
	SubclassesOf(t mimetype.TypeName) []mimetype.TypeName
}

// Resolver orders the applications for a type. It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	store   *Store
	graph   TypeGraph
	locator desktop.Locator
	action  Action
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithAction restricts the caches consulted. The default is ActionAll.
func WithAction(action Action) ResolverOption {
	return func(r *Resolver) {
		r.action = action
	}
}

// NewResolver creates a resolver. An application is only returned when
// locator can find its desktop entry.
func NewResolver(store *Store, graph TypeGraph, locator desktop.Locator, opts ...ResolverOption) *Resolver {
	r := &Resolver{store: store, graph: graph, locator: locator, action: ActionAll}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BestApplications yields application IDs for t, best first. Each call
// returns a fresh sequence; stopping the range stops the walk.
func (r *Resolver) BestApplications(t mimetype.TypeName) iter.Seq[string] {
	return func(yield func(string) bool) {
		r.walk(t, map[mimetype.TypeName]bool{}, yield)
	}
}

// BestApplication returns the first application BestApplications yields.
func (r *Resolver) BestApplication(t mimetype.TypeName) (string, bool) {
	for app := range r.BestApplications(t) {
		return app, true
	}
	return "", false
}

// Applications collects BestApplications into a slice
func (r *Resolver) Applications(t mimetype.TypeName) []string {
	return slices.Collect(r.BestApplications(t))
}

// DefaultApplication returns the first discoverable entry of the default
// list for t.
func (r *Resolver) DefaultApplication(t mimetype.TypeName) (string, bool) {
	return r.defaultFor(r.graph.Unalias(t))
}

func (r *Resolver) defaultFor(t mimetype.TypeName) (string, bool) {
	for _, app := range r.store.DefaultApplications(t) {
		if r.discoverable(app) {
			return app, true
		}
	}
	return "", false
}

func (r *Resolver) discoverable(app string) bool {
	_, ok := r.locator.Locate(app)
	return ok
}

// walk yields the applications for t. visited guards against subclass
// cycles. It returns false once yield asked to stop.
func (r *Resolver) walk(t mimetype.TypeName, visited map[mimetype.TypeName]bool, yield func(string) bool) bool {
	t = r.graph.Unalias(t)
	if visited[t] {
		return true
	}
	visited[t] = true

	seen := make(map[string]bool)
	emit := func(app string) bool {
		if seen[app] || !r.discoverable(app) {
			return true
		}
		seen[app] = true
		return yield(app)
	}

	if app, ok := r.defaultFor(t); ok {
		if !emit(app) {
			return false
		}
	}
	for _, app := range r.store.AddedApplications(t) {
		if !emit(app) {
			return false
		}
	}
	for _, app := range r.store.CachedApplications(t, r.action) {
		if r.store.IsRemoved(t, app) {
			continue
		}
		if !emit(app) {
			return false
		}
	}
	if len(seen) > 0 {
		return true
	}

	for _, parent := range r.graph.SubclassesOf(t) {
		if app, ok := r.first(parent, visited); ok {
			return emit(app)
		}
	}
	return true
}

// first returns the first application of t's own walk.
func (r *Resolver) first(t mimetype.TypeName, visited map[mimetype.TypeName]bool) (string, bool) {
	var found string
	r.walk(t, visited, func(app string) bool {
		found = app
		return false
	})
	return found, found != ""
}

package opendata

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Call is one named unit of a fan-out.
type Call struct {
	Key   string
	Fetch func(ctx context.Context) Result
}

// Results holds fan-out outcomes by key.
type Results struct {
	mu      sync.RWMutex
	results map[string]Result
}

// NewResults returns an empty result set.
func NewResults() *Results {
	return &Results{results: make(map[string]Result)}
}

// Set records the outcome for key.
func (r *Results) Set(key string, res Result) {
	r.mu.Lock()
	r.results[key] = res
	r.mu.Unlock()
}

// Result returns the raw outcome for key. Unknown keys read as empty.
func (r *Results) Result(key string) Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.results[key]
}

// Get returns the rows for key, empty when the call failed or never ran.
func (r *Results) Get(key string) []Record {
	return r.Result(key).Rows()
}

// First returns the first row for key.
func (r *Results) First(key string) (Record, bool) {
	rows := r.Get(key)
	if len(rows) == 0 {
		return nil, false
	}
	return rows[0], true
}

// Err returns the failure recorded for key, if any.
func (r *Results) Err(key string) error {
	return r.Result(key).Err
}

// Failed lists the keys whose call failed.
func (r *Results) Failed() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var keys []string
	for k, res := range r.results {
		if res.Err != nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// FetchAll runs every call concurrently and waits for all of them. A call
// never cancels its siblings: failures are stored in its Result. limit <= 0
// runs the full width at once.
func FetchAll(ctx context.Context, limit int, calls []Call) *Results {
	results := NewResults()

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, call := range calls {
		g.Go(func() error {
			results.Set(call.Key, runCall(ctx, call))
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func runCall(ctx context.Context, call Call) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failed(panicError{key: call.Key, value: r})
		}
	}()
	if call.Fetch == nil {
		return Result{Records: []Record{}}
	}
	return call.Fetch(ctx)
}

type panicError struct {
	key   string
	value any
}

func (e panicError) Error() string {
	return "call " + e.key + " panicked"
}

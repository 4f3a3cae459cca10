// Package dockertest provides a recording fake of the docker client so
// the staging pipeline can be tested without a daemon or registry.
package dockertest

import (
	"os"

	"github.com/felixgeelhaar/composetrust/internal/registry"
)

// Call records one client invocation along with the trust and registry
// environment observed at call time, so scope discipline is assertable.
type Call struct {
	Op       string
	Args     []string
	Trust    string
	Registry string
}

// FakeClient implements docker.Client in memory
type FakeClient struct {
	Calls []Call

	// Existing marks references reported present by ImageExists
	Existing map[string]bool

	// PullErr fails Pull for specific references
	PullErr map[string]error

	TagErr     error
	PushErr    error
	ComposeErr error
}

// NewFakeClient creates an empty fake
func NewFakeClient() *FakeClient {
	return &FakeClient{
		Existing: make(map[string]bool),
		PullErr:  make(map[string]error),
	}
}

func (f *FakeClient) record(op string, args ...string) {
	f.Calls = append(f.Calls, Call{
		Op:       op,
		Args:     args,
		Trust:    os.Getenv(registry.TrustVar),
		Registry: os.Getenv(registry.RegistryVar),
	})
}

// Pull records the call and fails when configured to
func (f *FakeClient) Pull(ref string) error {
	f.record("pull", ref)
	return f.PullErr[ref]
}

// Tag records the call; a successful tag makes the target exist
func (f *FakeClient) Tag(source, target string) error {
	f.record("tag", source, target)
	if f.TagErr != nil {
		return f.TagErr
	}
	f.Existing[target] = true
	return nil
}

// Push records the call
func (f *FakeClient) Push(ref string) error {
	f.record("push", ref)
	return f.PushErr
}

// ImageExists records the call and answers from Existing
func (f *FakeClient) ImageExists(ref string) bool {
	f.record("inspect", ref)
	return f.Existing[ref]
}

// Compose records the delegated argument vector
func (f *FakeClient) Compose(args ...string) error {
	f.record("compose", args...)
	return f.ComposeErr
}

// Ops returns the recorded operation names in order, filtered to the
// given ops when any are named.
func (f *FakeClient) Ops(filter ...string) []string {
	keep := func(op string) bool {
		if len(filter) == 0 {
			return true
		}
		for _, want := range filter {
			if op == want {
				return true
			}
		}
		return false
	}

	var ops []string
	for _, call := range f.Calls {
		if keep(call.Op) {
			ops = append(ops, call.Op)
		}
	}
	return ops
}

package registry

import (
	"fmt"
	"os"
	"sort"

	"github.com/google/go-containerregistry/pkg/name"

	"github.com/felixgeelhaar/composetrust/internal/envscope"
	"github.com/felixgeelhaar/composetrust/internal/errors"
)

// Resolved holds the two concrete forms of a templated image reference
type Resolved struct {
	// Remote is the reference in the trusted upstream registry
	Remote string

	// Local is the reference in the local staging registry
	Local string
}

// Resolver expands registry-prefix placeholders in image references.
// Upstream is the caller's original registry prefix, captured before the
// router overrides the variable for delegation.
type Resolver struct {
	Upstream string
}

// NewResolver captures the current registry-prefix environment as the
// upstream value. Call it before any registry scope is opened.
func NewResolver() *Resolver {
	return &Resolver{Upstream: os.Getenv(RegistryVar)}
}

// ExpandImageReferences resolves each templated reference twice: under
// the upstream scope and under the local-registry scope. Both resolutions
// of the whole batch happen under a single scope activation each,
// remote first, so nested scopes never interfere. Resolved references
// are validated before being returned.
func (r *Resolver) ExpandImageReferences(templates []string) (map[string]Resolved, error) {
	resolved := make(map[string]Resolved, len(templates))

	err := envscope.With(RegistryVar, NormalizePrefix(r.Upstream), func() error {
		for _, tmpl := range templates {
			entry := resolved[tmpl]
			entry.Remote = os.ExpandEnv(tmpl)
			resolved[tmpl] = entry
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = envscope.With(RegistryVar, LocalPrefix(), func() error {
		for _, tmpl := range templates {
			entry := resolved[tmpl]
			entry.Local = os.ExpandEnv(tmpl)
			resolved[tmpl] = entry
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for tmpl, entry := range resolved {
		if _, err := name.ParseReference(entry.Remote); err != nil {
			return nil, errors.Wrap(errors.ErrCodeImageRefInvalid,
				fmt.Sprintf("invalid image reference %q (from %q)", entry.Remote, tmpl), err)
		}
		if _, err := name.ParseReference(entry.Local); err != nil {
			return nil, errors.Wrap(errors.ErrCodeImageRefInvalid,
				fmt.Sprintf("invalid image reference %q (from %q)", entry.Local, tmpl), err)
		}
	}

	return resolved, nil
}

// SortedValues returns the resolved entries ordered by remote reference,
// for deterministic staging order.
func SortedValues(resolved map[string]Resolved) []Resolved {
	values := make([]Resolved, 0, len(resolved))
	for _, entry := range resolved {
		values = append(values, entry)
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].Remote < values[j].Remote
	})
	return values
}

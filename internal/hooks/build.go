package hooks

import (
	"sort"

	"github.com/felixgeelhaar/composetrust/internal/dockerfile"
	"github.com/felixgeelhaar/composetrust/internal/registry"
)

// buildPre stages the verified parent images of every build context
// relevant to this invocation, then redirects build-time base-image
// references to the local registry through a build argument.
func (h *Hooks) buildPre(args []string) ([]string, error) {
	if helpRequested(args) {
		return nil, nil
	}

	manifest, err := h.LoadManifest()
	if err != nil {
		return nil, err
	}

	contexts := manifest.BuildContexts(positional(args))

	// Union the parent images across contexts, in deterministic order.
	names := make([]string, 0, len(contexts))
	for name := range contexts {
		names = append(names, name)
	}
	sort.Strings(names)

	var parents []string
	seen := make(map[string]bool)
	for _, name := range names {
		images, err := dockerfile.ParentImages(contexts[name])
		if err != nil {
			return nil, err
		}
		for _, image := range images {
			if seen[image] {
				continue
			}
			seen[image] = true
			parents = append(parents, image)
		}
	}

	resolved, err := h.Resolver.ExpandImageReferences(parents)
	if err != nil {
		return nil, err
	}

	// The stager owns the incremental skip, so each image is inspected
	// exactly once; --pull forces a re-stage of present images too.
	refs := registry.SortedValues(resolved)
	if err := h.Stager.PopulateLocalFromRemote(refs, hasFlag(args, "--pull")); err != nil {
		return nil, err
	}

	return []string{"--build-arg", registry.RegistryVar + "=" + registry.LocalPrefix()}, nil
}

package hooks

import (
	"fmt"

	"github.com/felixgeelhaar/composetrust/internal/envscope"
	"github.com/felixgeelhaar/composetrust/internal/registry"
)

const pushUsage = `Usage: composetrust push [--help]

Signs and pushes the manifest's declared images to the trusted remote
registry. docker-compose's own push is never invoked; each local image is
tagged under its remote reference and pushed with content trust enabled,
so the docker client signs it.`

// push fully replaces the docker-compose push action
func (h *Hooks) push(args []string) error {
	if helpRequested(args) {
		fmt.Fprintln(h.Out, pushUsage)
		return nil
	}

	manifest, err := h.LoadManifest()
	if err != nil {
		return err
	}

	resolved, err := h.Resolver.ExpandImageReferences(manifest.Images())
	if err != nil {
		return err
	}

	return envscope.With(registry.TrustVar, "1", func() error {
		for _, ref := range registry.SortedValues(resolved) {
			if err := h.Client.Tag(ref.Local, ref.Remote); err != nil {
				return err
			}
			if err := h.Client.Push(ref.Remote); err != nil {
				return err
			}
		}
		return nil
	})
}

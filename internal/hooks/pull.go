package hooks

import (
	"fmt"

	"github.com/felixgeelhaar/composetrust/internal/envscope"
	"github.com/felixgeelhaar/composetrust/internal/errors"
	"github.com/felixgeelhaar/composetrust/internal/registry"
)

const pullUsage = `Usage: composetrust pull [--help]

Pulls the manifest's declared images from the trusted remote registry
with content-trust verification enforced, then tags each one under its
local-registry reference. docker-compose's own pull is never invoked.`

// pull fully replaces the docker-compose pull action
func (h *Hooks) pull(args []string) error {
	if helpRequested(args) {
		fmt.Fprintln(h.Out, pullUsage)
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
			if err := h.Client.Pull(ref.Remote); err != nil {
				return errors.NewTrustPullFailedError(ref.Remote, err)
			}
			if err := h.Client.Tag(ref.Remote, ref.Local); err != nil {
				return err
			}
		}
		return nil
	})
}

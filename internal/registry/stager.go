package registry

import (
	"fmt"

	"github.com/felixgeelhaar/composetrust/internal/docker"
	"github.com/felixgeelhaar/composetrust/internal/envscope"
	"github.com/felixgeelhaar/composetrust/internal/errors"
	"github.com/felixgeelhaar/composetrust/internal/log"
)

// Stager copies verified images from the remote registry into the local
// staging registry.
type Stager struct {
	Client docker.Client
	Logger *log.Logger
}

// NewStager creates a Stager backed by the given client
func NewStager(client docker.Client) *Stager {
	return &Stager{
		Client: client,
		Logger: log.DefaultLogger(),
	}
}

// PopulateLocalFromRemote stages the given references into the local
// registry in two strict phases: first every remote reference is pulled
// under a content-trust scope, then each pulled image is tagged and
// pushed locally outside that scope. A failed pull aborts before the
// first tag or push, so the local registry never holds an image that did
// not pass verification. References already present locally are skipped
// unless force is set.
func (s *Stager) PopulateLocalFromRemote(refs []Resolved, force bool) error {
	var pending []Resolved
	for _, ref := range refs {
		if !force && s.Client.ImageExists(ref.Local) {
			s.Logger.Debug("image already staged", "image", ref.Local)
			continue
		}
		pending = append(pending, ref)
	}
	if len(pending) == 0 {
		return nil
	}

	// Phase 1: verify everything before staging anything.
	err := envscope.With(TrustVar, "1", func() error {
		for _, ref := range pending {
			if err := s.Client.Pull(ref.Remote); err != nil {
				return errors.NewTrustPullFailedError(ref.Remote, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Phase 2: tag and push the verified images.
	for _, ref := range pending {
		if err := s.Client.Tag(ref.Remote, ref.Local); err != nil {
			return errors.Wrap(errors.ErrCodeStagePushFailed,
				fmt.Sprintf("failed to tag %s as %s", ref.Remote, ref.Local), err)
		}
		if err := s.Client.Push(ref.Local); err != nil {
			return errors.Wrap(errors.ErrCodeStagePushFailed,
				fmt.Sprintf("failed to push %s", ref.Local), err)
		}
	}

	return nil
}

package registry_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/composetrust/internal/docker/dockertest"
	"github.com/felixgeelhaar/composetrust/internal/errors"
	"github.com/felixgeelhaar/composetrust/internal/registry"
)

var testRefs = []registry.Resolved{
	{Remote: "debian:stable", Local: "localhost:5000/debian:stable"},
	{Remote: "golang:1.24", Local: "localhost:5000/golang:1.24"},
}

func TestStageVerifiesBeforeStaging(t *testing.T) {
	fake := dockertest.NewFakeClient()
	stager := registry.NewStager(fake)

	require.NoError(t, stager.PopulateLocalFromRemote(testRefs, false))

	// All pulls strictly precede the first tag/push.
	assert.Equal(t, []string{"pull", "pull", "tag", "push", "tag", "push"},
		fake.Ops("pull", "tag", "push"))

	for _, call := range fake.Calls {
		switch call.Op {
		case "pull":
			assert.Equal(t, "1", call.Trust, "pulls must run under the content-trust scope")
		case "tag", "push":
			assert.Empty(t, call.Trust, "staging must run outside the trust scope")
		}
	}
}

func TestStageFailFast(t *testing.T) {
	fake := dockertest.NewFakeClient()
	fake.PullErr["golang:1.24"] = errors.NewExitError("docker", 1)
	stager := registry.NewStager(fake)

	err := stager.PopulateLocalFromRemote(testRefs, false)
	require.Error(t, err)

	// A verification failure anywhere in the batch means no image is
	// tagged or pushed, including the ones that pulled cleanly.
	assert.Empty(t, fake.Ops("tag", "push"))

	code, ok := errors.ExitCode(err)
	assert.True(t, ok)
	assert.Equal(t, 1, code)
}

func TestStageSkipsExistingImages(t *testing.T) {
	fake := dockertest.NewFakeClient()
	stager := registry.NewStager(fake)

	require.NoError(t, stager.PopulateLocalFromRemote(testRefs, false))
	firstPulls := len(fake.Ops("pull"))
	assert.Equal(t, 2, firstPulls)

	// Pushed tags exist now; a second run performs zero pulls.
	require.NoError(t, stager.PopulateLocalFromRemote(testRefs, false))
	assert.Equal(t, firstPulls, len(fake.Ops("pull")))
}

func TestStageForceRepullsExistingImages(t *testing.T) {
	fake := dockertest.NewFakeClient()
	fake.Existing["localhost:5000/debian:stable"] = true
	stager := registry.NewStager(fake)

	require.NoError(t, stager.PopulateLocalFromRemote(testRefs[:1], true))
	assert.Equal(t, []string{"pull"}, fake.Ops("pull"))
}

func TestStageRestoresTrustScope(t *testing.T) {
	t.Setenv(registry.TrustVar, "")
	require.NoError(t, os.Unsetenv(registry.TrustVar))

	fake := dockertest.NewFakeClient()
	stager := registry.NewStager(fake)
	require.NoError(t, stager.PopulateLocalFromRemote(testRefs, false))

	_, present := os.LookupEnv(registry.TrustVar)
	assert.False(t, present, "trust variable must be restored to absent")
}

func TestStageEmptyBatch(t *testing.T) {
	fake := dockertest.NewFakeClient()
	stager := registry.NewStager(fake)

	require.NoError(t, stager.PopulateLocalFromRemote(nil, false))
	assert.Empty(t, fake.Ops())
}

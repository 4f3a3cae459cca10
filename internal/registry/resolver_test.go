package registry

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"registry.example.com", "registry.example.com/"},
		{"registry.example.com/", "registry.example.com/"},
		{"registry.example.com:443", "registry.example.com:443/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePrefix(tt.in))
	}
}

func TestExpandImageReferencesUpstreamUnset(t *testing.T) {
	t.Setenv(RegistryVar, "")

	resolver := &Resolver{Upstream: ""}
	resolved, err := resolver.ExpandImageReferences([]string{"${DOCKER_REGISTRY}debian:stable"})
	require.NoError(t, err)

	entry := resolved["${DOCKER_REGISTRY}debian:stable"]
	assert.Equal(t, "debian:stable", entry.Remote)
	assert.Equal(t, "localhost:5000/debian:stable", entry.Local)
}

func TestExpandImageReferencesUpstreamSet(t *testing.T) {
	t.Setenv(RegistryVar, "should-not-matter")

	resolver := &Resolver{Upstream: "registry.example.com"}
	resolved, err := resolver.ExpandImageReferences([]string{
		"${DOCKER_REGISTRY}app:latest",
		"debian:stable",
	})
	require.NoError(t, err)

	app := resolved["${DOCKER_REGISTRY}app:latest"]
	assert.Equal(t, "registry.example.com/app:latest", app.Remote)
	assert.Equal(t, "localhost:5000/app:latest", app.Local)

	// References without a placeholder resolve to themselves on both sides.
	plain := resolved["debian:stable"]
	assert.Equal(t, "debian:stable", plain.Remote)
	assert.Equal(t, "debian:stable", plain.Local)
}

func TestExpandImageReferencesRestoresEnvironment(t *testing.T) {
	t.Setenv(RegistryVar, "caller-value")

	resolver := &Resolver{Upstream: "upstream.example.com"}
	_, err := resolver.ExpandImageReferences([]string{"${DOCKER_REGISTRY}app:latest"})
	require.NoError(t, err)

	assert.Equal(t, "caller-value", os.Getenv(RegistryVar))
}

func TestExpandImageReferencesInvalidReference(t *testing.T) {
	resolver := &Resolver{Upstream: ""}
	_, err := resolver.ExpandImageReferences([]string{"${DOCKER_REGISTRY}UPPER CASE bad ref"})
	assert.Error(t, err)
}

func TestSortedValues(t *testing.T) {
	resolved := map[string]Resolved{
		"b": {Remote: "zeta:1", Local: "localhost:5000/zeta:1"},
		"a": {Remote: "alpha:1", Local: "localhost:5000/alpha:1"},
	}

	values := SortedValues(resolved)
	require.Len(t, values, 2)
	assert.Equal(t, "alpha:1", values[0].Remote)
	assert.Equal(t, "zeta:1", values[1].Remote)
}

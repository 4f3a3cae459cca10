package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/composetrust/internal/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ManifestFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		validate func(*testing.T, *Manifest)
	}{
		{
			name: "image and string build context",
			content: `
services:
  app:
    build: ./ctx
    image: ${DOCKER_REGISTRY}app:latest
  db:
    image: ${DOCKER_REGISTRY}postgres:16
`,
			validate: func(t *testing.T, m *Manifest) {
				assert.Equal(t, Service{Image: "${DOCKER_REGISTRY}app:latest", Build: "./ctx"}, m.Services["app"])
				assert.Equal(t, Service{Image: "${DOCKER_REGISTRY}postgres:16"}, m.Services["db"])
			},
		},
		{
			name: "mapping build form",
			content: `
services:
  worker:
    build:
      context: ./worker
      dockerfile: Dockerfile
`,
			validate: func(t *testing.T, m *Manifest) {
				assert.Equal(t, "./worker", m.Services["worker"].Build)
				assert.Empty(t, m.Services["worker"].Image)
			},
		},
		{
			name:    "empty services",
			content: "services: {}\n",
			validate: func(t *testing.T, m *Manifest) {
				assert.Empty(t, m.Services)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Load(writeManifest(t, tt.content))
			require.NoError(t, err)
			tt.validate(t, m)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ManifestFile))
	require.Error(t, err)

	var trustErr *errors.TrustError
	require.ErrorAs(t, err, &trustErr)
	assert.Equal(t, errors.ErrCodeManifestNotFound, trustErr.Code)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeManifest(t, "services: [not: a: mapping"))
	require.Error(t, err)

	var trustErr *errors.TrustError
	require.ErrorAs(t, err, &trustErr)
	assert.Equal(t, errors.ErrCodeManifestInvalid, trustErr.Code)
}

func TestImagesSorted(t *testing.T) {
	m := &Manifest{Services: map[string]Service{
		"b": {Image: "zeta:1"},
		"a": {Image: "alpha:1"},
		"c": {Build: "./c"},
	}}

	assert.Equal(t, []string{"alpha:1", "zeta:1"}, m.Images())
}

func TestBuildContexts(t *testing.T) {
	m := &Manifest{Services: map[string]Service{
		"app":    {Build: "./app"},
		"worker": {Build: "./worker"},
		"db":     {Image: "postgres:16"},
	}}

	t.Run("all services", func(t *testing.T) {
		assert.Equal(t, map[string]string{"app": "./app", "worker": "./worker"}, m.BuildContexts(nil))
	})

	t.Run("filtered to named services", func(t *testing.T) {
		assert.Equal(t, map[string]string{"app": "./app"}, m.BuildContexts([]string{"app", "db"}))
	})
}

package docker

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/composetrust/internal/errors"
)

func TestEchoFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	c := &CLI{Echo: buf}

	c.echo(dockerBinary, "pull", "debian:stable")

	assert.Equal(t, "docker pull debian:stable\n", buf.String())
}

func TestEchoNilWriter(t *testing.T) {
	c := &CLI{}

	// Must not panic without an echo sink.
	c.echo(dockerBinary, "version")
}

func TestWaitMapsExitStatus(t *testing.T) {
	c := &CLI{}

	err := c.wait(exec.Command("sh", "-c", "exit 7"), "sh")
	require.Error(t, err)

	code, ok := errors.ExitCode(err)
	assert.True(t, ok)
	assert.Equal(t, 7, code)
}

func TestWaitSuccess(t *testing.T) {
	c := &CLI{}
	assert.NoError(t, c.wait(exec.Command("true"), "true"))
}

func TestWaitStartFailure(t *testing.T) {
	c := &CLI{}

	err := c.wait(exec.Command("/nonexistent/composetrust-binary"), "composetrust-binary")
	require.Error(t, err)

	_, ok := errors.ExitCode(err)
	assert.False(t, ok, "a start failure carries no child exit status")

	var trustErr *errors.TrustError
	require.ErrorAs(t, err, &trustErr)
	assert.Equal(t, errors.ErrCodeExecStartFailed, trustErr.Code)
}

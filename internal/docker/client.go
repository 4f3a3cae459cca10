// Package docker runs the external binaries composetrust depends on: the
// signing-aware docker client for image operations and docker-compose for
// delegated orchestration. Every command is echoed before it runs.
package docker

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/felixgeelhaar/composetrust/internal/errors"
	"github.com/felixgeelhaar/composetrust/internal/log"
)

const (
	dockerBinary  = "docker"
	composeBinary = "docker-compose"
)

// Client abstracts the subprocess operations the staging pipeline and the
// action hooks perform, so they can be exercised without a docker daemon.
type Client interface {
	// Pull pulls an image reference. With DOCKER_CONTENT_TRUST set in the
	// environment the client verifies the image signature before accepting it.
	Pull(ref string) error

	// Tag creates target as a new tag for the image referenced by source.
	Tag(source, target string) error

	// Push pushes an image reference. With DOCKER_CONTENT_TRUST set the
	// client signs the pushed content.
	Push(ref string) error

	// ImageExists reports whether ref is present in the local image store.
	// The underlying inspect runs quietly and never raises.
	ImageExists(ref string) bool

	// Compose delegates the given argument vector to docker-compose with
	// the wrapper's standard streams attached.
	Compose(args ...string) error
}

// CLI is the production Client backed by the docker and docker-compose
// binaries on PATH.
type CLI struct {
	// Echo receives the command line of every invocation before it runs.
	// Defaults to stdout.
	Echo io.Writer

	Logger *log.Logger
}

// NewCLI creates a CLI client with default wiring
func NewCLI() *CLI {
	return &CLI{
		Echo:   os.Stdout,
		Logger: log.DefaultLogger(),
	}
}

// Pull pulls an image via the docker client
func (c *CLI) Pull(ref string) error {
	return c.run(dockerBinary, "pull", ref)
}

// Tag tags source as target via the docker client
func (c *CLI) Tag(source, target string) error {
	return c.run(dockerBinary, "tag", source, target)
}

// Push pushes an image via the docker client
func (c *CLI) Push(ref string) error {
	return c.run(dockerBinary, "push", ref)
}

// ImageExists checks local presence of ref with a quiet inspect.
// A nonzero exit is the expected "absent" answer, not an error.
func (c *CLI) ImageExists(ref string) bool {
	c.echo(dockerBinary, "image", "inspect", ref)

	cmd := exec.Command(dockerBinary, "image", "inspect", ref)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	return cmd.Run() == nil
}

// Compose runs docker-compose with the wrapper's standard streams
// attached, so interactive prompts in the wrapped tool reach the user.
func (c *CLI) Compose(args ...string) error {
	c.echo(composeBinary, args...)

	cmd := exec.Command(composeBinary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return c.wait(cmd, composeBinary)
}

func (c *CLI) run(name string, args ...string) error {
	c.echo(name, args...)

	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return c.wait(cmd, name)
}

func (c *CLI) wait(cmd *exec.Cmd, name string) error {
	err := cmd.Run()
	if err == nil {
		return nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		return errors.NewExitError(name, exitErr.ExitCode())
	}
	return errors.Wrap(errors.ErrCodeExecStartFailed,
		fmt.Sprintf("failed to start %s", name), err)
}

func (c *CLI) echo(name string, args ...string) {
	line := name + " " + strings.Join(args, " ")
	if c.Echo != nil {
		fmt.Fprintln(c.Echo, line)
	}
	if c.Logger != nil {
		c.Logger.Debug("running command", "command", line)
	}
}

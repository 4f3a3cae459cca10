// Package hooks implements the per-action behavior the wrapper injects
// around docker-compose: build, push and pull are intercepted, everything
// else passes through untouched.
package hooks

import (
	"io"
	"os"
	"strings"

	"github.com/felixgeelhaar/composetrust/internal/compose"
	"github.com/felixgeelhaar/composetrust/internal/docker"
	"github.com/felixgeelhaar/composetrust/internal/log"
	"github.com/felixgeelhaar/composetrust/internal/registry"
)

// Hook is the sealed variant type for action hooks. A hook is either
// Phased (runs around delegation) or Replacement (substitutes for it).
type Hook interface {
	isHook()
}

// Phased wraps delegation to docker-compose. Pre runs first and returns
// extra arguments spliced in immediately before the command arguments;
// Post runs for cleanup after docker-compose returns. Either may be nil.
type Phased struct {
	Pre  func(commandArgs []string) ([]string, error)
	Post func() error
}

// Replacement fully substitutes for delegation; docker-compose is never
// invoked for the action.
type Replacement struct {
	Run func(commandArgs []string) error
}

func (Phased) isHook()      {}
func (Replacement) isHook() {}

// Table maps action words to their hooks. Actions with no entry pass
// through to docker-compose unmodified.
type Table map[string]Hook

// Hooks bundles the collaborators the action hooks share
type Hooks struct {
	Client   docker.Client
	Resolver *registry.Resolver
	Stager   *registry.Stager

	// Out receives usage notes. Defaults to stdout.
	Out io.Writer

	Logger *log.Logger

	// LoadManifest reads the compose manifest; replaceable in tests.
	LoadManifest func() (*compose.Manifest, error)
}

// New creates the hook set with production collaborators
func New(client docker.Client, resolver *registry.Resolver) *Hooks {
	return &Hooks{
		Client:       client,
		Resolver:     resolver,
		Stager:       registry.NewStager(client),
		Out:          os.Stdout,
		Logger:       log.DefaultLogger(),
		LoadManifest: compose.LoadDefault,
	}
}

// Table returns the action dispatch table
func (h *Hooks) Table() Table {
	return Table{
		"build": Phased{Pre: h.buildPre},
		"push":  Replacement{Run: h.push},
		"pull":  Replacement{Run: h.pull},
	}
}

// helpRequested reports whether the action's own help flag is among args
func helpRequested(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

// hasFlag reports whether the exact flag token is among args
func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

// positional returns the non-flag tokens of args. Values of flags that
// take arguments are not distinguished from service names; only the
// minimal flag subset of the intercepted actions is understood.
func positional(args []string) []string {
	var out []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		out = append(out, arg)
	}
	return out
}

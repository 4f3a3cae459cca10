// Package router parses the raw argument vector, isolates the single
// recognized docker-compose action, and dispatches it through the action
// hook table before delegating to docker-compose.
package router

import (
	"github.com/felixgeelhaar/composetrust/internal/docker"
	"github.com/felixgeelhaar/composetrust/internal/envscope"
	"github.com/felixgeelhaar/composetrust/internal/errors"
	"github.com/felixgeelhaar/composetrust/internal/hooks"
	"github.com/felixgeelhaar/composetrust/internal/log"
	"github.com/felixgeelhaar/composetrust/internal/registry"
)

// Partition is the argument vector split at the action token
type Partition struct {
	// Action is the recognized verb, or empty for a pure pass-through
	Action string

	// ComposeArgs are the tokens up to and including the action
	ComposeArgs []string

	// CommandArgs are the tokens after the action
	CommandArgs []string
}

// Split partitions argv at the first recognized action token. A second
// occurrence of any recognized word in the remaining tokens is a usage
// error, even when that word is a legitimate argument value (a service
// named "build", say). This conservative token matching is deliberate;
// relaxing it would require understanding every docker-compose flag.
// No action at all means pass-through: docker-compose's own argument
// handling is not second-guessed here.
func Split(argv []string) (*Partition, error) {
	for i, token := range argv {
		if !IsAction(token) {
			continue
		}
		for _, rest := range argv[i+1:] {
			if IsAction(rest) {
				return nil, errors.NewMultipleActionsError(token, rest)
			}
		}
		return &Partition{
			Action:      token,
			ComposeArgs: argv[:i+1:i+1],
			CommandArgs: argv[i+1:],
		}, nil
	}
	return &Partition{ComposeArgs: argv[:len(argv):len(argv)]}, nil
}

// Router drives a single wrapper invocation
type Router struct {
	Client docker.Client
	Hooks  hooks.Table
	Logger *log.Logger
}

// New creates a Router over the given client and hook table
func New(client docker.Client, table hooks.Table) *Router {
	return &Router{
		Client: client,
		Hooks:  table,
		Logger: log.DefaultLogger(),
	}
}

// Run executes one invocation: partition the argument vector, open the
// local-registry environment scope, dispatch the action's hook and
// delegate to docker-compose unless a replacement hook ran instead. The
// environment is restored on every exit path.
func (r *Router) Run(argv []string) error {
	partition, err := Split(argv)
	if err != nil {
		return err
	}
	r.Logger.Debug("partitioned arguments",
		"action", partition.Action,
		"compose_args", partition.ComposeArgs,
		"command_args", partition.CommandArgs)

	return envscope.With(registry.RegistryVar, registry.LocalPrefix(), func() error {
		return r.dispatch(partition)
	})
}

func (r *Router) dispatch(partition *Partition) error {
	hook, ok := r.Hooks[partition.Action]
	if !ok {
		trusted := append(partition.ComposeArgs, partition.CommandArgs...)
		return r.Client.Compose(trusted...)
	}

	switch h := hook.(type) {
	case hooks.Replacement:
		return h.Run(partition.CommandArgs)

	case hooks.Phased:
		var extra []string
		if h.Pre != nil {
			var err error
			extra, err = h.Pre(partition.CommandArgs)
			if err != nil {
				return err
			}
		}

		trusted := append(partition.ComposeArgs, extra...)
		trusted = append(trusted, partition.CommandArgs...)
		if err := r.Client.Compose(trusted...); err != nil {
			return err
		}

		if h.Post != nil {
			return h.Post()
		}
		return nil
	}

	return nil
}

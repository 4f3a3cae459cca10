// Package envscope provides scoped mutation of process environment
// variables. A scope sets a variable for the dynamic extent of a callback
// and restores the prior state on every exit path, including the case
// where the variable was previously unset.
package envscope

import (
	"fmt"
	"os"
)

// With sets key to value, runs fn, and restores the variable to its
// pre-activation state before returning. A variable that was absent
// becomes absent again, not empty. Scopes nest: each activation saves
// whatever the enclosing activation left in place.
func With(key, value string, fn func() error) (err error) {
	prev, existed := os.LookupEnv(key)

	if setErr := os.Setenv(key, value); setErr != nil {
		return fmt.Errorf("set %s: %w", key, setErr)
	}

	defer func() {
		var restoreErr error
		if existed {
			restoreErr = os.Setenv(key, prev)
		} else {
			restoreErr = os.Unsetenv(key)
		}
		if restoreErr != nil && err == nil {
			err = fmt.Errorf("restore %s: %w", key, restoreErr)
		}
	}()

	return fn()
}

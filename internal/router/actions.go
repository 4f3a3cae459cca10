package router

// actions is the fixed vocabulary of recognized docker-compose verbs.
// Exactly one must appear per invocation.
var actions = map[string]bool{
	"build":   true,
	"bundle":  true,
	"config":  true,
	"create":  true,
	"down":    true,
	"events":  true,
	"exec":    true,
	"help":    true,
	"images":  true,
	"kill":    true,
	"logs":    true,
	"pause":   true,
	"port":    true,
	"ps":      true,
	"pull":    true,
	"push":    true,
	"restart": true,
	"rm":      true,
	"run":     true,
	"scale":   true,
	"start":   true,
	"stop":    true,
	"top":     true,
	"unpause": true,
	"up":      true,
	"version": true,
}

// IsAction reports whether token is a recognized action word
func IsAction(token string) bool {
	return actions[token]
}

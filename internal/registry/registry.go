// Package registry resolves templated image references against the remote
// and local registries and stages verified images into the local one.
package registry

// Environment variables the wrapper reads and scopes
const (
	// RegistryVar is the registry-prefix placeholder variable. Image
	// references in the manifest and in Dockerfiles expand it.
	RegistryVar = "DOCKER_REGISTRY"

	// TrustVar enables content-trust verification in the docker client
	TrustVar = "DOCKER_CONTENT_TRUST"
)

// LocalAddress is the fixed address of the local staging registry
const LocalAddress = "localhost:5000"

const separator = "/"

// LocalPrefix returns the local registry address with the trailing
// separator the registry-prefix variable always carries when non-empty.
func LocalPrefix() string {
	return LocalAddress + separator
}

// NormalizePrefix appends the trailing separator to a non-empty registry
// prefix; an empty prefix stays empty.
func NormalizePrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	if prefix[len(prefix)-1] == '/' {
		return prefix
	}
	return prefix + separator
}

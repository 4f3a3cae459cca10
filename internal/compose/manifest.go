// Package compose reads the two fields of a docker-compose manifest the
// wrapper cares about: each service's image reference and build context.
// Everything else in the file is docker-compose's business.
package compose

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/composetrust/internal/errors"
)

// ManifestFile is the fixed manifest name read from the working directory
const ManifestFile = "docker-compose.yml"

// Service holds the read-only fields extracted per service
type Service struct {
	// Image is the templated image reference, possibly containing a
	// registry-prefix placeholder. Empty when the service declares none.
	Image string

	// Build is the build context directory. Empty for image-only services.
	Build string
}

// Manifest is the extracted view of a compose file
type Manifest struct {
	Services map[string]Service
}

type rawService struct {
	Image string       `yaml:"image"`
	Build rawBuildSpec `yaml:"build"`
}

// rawBuildSpec accepts both compose forms of the build field:
// a bare context string, or a mapping with a context key.
type rawBuildSpec struct {
	Context string
}

func (b *rawBuildSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&b.Context)
	case yaml.MappingNode:
		var m struct {
			Context string `yaml:"context"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		b.Context = m.Context
		return nil
	}
	return fmt.Errorf("build must be a string or a mapping (line %d)", node.Line)
}

type rawManifest struct {
	Services map[string]rawService `yaml:"services"`
}

// Load reads the manifest from path
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewManifestNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeManifestInvalid,
			fmt.Sprintf("failed to read %s", path), err)
	}

	var raw rawManifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifestInvalid,
			fmt.Sprintf("failed to parse %s", path), err)
	}

	m := &Manifest{Services: make(map[string]Service, len(raw.Services))}
	for name, svc := range raw.Services {
		m.Services[name] = Service{
			Image: svc.Image,
			Build: svc.Build.Context,
		}
	}
	return m, nil
}

// LoadDefault reads the fixed-name manifest from the working directory
func LoadDefault() (*Manifest, error) {
	return Load(ManifestFile)
}

// Images returns the declared image references of all services, sorted
// for deterministic processing order.
func (m *Manifest) Images() []string {
	var images []string
	for _, svc := range m.Services {
		if svc.Image != "" {
			images = append(images, svc.Image)
		}
	}
	sort.Strings(images)
	return images
}

// BuildContexts returns service name to build context for every service
// that declares one, filtered to the named services when any are given.
func (m *Manifest) BuildContexts(services []string) map[string]string {
	contexts := make(map[string]string)
	for name, svc := range m.Services {
		if svc.Build == "" {
			continue
		}
		if len(services) > 0 && !contains(services, name) {
			continue
		}
		contexts[name] = svc.Build
	}
	return contexts
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

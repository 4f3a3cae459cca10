// Package dockerfile extracts parent-image references from a build
// context's Dockerfile. The file is parsed only for FROM instructions and
// never modified.
package dockerfile

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/composetrust/internal/errors"
)

// ParentImages returns the parent-image references of the Dockerfile in
// contextDir, in first-seen order without duplicates. References to the
// alias of an earlier build stage are not parent images and are skipped.
func ParentImages(contextDir string) ([]string, error) {
	path := filepath.Join(contextDir, "Dockerfile")

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBuildFileNotFound,
			"failed to open build file: "+path, err)
	}
	defer file.Close()

	var images []string
	seen := make(map[string]bool)
	stages := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || !strings.EqualFold(fields[0], "FROM") {
			continue
		}

		// FROM [--platform=...] <image> [AS <stage>]
		rest := fields[1:]
		for len(rest) > 0 && strings.HasPrefix(rest[0], "--") {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			continue
		}

		ref := rest[0]
		if len(rest) >= 3 && strings.EqualFold(rest[1], "AS") {
			stages[rest[2]] = true
		}

		if stages[ref] || seen[ref] {
			continue
		}
		seen[ref] = true
		images = append(images, ref)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBuildFileNotFound,
			"failed to read build file: "+path, err)
	}

	return images, nil
}

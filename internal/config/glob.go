package config

import (
	"path/filepath"
	"strings"
)

// Matches checks if a file path matches any of the config's include
// patterns and none of its exclude patterns.
func (c *Config) Matches(filePath string) bool {
	return MatchesGlob(filePath, c.Include, c.Exclude)
}

// MatchesGlob checks if a file path matches any of the include
// patterns and does not match any of the exclude patterns.
func MatchesGlob(filePath string, includePatterns, excludePatterns []string) bool {
	if len(includePatterns) == 0 {
		return false
	}

	filePath = filepath.ToSlash(filePath)

	// Check exclude first
	for _, pattern := range excludePatterns {
		if globMatch(filePath, filepath.ToSlash(pattern)) {
			return false
		}
	}

	for _, pattern := range includePatterns {
		if globMatch(filePath, filepath.ToSlash(pattern)) {
			return true
		}
	}

	return false
}

// globMatch matches a path against a glob pattern with ** support.
// Matching is done against suffixes of the path — if the pattern is
// "src/**/*.ts", it matches any file under a "src/" directory whose
// name matches "*.ts".
func globMatch(filePath, pattern string) bool {
	if matched, _ := filepath.Match(pattern, filePath); matched {
		return true
	}

	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		if prefix == "" {
			// Pattern like **/*.ts — match suffix against any file
			if suffix == "" {
				return true
			}
			if matched, _ := filepath.Match(suffix, filepath.Base(filePath)); matched {
				return true
			}
			return false
		}

		// Pattern like src/**/*.ts — find the prefix in the path,
		// then match the suffix against what follows
		var remaining string
		switch {
		case strings.HasPrefix(filePath, prefix+"/"):
			remaining = filePath[len(prefix)+1:]
		default:
			idx := strings.Index(filePath, "/"+prefix+"/")
			if idx < 0 {
				return false
			}
			remaining = filePath[idx+len(prefix)+2:]
		}
		if suffix == "" {
			return true
		}
		if matched, _ := filepath.Match(suffix, filepath.Base(remaining)); matched {
			return true
		}
		if matched, _ := filepath.Match(suffix, remaining); matched {
			return true
		}
		return false
	}

	// No ** — try matching just the basename
	matched, _ := filepath.Match(filepath.Base(pattern), filepath.Base(filePath))
	return matched
}

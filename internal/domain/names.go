package domain

import "strings"

// IsValidArtifactName rejects names that would escape the working clone
// when used as a snapshot file name.
func IsValidArtifactName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return true
}

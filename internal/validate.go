package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationResult is feedback about a user-supplied path. Validation never
// fails a run; the result is for display only.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Exists bool   `json:"exists"`
	Reason string `json:"reason,omitempty"`
}

// ValidatePath checks that a path exists and has the shape the host's
// locator expects.
func ValidatePath(spec HostSpec, path string) ValidationResult {
	if path == "" {
		return ValidationResult{Reason: "path is empty"}
	}

	info, err := os.Stat(path)
	if err != nil {
		return ValidationResult{Reason: "path does not exist"}
	}
	if !info.IsDir() {
		return ValidationResult{Exists: true, Reason: "path is not a directory"}
	}

	switch spec.Kind {
	case StoreTable:
		return validateWorkspaceStorage(path)
	default:
		return validateJetBrainsConfig(spec, path)
	}
}

// validateWorkspaceStorage expects a workspaceStorage directory: workspace
// subdirectories holding state.vscdb files.
func validateWorkspaceStorage(path string) ValidationResult {
	entries, err := os.ReadDir(path)
	if err != nil {
		return ValidationResult{Exists: true, Reason: "directory is not readable"}
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(path, entry.Name(), "state.vscdb")); err == nil {
			return ValidationResult{Valid: true, Exists: true}
		}
	}
	return ValidationResult{Exists: true, Reason: "no workspace with a state.vscdb was found"}
}

// validateJetBrainsConfig expects a product config directory (its name
// carries the product prefix, or it contains an options directory).
func validateJetBrainsConfig(spec HostSpec, path string) ValidationResult {
	if strings.HasPrefix(filepath.Base(path), spec.appDir) {
		return ValidationResult{Valid: true, Exists: true}
	}
	if info, err := os.Stat(filepath.Join(path, "options")); err == nil && info.IsDir() {
		return ValidationResult{Valid: true, Exists: true}
	}
	return ValidationResult{
		Exists: true,
		Reason: fmt.Sprintf("directory does not look like a %s config directory", spec.appDir),
	}
}

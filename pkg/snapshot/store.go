// =============================================================================
// MoPOS - Snapshot Store Utility
// =============================================================================
//
// This module persists register state as full-state YAML snapshots. The
// contract is intentionally small:
//   - Save marshals the whole state and overwrites whatever was at the
//     storage location before (saving is idempotent).
//   - Load reads the whole state back; a missing snapshot is reported as
//     fs.ErrNotExist so callers can fall back to a fresh initial state,
//     which is the expected first-run path.
//
// There is no partial update and no locking: the till is the single writer
// and always rewrites the complete snapshot.
//
// =============================================================================

package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// SAVE
// =============================================================================

// Save writes state as a YAML snapshot at path, overwriting any prior
// snapshot. Parent directories are created as needed.
//
// PARAMETERS:
//   - path: The storage location of the snapshot.
//   - state: Any YAML-marshallable state value.
//
// RETURNS:
//   - An error if marshalling or writing fails.
func Save(path string, state any) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}

	return nil
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the YAML snapshot at path into state.
//
// PARAMETERS:
//   - path: The storage location of the snapshot.
//   - state: A pointer to the state value to populate.
//
// RETURNS:
//   - An error wrapping fs.ErrNotExist when no snapshot exists yet.
//   - Any other read or decode error.
//
// Callers should treat a not-found error as the normal first-run condition
// and substitute their initial state.
func Load(path string, state any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, state); err != nil {
		return fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	return nil
}

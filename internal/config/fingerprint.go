package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Fingerprint returns a stable hex digest of the check configuration
// plus the tool version. Cached results keyed by it are invalidated
// whenever the enabled checks, their properties, their kind subscriptions
// or the tool itself change.
func (c *ChecksConfig) Fingerprint(version string) (string, error) {
	enabled := make([]string, len(c.Enabled))
	copy(enabled, c.Enabled)
	sort.Strings(enabled)

	payload := struct {
		Enabled    []string                  `json:"enabled"`
		Properties map[string]map[string]any `json:"properties"`
		Kinds      map[string][]string       `json:"kinds"`
		Version    string                    `json:"version"`
	}{
		Enabled:    enabled,
		Properties: c.Properties,
		Kinds:      c.Kinds,
		Version:    version,
	}

	// json.Marshal sorts map keys, so equal configs fingerprint equally.
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("fingerprint config: %w", err)
	}

	sum := sha256.Sum256(encoded)

	return hex.EncodeToString(sum[:]), nil
}

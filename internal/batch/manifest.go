package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered track in the output manifest.
type ManifestEntry struct {
	Name     string   `json:"name"`
	Image    string   `json:"image"`
	Points   int      `json:"points"`
	Sections int      `json:"sections"`
	Closed   bool     `json:"closed"`
	Skipped  []string `json:"skipped_tokens,omitempty"`
}

// WriteManifest writes the successful results as JSON to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:     r.Name,
			Image:    r.Image,
			Points:   r.Points,
			Sections: r.Sections,
			Closed:   r.Closed,
			Skipped:  r.Skipped,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

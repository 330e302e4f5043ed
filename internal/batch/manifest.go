package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one scene in the output manifest.
type ManifestEntry struct {
	Name          string `json:"name"`
	Source        string `json:"source"`
	Image         string `json:"image"`
	Animation     string `json:"animation,omitempty"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Scheme        string `json:"scheme,omitempty"`
	DrawnPixels   uint64 `json:"drawn_pixels"`
	ParallelCalls uint64 `json:"parallel_calls"`
	SerialCalls   uint64 `json:"serial_calls"`
	FailedTasks   uint64 `json:"failed_tasks,omitempty"`
	ElapsedMS     int64  `json:"elapsed_ms"`
	Error         string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:          r.Name,
			Source:        r.Source,
			Image:         r.Image,
			Animation:     r.Animation,
			Width:         r.Width,
			Height:        r.Height,
			Scheme:        r.Scheme,
			DrawnPixels:   r.DrawnPixels,
			ParallelCalls: r.ParallelCalls,
			SerialCalls:   r.SerialCalls,
			FailedTasks:   r.FailedTasks,
			ElapsedMS:     r.Elapsed.Milliseconds(),
			Error:         r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

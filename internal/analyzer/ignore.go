package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IgnoreFile is the on-disk shape of .dupscan/ignore.json.
type IgnoreFile struct {
	Description string   `json:"description,omitempty"`
	Ignored     []string `json:"ignored"`
}

const ignoreFileName = "ignore.json"

// LoadIgnored reads the fingerprints the user has chosen to suppress. A
// missing file is seeded empty so the path is discoverable; any read or parse
// failure just yields an empty set with the error returned for logging.
func LoadIgnored(root string) (map[string]bool, error) {
	path := filepath.Join(root, ArtifactDir, ignoreFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			seedIgnoreFile(path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f IgnoreFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	ignored := make(map[string]bool, len(f.Ignored))
	for _, fp := range f.Ignored {
		ignored[fp] = true
	}
	return ignored, nil
}

func seedIgnoreFile(path string) {
	empty := IgnoreFile{
		Description: "Fingerprints listed here are excluded from future reports.",
		Ignored:     []string{},
	}
	data, err := json.MarshalIndent(empty, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	os.WriteFile(path, data, 0o644)
}

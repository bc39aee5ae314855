package overrides

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/portico-home/portico/internal/domain"
	"github.com/portico-home/portico/internal/logger"
)

// Loader reads the user-maintained override file. The file is keyed by
// entity name; records are sparse and absent fields defer to other sources.
type Loader struct {
	path string
	log  logger.Logger
}

// NewLoader creates an override loader. An empty path disables overrides.
func NewLoader(path string, log logger.Logger) *Loader {
	return &Loader{path: path, log: log}
}

// Load parses the override file, selecting JSON or YAML by extension.
// A missing file is not an error: overrides are optional.
func (l *Loader) Load() (map[string]domain.OverrideRecord, error) {
	if l.path == "" {
		return map[string]domain.OverrideRecord{}, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.log.Debug("override file not present, skipping",
				logger.String("path", l.path))
			return map[string]domain.OverrideRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read override file: %w", err)
	}

	records := make(map[string]domain.OverrideRecord)
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse override yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse override json: %w", err)
		}
	}

	l.log.Info("loaded overrides",
		logger.String("path", l.path),
		logger.Int("count", len(records)))
	return records, nil
}

package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/japaniel/visionary/pkg/service"
)

// LoadBatch reads a list of narratives from a YAML or JSON file. Files
// ending in .json are decoded as JSON, anything else as YAML.
func LoadBatch(path string) ([]service.SubmitRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	var reqs []service.SubmitRequest
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &reqs)
	} else {
		err = yaml.Unmarshal(data, &reqs)
	}
	if err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", filepath.Base(path), err)
	}
	return reqs, nil
}

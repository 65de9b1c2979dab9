// Package dataset loads static item collections from YAML, JSON or TOML files.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/pagelist/internal/list"
)

// file is the on-disk shape: a top-level items list of flat records.
type file struct {
	Items []map[string]any `json:"items" yaml:"items" toml:"items"`
}

// LoadFile reads items from path. The format follows the extension.
func LoadFile(path string) ([]list.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data in the format named by ext (".yaml", ".yml", ".json" or ".toml").
func Parse(data []byte, ext string) ([]list.Item, error) {
	var f file
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".json":
		err = json.Unmarshal(data, &f)
	case ".toml":
		err = toml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported data format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}

	items := make([]list.Item, 0, len(f.Items))
	for i, rec := range f.Items {
		item, err := list.ItemFromMap(rec)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

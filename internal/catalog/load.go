package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region load
// Load reads a YAML catalog file and validates it. An invalid catalog is a
// configuration bug, so the caller should stop rather than fall back.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML catalog bytes and validates the result.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("validate: %w", err)
	}
	return c, nil
}

// LoadOrDefault returns the compiled-in catalog when path is empty.
func LoadOrDefault(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// #endregion load

// #region marshal
// Marshal encodes the catalog as YAML, suitable as a starting point for an
// externalized catalog file.
func Marshal(c Catalog) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return data, nil
}

// #endregion marshal

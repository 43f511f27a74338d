package records

import (
	"encoding/json"
	"fmt"
	"os"
)

// #region fixture
// Fixture is the JSON snapshot format for a case collection and its
// attorney directory.
type Fixture struct {
	Cases     []Record   `json:"cases"`
	Attorneys []Attorney `json:"attorneys"`
}

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	for i, c := range f.Cases {
		if c.ID == "" {
			return nil, fmt.Errorf("fixture %s: case %d has empty id", path, i)
		}
	}
	return &f, nil
}

// #endregion fixture

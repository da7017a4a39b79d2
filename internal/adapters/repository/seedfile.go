package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk layout: a top-level "hackathons" list.
type seedFile struct {
	Hackathons []model.Hackathon `json:"hackathons" yaml:"hackathons" toml:"hackathons"`
}

// LoadSeedFile reads catalog records from a YAML, JSON or TOML file chosen by
// extension. Unknown fields are rejected so typos do not silently drop data.
func LoadSeedFile(path string) ([]model.Hackathon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSeedFormat, ext)
	}
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", filepath.Base(path), err)
	}
	return f.Hackathons, nil
}

package vocab

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a vocabulary file that is neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported vocabulary file format")

// LoadFile reads a vocabulary overlay from a .yaml, .yml or .toml file.
// Unknown keys are rejected. The result is not validated; lay it over a
// built-in table with Merge and validate the merged result.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided vocabulary path is expected
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}

	var v Vocabulary
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing vocabulary file: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &v)
		if err != nil {
			return nil, fmt.Errorf("parsing vocabulary file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("parsing vocabulary file: unknown keys %s", strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("%w %q (use .yaml, .yml or .toml)", ErrUnsupportedFormat, ext)
	}

	return &v, nil
}

// Load returns the built-in vocabulary for lang, with the overlay at path
// merged over it when path is not empty, and validates the result.
func Load(lang, path string) (*Vocabulary, error) {
	v, err := ForLanguage(lang)
	if err != nil {
		return nil, err
	}

	if path != "" {
		overlay, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if v, err = Merge(v, overlay); err != nil {
			return nil, fmt.Errorf("merging %s: %w", path, err)
		}
	}

	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("validating vocabulary: %w", err)
	}
	return v, nil
}

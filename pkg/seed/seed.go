// Package seed loads advocate fixtures from YAML and inserts them through
// any storage.AdvocateWriter.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/advocates/pkg/advocates"
	"github.com/platinummonkey/advocates/pkg/storage"
)

//go:embed advocates.yaml
var defaultFixtures []byte

// File is the on-disk fixture format
type File struct {
	Advocates []advocates.Advocate `yaml:"advocates"`
}

// Load decodes fixtures from r. Unknown keys are rejected so typos in
// fixture files surface early.
func Load(r io.Reader) ([]advocates.Advocate, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return []advocates.Advocate{}, nil
		}
		return nil, fmt.Errorf("invalid fixture YAML: %w", err)
	}

	for i := range f.Advocates {
		if err := validate(f.Advocates[i]); err != nil {
			return nil, fmt.Errorf("fixture %d: %w", i, err)
		}
		if f.Advocates[i].Specialties == nil {
			f.Advocates[i].Specialties = advocates.Specialties{}
		}
	}

	return f.Advocates, nil
}

// LoadFile decodes fixtures from a YAML file
func LoadFile(path string) ([]advocates.Advocate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Default returns the embedded fixture set
func Default() ([]advocates.Advocate, error) {
	return Load(bytes.NewReader(defaultFixtures))
}

// FromFileOrDefault loads path, or the embedded set when path is empty
func FromFileOrDefault(path string) ([]advocates.Advocate, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Apply inserts records through w and returns the assigned IDs
func Apply(ctx context.Context, w storage.AdvocateWriter, records []advocates.Advocate) ([]int64, error) {
	if len(records) == 0 {
		return []int64{}, nil
	}

	ids, err := w.Insert(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to seed advocates: %w", err)
	}
	return ids, nil
}

func validate(a advocates.Advocate) error {
	var missing []string
	if a.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if a.LastName == "" {
		missing = append(missing, "lastName")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.Degree == "" {
		missing = append(missing, "degree")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if a.PhoneNumber <= 0 {
		return fmt.Errorf("phoneNumber must be positive")
	}
	if a.YearsOfExperience < 0 {
		return fmt.Errorf("yearsOfExperience must not be negative")
	}
	return nil
}

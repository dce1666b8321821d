package advocates

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Advocate is one directory entry
type Advocate struct {
	ID                int64       `json:"id" yaml:"-"`
	FirstName         string      `json:"firstName" yaml:"firstName"`
	LastName          string      `json:"lastName" yaml:"lastName"`
	City              string      `json:"city" yaml:"city"`
	Degree            string      `json:"degree" yaml:"degree"`
	Specialties       Specialties `json:"specialties" yaml:"specialties"`
	YearsOfExperience int         `json:"yearsOfExperience" yaml:"yearsOfExperience"`
	PhoneNumber       int64       `json:"phoneNumber" yaml:"phoneNumber"`
	CreatedAt         *time.Time  `json:"createdAt" yaml:"-"`
}

// FullName returns "First Last"
func (a Advocate) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Specialties is the list of specialty labels, stored as a JSON array
type Specialties []string

// MarshalJSON always emits a list, never null
func (s Specialties) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Scan implements sql.Scanner for jsonb/json/text columns
func (s *Specialties) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = Specialties{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported specialties type %T", src)
	}

	if len(raw) == 0 {
		*s = Specialties{}
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("invalid specialties JSON: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*s = out
	return nil
}

// Value implements driver.Valuer
func (s Specialties) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

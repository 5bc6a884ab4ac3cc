package models

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed specialties.yaml
var specialtiesYAML []byte

// SpecialtyStyle is the badge colouring used when a specialty is displayed.
type SpecialtyStyle struct {
	Background string `yaml:"background" json:"backgroundColor"`
	Color      string `yaml:"color" json:"color"`
}

// Specialty is one entry of the fixed legal-specialty catalogue. Key is the
// value stored on attorney records and also the translation key suffix.
type Specialty struct {
	Key            string `yaml:"key" json:"key"`
	SpecialtyStyle `yaml:",inline" json:"style"`
}

type specialtyCatalogue struct {
	Specialties []Specialty    `yaml:"specialties"`
	Default     SpecialtyStyle `yaml:"default"`
}

var (
	catalogueOnce sync.Once
	catalogue     specialtyCatalogue
	catalogueErr  error
)

func loadCatalogue() (specialtyCatalogue, error) {
	catalogueOnce.Do(func() {
		if err := yaml.Unmarshal(specialtiesYAML, &catalogue); err != nil {
			catalogueErr = fmt.Errorf("failed to parse specialty catalogue: %w", err)
		}
	})
	return catalogue, catalogueErr
}

// Specialties returns the catalogue in display order.
func Specialties() []Specialty {
	c, err := loadCatalogue()
	if err != nil {
		panic(err)
	}
	out := make([]Specialty, len(c.Specialties))
	copy(out, c.Specialties)
	return out
}

// IsKnownSpecialty reports whether key is part of the catalogue.
func IsKnownSpecialty(key string) bool {
	for _, s := range Specialties() {
		if s.Key == key {
			return true
		}
	}
	return false
}

// SpecialtyStyleFor returns the badge style for key, or the default style
// for keys outside the catalogue.
func SpecialtyStyleFor(key string) SpecialtyStyle {
	c, err := loadCatalogue()
	if err != nil {
		panic(err)
	}
	for _, s := range c.Specialties {
		if s.Key == key {
			return s.SpecialtyStyle
		}
	}
	return c.Default
}

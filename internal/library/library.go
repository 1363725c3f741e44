// Package library provides the predefined habit catalogue and the icon
// palette used to style habits.
package library

import (
	_ "embed"
	"fmt"
	"sync"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

//go:embed library.yaml
var libraryYAML []byte

// HabitStyle is how a habit is drawn.
type HabitStyle struct {
	Icon  string `yaml:"icon" json:"icon"`
	Color string `yaml:"color" json:"color"`
	Bg    string `yaml:"bg" json:"bg"`
}

// Predefined is a suggested habit.
type Predefined struct {
	Name       string `yaml:"name" json:"name"`
	HabitStyle `yaml:",inline"`
}

// Library is the parsed catalogue.
type Library struct {
	Habits   []Predefined `yaml:"habits"`
	Icons    []HabitStyle `yaml:"icons"`
	Fallback HabitStyle   `yaml:"fallback"`
}

var (
	loadOnce sync.Once
	loaded   *Library
	loadErr  error
)

// Default returns the embedded catalogue. It panics if the embedded file
// is malformed, which the package tests rule out.
func Default() *Library {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(libraryYAML)
	})
	if loadErr != nil {
		panic(loadErr)
	}
	return loaded
}

// Parse decodes a catalogue document.
func Parse(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse habit library: %w", err)
	}
	if lib.Fallback.Icon == "" {
		return nil, fmt.Errorf("parse habit library: fallback icon is required")
	}
	return &lib, nil
}

// Style resolves the display style of a habit: a predefined habit with the
// same name (case-insensitive), then a palette entry matching icon, then
// the fallback.
func (l *Library) Style(name, icon string) HabitStyle {
	fold := cases.Fold()
	key := fold.String(name)
	for _, h := range l.Habits {
		if fold.String(h.Name) == key {
			return h.HabitStyle
		}
	}
	if icon != "" {
		for _, s := range l.Icons {
			if s.Icon == icon {
				return s
			}
		}
	}
	return l.Fallback
}

// Lookup finds a predefined habit by name, case-insensitively.
func (l *Library) Lookup(name string) (Predefined, bool) {
	fold := cases.Fold()
	key := fold.String(name)
	for _, h := range l.Habits {
		if fold.String(h.Name) == key {
			return h, true
		}
	}
	return Predefined{}, false
}

// Style resolves against the embedded catalogue.
func Style(name, icon string) HabitStyle {
	return Default().Style(name, icon)
}

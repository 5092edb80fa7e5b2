// Package scaffold creates the <region>_<language>/<topic>/ tree that
// exports are saved into.
package scaffold

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
)

//go:embed default.yaml
var defaultLayout []byte

// Layout lists the regions, languages and topics to create.
type Layout struct {
	Regions   []string `yaml:"regions" json:"regions"`
	Languages []string `yaml:"languages" json:"languages"`
	Topics    []string `yaml:"topics" json:"topics"`
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() Layout {
	layout, err := ParseLayout(defaultLayout)
	if err != nil {
		panic("scaffold: invalid built-in layout: " + err.Error())
	}
	return layout
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, errors.WrapIO("read", path, err)
	}
	layout, err := ParseLayout(data)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return Layout{}, err
	}
	return layout, nil
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, errors.WrapParse("yaml", "", err)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// Validate checks that every list is non-empty and every name is usable as
// a directory name.
func (l Layout) Validate() error {
	for field, names := range map[string][]string{
		"regions":   l.Regions,
		"languages": l.Languages,
		"topics":    l.Topics,
	} {
		if len(names) == 0 {
			return errors.NewValidationError(field, names, "cannot be empty")
		}
		for _, name := range names {
			if strings.TrimSpace(name) == "" || name == "." || name == ".." ||
				strings.ContainsAny(name, `/\`) {
				return errors.NewValidationError(field, name, "is not a valid directory name")
			}
		}
	}
	return nil
}

// Paths returns every topic directory of the layout below root.
func (l Layout) Paths(root string) []string {
	paths := make([]string, 0, len(l.Regions)*len(l.Languages)*len(l.Topics))
	for _, region := range l.Regions {
		for _, lang := range l.Languages {
			for _, topic := range l.Topics {
				paths = append(paths, filepath.Join(root, region+"_"+lang, topic))
			}
		}
	}
	return paths
}

// Create makes every topic directory of the layout below root, each with a
// placeholder file, and returns the directories that did not exist before.
// Running it again changes nothing.
func Create(root string, layout Layout) ([]string, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	var created []string
	for _, dir := range layout.Paths(root) {
		_, statErr := os.Stat(dir)
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return created, errors.WrapIO("create", dir, err)
		}
		if os.IsNotExist(statErr) {
			created = append(created, dir)
		}

		placeholder := filepath.Join(dir, constants.PlaceholderFile)
		f, err := os.OpenFile(placeholder, os.O_CREATE|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			return created, errors.WrapIO("create", placeholder, err)
		}
		if err := f.Close(); err != nil {
			return created, errors.WrapIO("create", placeholder, err)
		}
	}
	return created, nil
}

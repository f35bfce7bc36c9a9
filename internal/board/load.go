package board

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Definition lists the element names of a board, per category, in board order.
//
// The same shape is accepted from every supported file format:
//
//	locations = ["Kitchen", "Library"]
//	people    = ["Green", "White"]
//	weapons   = ["Knife", "Rope"]
type Definition struct {
	Locations []string `toml:"locations" yaml:"locations" json:"locations"`
	People    []string `toml:"people" yaml:"people" json:"people"`
	Weapons   []string `toml:"weapons" yaml:"weapons" json:"weapons"`
}

// DefinitionError reports a structurally invalid board definition.
type DefinitionError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads a board definition from path.
// The format is chosen by extension: .toml, .yaml/.yml or .cue.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("load board: %w", err)
	}

	def, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return Definition{}, fmt.Errorf("load board %s: %w", path, err)
	}
	return def, nil
}

// Decode parses a board definition in the format named by ext
// (".toml", ".yaml", ".yml" or ".cue"), then normalises and validates it.
func Decode(ext string, data []byte) (Definition, error) {
	var def Definition
	var err error

	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &def)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&def)
	case ".cue":
		def, err = decodeCUE(data)
	default:
		return Definition{}, fmt.Errorf("unsupported board format %q", ext)
	}
	if err != nil {
		return Definition{}, err
	}

	def = def.normalize()
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// decodeCUE evaluates a CUE board file and extracts the three lists.
// Concrete values are required; the file may use CUE expressions to build them.
func decodeCUE(data []byte) (Definition, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return Definition{}, err
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Definition{}, err
	}

	var def Definition
	if err := v.Decode(&def); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// normalize trims names and converts them to NFC so that visually identical
// names compare equal regardless of how the file was encoded.
func (d Definition) normalize() Definition {
	clean := func(names []string) []string {
		out := make([]string, len(names))
		for i, n := range names {
			out[i] = norm.NFC.String(strings.TrimSpace(n))
		}
		return out
	}
	return Definition{
		Locations: clean(d.Locations),
		People:    clean(d.People),
		Weapons:   clean(d.Weapons),
	}
}

// Validate checks that every category has at least one element and that no
// name is empty.
func (d Definition) Validate() error {
	sections := []struct {
		field string
		names []string
	}{
		{"locations", d.Locations},
		{"people", d.People},
		{"weapons", d.Weapons},
	}
	for _, s := range sections {
		if len(s.names) == 0 {
			return &DefinitionError{Field: s.field, Message: "at least one element is required"}
		}
		for i, name := range s.names {
			if name == "" {
				return &DefinitionError{
					Field:   fmt.Sprintf("%s[%d]", s.field, i),
					Message: "element name must be non-empty",
				}
			}
		}
	}
	return nil
}

// SameShape reports whether d and other have the same number of elements in
// every category. Boards with the same shape accept the same identifiers.
func (d Definition) SameShape(other Definition) bool {
	return len(d.Locations) == len(other.Locations) &&
		len(d.People) == len(other.People) &&
		len(d.Weapons) == len(other.Weapons)
}

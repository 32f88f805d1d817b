package dimtable

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/piwi3910/SpoolCut/internal/model"
)

// Provider supplies dimension rows once, at table construction.
type Provider interface {
	Rows() ([]model.DimensionRow, error)
}

// FromProvider builds a table from the provider's rows.
func FromProvider(p Provider) (*Table, error) {
	rows, err := p.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to load dimension rows: %w", err)
	}
	return New(rows)
}

// BuiltinProvider serves the compiled-in reference table.
type BuiltinProvider struct{}

func (BuiltinProvider) Rows() ([]model.DimensionRow, error) {
	rows := make([]model.DimensionRow, len(builtinRows))
	copy(rows, builtinRows)
	return rows, nil
}

// tomlFile is the on-disk layout of a custom table:
//
//	[[row]]
//	dn = 50
//	outer_diameter = 60.3
//	...
//	[row.flange_10]
//	face_width = 45.0
type tomlFile struct {
	Rows []model.DimensionRow `toml:"row"`
}

// TOMLProvider reads rows from a TOML file.
type TOMLProvider struct {
	Path string
}

func (p TOMLProvider) Rows() ([]model.DimensionRow, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dimension table: %w", err)
	}
	return ParseTOML(data)
}

// ParseTOML decodes a TOML table document.
func ParseTOML(data []byte) ([]model.DimensionRow, error) {
	var f tomlFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse dimension table: %w", err)
	}
	return f.Rows, nil
}

// Load returns the table at path, or the built-in table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return FromProvider(BuiltinProvider{})
	}
	return FromProvider(TOMLProvider{Path: path})
}

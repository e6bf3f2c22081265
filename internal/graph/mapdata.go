package graph

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MapData is the authored form of a campus map, as read from a YAML asset
// or a database.
type MapData struct {
	Locations []LocationEntry  `yaml:"locations"`
	Corridors []CorridorWeight `yaml:"corridors"`
}

type LocationEntry struct {
	Name      string   `yaml:"name"`
	Neighbors []string `yaml:"neighbors"`
}

type CorridorWeight struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Weight float64 `yaml:"weight"`
}

//go:embed campus.yaml
var referenceMap []byte

// ParseMap decodes a YAML map asset. Unknown keys are rejected so a typo in
// a hand-edited map fails loudly.
func ParseMap(r io.Reader) (MapData, error) {
	var data MapData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return MapData{}, fmt.Errorf("%w: empty map document", ErrConstruction)
		}
		return MapData{}, fmt.Errorf("%w: decode map: %v", ErrConstruction, err)
	}
	return data, nil
}

// ReadFile reads and decodes the map at path without validating it.
func ReadFile(path string) (MapData, error) {
	f, err := os.Open(path)
	if err != nil {
		return MapData{}, fmt.Errorf("open map file: %w", err)
	}
	defer f.Close()

	data, err := ParseMap(f)
	if err != nil {
		return MapData{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// LoadFile reads, decodes and validates the map at path.
func LoadFile(path string) (*Graph, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(data)
}

// ReferenceData decodes the campus map shipped with the binary.
func ReferenceData() (MapData, error) {
	return ParseMap(bytes.NewReader(referenceMap))
}

// Reference builds the campus map shipped with the binary.
func Reference() (*Graph, error) {
	data, err := ReferenceData()
	if err != nil {
		return nil, err
	}
	return New(data)
}

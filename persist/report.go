// SPDX-License-Identifier: MIT

package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/sbdet/gcm"
	"github.com/katalvlaran/sbdet/pivot"
	"gopkg.in/yaml.v3"
)

type codec struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}, nil
	case ".json":
		return codec{
			marshal:   func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") },
			unmarshal: json.Unmarshal,
		}, nil
	default:
		return codec{}, fmt.Errorf("persist: %q: %w", path, ErrUnknownFormat)
	}
}

func save(path string, v any) error {
	c, err := codecFor(path)
	if err != nil {
		return err
	}
	data, err := c.marshal(v)
	if err != nil {
		return fmt.Errorf("persist: marshal %s: %w", path, err)
	}

	return os.WriteFile(path, data, 0o644)
}

func load(path string, v any) error {
	c, err := codecFor(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("persist: read %s: %w", path, err)
	}
	if err := c.unmarshal(data, v); err != nil {
		return fmt.Errorf("persist: parse %s: %v: %w", path, err, ErrMalformed)
	}

	return nil
}

// SaveTrace writes tr as YAML (.yaml, .yml) or JSON (.json).
func SaveTrace(path string, tr *gcm.Trace) error {
	return save(path, tr)
}

// LoadTrace reads a trace written by SaveTrace.
func LoadTrace(path string) (*gcm.Trace, error) {
	var tr gcm.Trace
	if err := load(path, &tr); err != nil {
		return nil, err
	}

	return &tr, nil
}

// GraphReport is the serialized form of a correlation graph.
type GraphReport struct {
	N           int          `json:"n" yaml:"n"`
	Threshold   float64      `json:"threshold" yaml:"threshold"`
	Pivots      []int        `json:"pivots,omitempty" yaml:"pivots,omitempty"`
	Edges       []pivot.Edge `json:"edges" yaml:"edges"`
	Correlation [][]float64  `json:"correlation" yaml:"correlation"`
}

// NewGraphReport snapshots g (and optionally the pivots that produced it).
func NewGraphReport(g *pivot.Graph, pivots []int) *GraphReport {
	n := g.Correlation.Rows()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = append([]float64(nil), g.Correlation.RawRow(i)...)
	}
	edges := g.Edges()
	if edges == nil {
		edges = []pivot.Edge{}
	}

	return &GraphReport{N: n, Threshold: g.Threshold, Pivots: pivots, Edges: edges, Correlation: rows}
}

// SaveGraph writes the report of g as YAML or JSON by extension.
func SaveGraph(path string, g *pivot.Graph, pivots []int) error {
	return save(path, NewGraphReport(g, pivots))
}

// LoadGraphReport reads a report written by SaveGraph.
func LoadGraphReport(path string) (*GraphReport, error) {
	var rep GraphReport
	if err := load(path, &rep); err != nil {
		return nil, err
	}

	return &rep, nil
}

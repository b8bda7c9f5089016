// internal/orientation/reference.go
package orientation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// referenceSchema validates the standard-orientation reference JSON before it
// is decoded. Anatomy-view ground truth is derived from this file, so a
// malformed reference must be rejected at the boundary.
const referenceSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["filename", "label_info"],
		"properties": {
			"filename": {"type": "string", "minLength": 1},
			"label_info": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["class_name", "center_x", "center_y"],
					"properties": {
						"class_name": {"type": "string", "minLength": 1},
						"label": {"type": "integer", "minimum": 0},
						"center_x": {"type": "number"},
						"center_y": {"type": "number"}
					}
				}
			}
		}
	}
}`

type referenceEntry struct {
	Filename  string               `json:"filename"`
	LabelInfo []ReferenceStructure `json:"label_info"`
}

// ReferenceStructure is one structure's canonical center under unrotated,
// unflipped standard radiological orientation.
type ReferenceStructure struct {
	ClassName string  `json:"class_name"`
	Label     int     `json:"label,omitempty"`
	CenterX   float64 `json:"center_x"`
	CenterY   float64 `json:"center_y"`
}

type sliceCenters struct {
	byLabel map[int]Point
	byName  map[string]Point
}

// ReferenceTable maps slices to the standard-orientation centers of their
// labeled structures. Lookups prefer the anatomical label index and fall back
// to the canonical class name for entries that predate label indices.
type ReferenceTable struct {
	slices map[string]sliceCenters
}

// LoadReference reads and validates the standard-orientation reference JSON.
func LoadReference(path string) (*ReferenceTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading reference file: %w", err)
	}
	return ParseReference(raw)
}

// ParseReference builds a ReferenceTable from raw reference JSON.
func ParseReference(raw []byte) (*ReferenceTable, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(referenceSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("error validating reference JSON: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, fmt.Errorf("reference JSON failed validation: %s", strings.Join(errs, "; "))
	}

	var entries []referenceEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("error parsing reference JSON: %w", err)
	}

	table := &ReferenceTable{slices: make(map[string]sliceCenters, len(entries))}
	for _, entry := range entries {
		centers := sliceCenters{
			byLabel: make(map[int]Point, len(entry.LabelInfo)),
			byName:  make(map[string]Point, len(entry.LabelInfo)),
		}
		for _, info := range entry.LabelInfo {
			point := Point{X: info.CenterX, Y: info.CenterY}
			if info.Label > 0 {
				centers.byLabel[info.Label] = point
			}
			centers.byName[CanonicalName(info.ClassName)] = point
		}
		table.slices[entry.Filename] = centers
	}
	return table, nil
}

// Center returns the standard-orientation center for a structure in the given
// slice. The structure is identified by its anatomical label index, with the
// display name as fallback. Midline structures resolve the same way; no
// flip-sensitivity applies to the reference table.
func (t *ReferenceTable) Center(filename string, label int, name string) (Point, bool) {
	centers, ok := t.slices[filename]
	if !ok {
		return Point{}, false
	}
	if label > 0 {
		if point, ok := centers.byLabel[label]; ok {
			return point, true
		}
	}
	point, ok := centers.byName[CanonicalName(name)]
	return point, ok
}

// HasSlice reports whether the table carries centers for the given slice.
func (t *ReferenceTable) HasSlice(filename string) bool {
	_, ok := t.slices[filename]
	return ok
}

// CanonicalName converts a display name like "left kidney" into the reference
// table's key form "kidney_left". Midline organs keep their name with spaces
// replaced by underscores.
func CanonicalName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name
	}
	var side string
	if parts[0] == "left" || parts[0] == "right" {
		side = parts[0]
		parts = parts[1:]
	}
	base := strings.Join(parts, "_")
	if side == "" {
		return base
	}
	return base + "_" + side
}

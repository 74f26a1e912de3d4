package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mabhi256/classgraph/internal/model"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

func decode(r io.Reader, format Format, v any) error {
	switch format {
	case FormatYAML:
		err := yaml.NewDecoder(r).Decode(v)
		if err == io.EOF {
			return nil // Empty document
		}
		return err
	default:
		return json.NewDecoder(r).Decode(v)
	}
}

// DecodeClasses reads a list of class records, expanding compact vtable
// tuples into slots. Records are validated but not linked: dangling
// parents and duplicates are left for hierarchy.Build to report.
func DecodeClasses(r io.Reader, format Format) ([]model.ClassDescriptor, error) {
	var records []classRecord
	if err := decode(r, format, &records); err != nil {
		return nil, fmt.Errorf("failed to decode classes: %w", err)
	}

	classes := make([]model.ClassDescriptor, 0, len(records))
	for i, rec := range records {
		if err := recordValidate.Struct(rec); err != nil {
			return nil, fmt.Errorf("class[%d] %q: %w", i, rec.Name, err)
		}
		class, err := rec.descriptor()
		if err != nil {
			return nil, fmt.Errorf("class[%d] %q: %w", i, rec.Name, err)
		}
		classes = append(classes, class)
	}
	return classes, nil
}

// DecodePrototypes reads the shared prototype table. Position in the list
// is the index vtable slots refer to.
func DecodePrototypes(r io.Reader, format Format) ([]model.Prototype, error) {
	var records []prototypeRecord
	if err := decode(r, format, &records); err != nil {
		return nil, fmt.Errorf("failed to decode prototypes: %w", err)
	}

	prototypes := make([]model.Prototype, 0, len(records))
	for i, rec := range records {
		if err := recordValidate.Struct(rec); err != nil {
			return nil, fmt.Errorf("prototype[%d] %q: %w", i, rec.Name, err)
		}
		prototypes = append(prototypes, rec.prototype())
	}
	return prototypes, nil
}

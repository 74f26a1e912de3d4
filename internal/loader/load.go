// Package loader reads class and prototype snapshots from local JSON or
// YAML files and turns them into model values.
package loader

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mabhi256/classgraph/internal/model"
)

// Snapshot is everything read from disk for one session.
type Snapshot struct {
	Classes    []model.ClassDescriptor
	Prototypes []model.Prototype
}

type Option func(*options)

type options struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Load reads the classes file and, when prototypesPath is not empty, the
// prototype table. Slots pointing past the end of the table are kept and
// logged; they resolve to no prototype.
func Load(classesPath, prototypesPath string, opts ...Option) (*Snapshot, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	classes, err := readFile(classesPath, DecodeClasses)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("loaded classes", "path", classesPath, "count", len(classes))

	snap := &Snapshot{Classes: classes}
	if prototypesPath == "" {
		return snap, nil
	}

	snap.Prototypes, err = readFile(prototypesPath, DecodePrototypes)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("loaded prototypes", "path", prototypesPath, "count", len(snap.Prototypes))

	for _, class := range classes {
		for i, slot := range class.Vtable {
			if slot.Inline == nil && slot.PrototypeIndex >= len(snap.Prototypes) {
				o.logger.Warn("prototype index out of range",
					"class", class.Name, "slot", i, "index", slot.PrototypeIndex, "prototypes", len(snap.Prototypes))
			}
		}
	}
	return snap, nil
}

// LoadFile reads a classes file on its own.
func LoadFile(path string) ([]model.ClassDescriptor, error) {
	return readFile(path, DecodeClasses)
}

func readFile[T any](path string, decode func(io.Reader, Format) ([]T, error)) ([]T, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	out, err := decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mabhi256/classgraph/internal/model"
)

var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New()
	recordValidate.RegisterStructValidation(validateSlot, slotRecord{})
}

// validateSlot requires a table index unless the slot carries its own
// prototype.
func validateSlot(sl validator.StructLevel) {
	slot := sl.Current().Interface().(slotRecord)
	if slot.Prototype == nil && slot.PrototypeIndex < 0 {
		sl.ReportError(slot.PrototypeIndex, "PrototypeIndex", "prototypeIndex", "gte", "0")
	}
}

type classRecord struct {
	Name       string       `json:"name" yaml:"name" validate:"required"`
	Parent     *string      `json:"parent" yaml:"parent"`
	IsAbstract bool         `json:"isAbstract" yaml:"isAbstract"`
	Properties any          `json:"properties" yaml:"properties"`
	Vtable     []slotRecord `json:"vtable" yaml:"vtable" validate:"dive"`
}

// slotRecord is one vtable entry. On the wire it is either a positional
// tuple [prototypeIndex, isOverridden, isPureVirtual, mangledName?] or an
// object with the same fields.
type slotRecord struct {
	PrototypeIndex int              `json:"prototypeIndex" yaml:"prototypeIndex"`
	Prototype      *prototypeRecord `json:"prototype" yaml:"prototype"`
	IsOverridden   bool             `json:"isOverridden" yaml:"isOverridden"`
	IsPureVirtual  bool             `json:"isPureVirtual" yaml:"isPureVirtual"`
	MangledName    *string          `json:"mangledName" yaml:"mangledName"`
}

type prototypeRecord struct {
	Name           string            `json:"name" yaml:"name"`
	MangledName    string            `json:"mangledName" yaml:"mangledName"`
	ReturnType     string            `json:"returnType" yaml:"returnType" validate:"required"`
	Parameters     []parameterRecord `json:"parameters" yaml:"parameters" validate:"dive"`
	VtableIndex    int               `json:"vtableIndex" yaml:"vtableIndex" validate:"gte=0"`
	DeclaringClass string            `json:"declaringClass" yaml:"declaringClass"`
	ProtoIndex     int               `json:"protoIndex" yaml:"protoIndex" validate:"gte=0"`
}

type parameterRecord struct {
	Name *string `json:"name" yaml:"name"`
	Type string  `json:"type" yaml:"type" validate:"required"`
}

// slotObject has the fields of slotRecord without its decoding methods.
type slotObject slotRecord

func (s *slotRecord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		obj := slotObject{PrototypeIndex: model.NoPrototype}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*s = slotRecord(obj)
		return nil
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) < 3 || len(tuple) > 4 {
		return fmt.Errorf("slot tuple has %d elements, want 3 or 4", len(tuple))
	}

	targets := []any{&s.PrototypeIndex, &s.IsOverridden, &s.IsPureVirtual, &s.MangledName}
	for i, raw := range tuple {
		if err := json.Unmarshal(raw, targets[i]); err != nil {
			return fmt.Errorf("slot tuple element %d: %w", i, err)
		}
	}
	return nil
}

func (s *slotRecord) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		obj := slotObject{PrototypeIndex: model.NoPrototype}
		if err := value.Decode(&obj); err != nil {
			return err
		}
		*s = slotRecord(obj)
		return nil
	}

	if n := len(value.Content); n < 3 || n > 4 {
		return fmt.Errorf("line %d: slot tuple has %d elements, want 3 or 4", value.Line, n)
	}

	targets := []any{&s.PrototypeIndex, &s.IsOverridden, &s.IsPureVirtual, &s.MangledName}
	for i, node := range value.Content {
		if err := node.Decode(targets[i]); err != nil {
			return fmt.Errorf("slot tuple element %d: %w", i, err)
		}
	}
	return nil
}

func (r classRecord) descriptor() (model.ClassDescriptor, error) {
	class := model.ClassDescriptor{
		Name:       r.Name,
		IsAbstract: r.IsAbstract,
	}
	if r.Parent != nil {
		class.Parent = *r.Parent
	}

	props, err := properties(r.Properties)
	if err != nil {
		return model.ClassDescriptor{}, err
	}
	class.Properties = props

	if len(r.Vtable) > 0 {
		class.Vtable = make([]model.VirtualMethodSlot, len(r.Vtable))
		for i, s := range r.Vtable {
			class.Vtable[i] = s.slot()
		}
	}
	return class, nil
}

// properties keeps objects as they are and turns arrays into objects keyed
// by position. Scalars have no field names to show and are rejected.
func properties(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case []any:
		out := make(map[string]any, len(v))
		for i, item := range v {
			out[strconv.Itoa(i)] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("properties: want an object or array, got %T", raw)
	}
}

func (s slotRecord) slot() model.VirtualMethodSlot {
	slot := model.VirtualMethodSlot{
		PrototypeIndex: s.PrototypeIndex,
		IsOverridden:   s.IsOverridden,
		IsPureVirtual:  s.IsPureVirtual,
	}
	if s.MangledName != nil {
		slot.MangledName = *s.MangledName
	}
	if s.Prototype != nil {
		p := s.Prototype.prototype()
		slot.Inline = &p
	}
	return slot
}

func (r prototypeRecord) prototype() model.Prototype {
	p := model.Prototype{
		Name:           r.Name,
		MangledName:    r.MangledName,
		ReturnType:     r.ReturnType,
		VtableIndex:    r.VtableIndex,
		DeclaringClass: r.DeclaringClass,
		ProtoIndex:     r.ProtoIndex,
	}
	for _, param := range r.Parameters {
		mp := model.MethodParameter{Type: param.Type}
		if param.Name != nil {
			mp.Name = *param.Name
		}
		p.Parameters = append(p.Parameters, mp)
	}
	return p
}

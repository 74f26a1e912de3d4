package model

import (
	"strconv"
	"strings"
)

// UnknownType is the placeholder used by the extraction tooling when a
// return or parameter type could not be recovered.
const UnknownType = "???"

type MethodParameter struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// Prototype is the shared description of a virtual method, referenced by
// index from every vtable slot that denotes the same logical method.
type Prototype struct {
	Name           string            `json:"name"`
	MangledName    string            `json:"mangledName,omitempty"`
	ReturnType     string            `json:"returnType"`
	Parameters     []MethodParameter `json:"parameters"`
	VtableIndex    int               `json:"vtableIndex"`
	DeclaringClass string            `json:"declaringClass"`
	ProtoIndex     int               `json:"protoIndex"`
}

// DisplayName falls back to a positional name for methods only known as
// pure-virtual slots.
func (p Prototype) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return "vmethod" + strconv.Itoa(p.VtableIndex)
}

// Signature renders "name(type name, ...)". A parameter name is omitted when
// the type already spells it out.
func (p Prototype) Signature() string {
	var sb strings.Builder
	sb.WriteString(p.DisplayName())
	sb.WriteByte('(')
	for i, param := range p.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(param.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p MethodParameter) String() string {
	if p.Name == "" || strings.Contains(strings.ToLower(p.Type), strings.ToLower(p.Name)) {
		return p.Type
	}
	return p.Type + " " + p.Name
}

package vtable

import (
	"encoding/json"
	"strconv"

	"github.com/mabhi256/classgraph/internal/search"
)

type Status int

const (
	StatusDefined    Status = iota // Introduced by this class
	StatusOverridden               // Inherited slot with a new body here
	StatusInherited                // Inherited as is
)

func (s Status) String() string {
	switch s {
	case StatusDefined:
		return "defined"
	case StatusOverridden:
		return "overridden"
	default:
		return "inherited"
	}
}

func (rs ResolvedSlot) Status() Status {
	switch {
	case rs.DeclaringClass.Name == rs.Class:
		return StatusDefined
	case rs.IsOverriddenHere:
		return StatusOverridden
	default:
		return StatusInherited
	}
}

func (rs ResolvedSlot) Hint() string {
	var hint string
	switch rs.Status() {
	case StatusDefined:
		hint = "Defined in this class"
	case StatusOverridden:
		hint = "Overridden in this class"
	default:
		hint = "Inherited from parent class"
	}
	if rs.Slot.IsPureVirtual {
		hint += " (pure virtual)"
	}
	return hint
}

// MethodName is the prototype signature, or a positional placeholder when
// no prototype is known.
func (rs ResolvedSlot) MethodName() string {
	if rs.Prototype == nil {
		return "vmethod" + strconv.Itoa(rs.Index) + "()"
	}
	return rs.Prototype.Signature()
}

func (rs ResolvedSlot) ReturnType() string {
	if rs.Prototype == nil {
		return ""
	}
	return rs.Prototype.ReturnType
}

// GoToParent names the class to jump to for "go to parent implementation":
// the nearest concrete ancestor, else the declaring class when it is not
// the class itself.
func (rs ResolvedSlot) GoToParent() (string, bool) {
	if rs.ParentImplementation != nil {
		return rs.ParentImplementation.Name, true
	}
	if rs.DeclaringClass.Name != rs.Class {
		return rs.DeclaringClass.Name, true
	}
	return "", false
}

// OverridesQuery is the class-list query showing every override of the slot.
func (rs ResolvedSlot) OverridesQuery() search.Query {
	return search.Overrides(rs.Index, rs.Class)
}

func (rs ResolvedSlot) MarshalJSON() ([]byte, error) {
	out := struct {
		Index                   int      `json:"index"`
		Class                   string   `json:"class"`
		Method                  string   `json:"method"`
		ReturnType              string   `json:"returnType,omitempty"`
		Status                  string   `json:"status"`
		IsPureVirtual           bool     `json:"isPureVirtual"`
		IsOverriddenHere        bool     `json:"isOverriddenHere"`
		DeclaringClass          string   `json:"declaringClass"`
		ParentImplementation    string   `json:"parentImplementation,omitempty"`
		ChildrenImplementations []string `json:"childrenImplementations"`
	}{
		Index:                   rs.Index,
		Class:                   rs.Class,
		Method:                  rs.MethodName(),
		ReturnType:              rs.ReturnType(),
		Status:                  rs.Status().String(),
		IsPureVirtual:           rs.Slot.IsPureVirtual,
		IsOverriddenHere:        rs.IsOverriddenHere,
		DeclaringClass:          rs.DeclaringClass.Name,
		ChildrenImplementations: make([]string, 0, len(rs.ChildrenImplementations)),
	}
	if rs.ParentImplementation != nil {
		out.ParentImplementation = rs.ParentImplementation.Name
	}
	for _, c := range rs.ChildrenImplementations {
		out.ChildrenImplementations = append(out.ChildrenImplementations, c.Name)
	}
	return json.Marshal(out)
}

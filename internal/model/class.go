package model

// NoPrototype marks a slot whose prototype is carried inline instead of
// pointing into the shared prototype table.
const NoPrototype = -1

// ClassDescriptor describes one class of the catalogue.
// Descriptors are treated as immutable once handed to a store.
type ClassDescriptor struct {
	Name       string              `json:"name"`
	Parent     string              `json:"parent,omitempty"` // Empty for roots
	IsAbstract bool                `json:"isAbstract"`
	Properties map[string]any      `json:"properties,omitempty"` // Opaque, never interpreted
	Vtable     []VirtualMethodSlot `json:"vtable,omitempty"`     // Index-significant
}

func (c ClassDescriptor) IsRoot() bool {
	return c.Parent == ""
}

func (c ClassDescriptor) HasVtable() bool {
	return len(c.Vtable) > 0
}

// SlotAt returns the slot at index i, if the vtable is long enough.
func (c ClassDescriptor) SlotAt(i int) (VirtualMethodSlot, bool) {
	if i < 0 || i >= len(c.Vtable) {
		return VirtualMethodSlot{}, false
	}
	return c.Vtable[i], true
}

// VirtualMethodSlot is one entry of a class vtable.
type VirtualMethodSlot struct {
	PrototypeIndex int        `json:"prototypeIndex"`
	Inline         *Prototype `json:"prototype,omitempty"`
	IsOverridden   bool       `json:"isOverridden"`  // This class supplies a new body
	IsPureVirtual  bool       `json:"isPureVirtual"` // No body at this point of the chain
	MangledName    string     `json:"mangledName,omitempty"`
}

// Prototype returns the slot prototype, preferring the inline one.
// Returns nil when the index does not resolve in the table.
func (s VirtualMethodSlot) Prototype(table []Prototype) *Prototype {
	if s.Inline != nil {
		return s.Inline
	}
	if s.PrototypeIndex < 0 || s.PrototypeIndex >= len(table) {
		return nil
	}
	return &table[s.PrototypeIndex]
}

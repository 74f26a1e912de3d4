// Package vtable resolves, for every slot of a class vtable, which class
// declares the method, which ancestor provides the nearest concrete body and
// which descendants override it.
//
// Slots are aligned by position across an inheritance chain: slot i of a
// class and slot i of any ancestor that has one denote the same method.
package vtable

import (
	"github.com/mabhi256/classgraph/internal/hierarchy"
	"github.com/mabhi256/classgraph/internal/model"
)

// ResolvedSlot is one vtable entry of Class together with its relatives.
type ResolvedSlot struct {
	Index     int
	Class     string
	Slot      model.VirtualMethodSlot
	Prototype *model.Prototype // nil when unknown

	// DeclaringClass is the furthest ancestor, or Class itself, that has a
	// slot at Index: where the method was first introduced.
	DeclaringClass model.ClassDescriptor

	IsOverriddenHere bool

	// ParentImplementation is the nearest ancestor whose slot at Index is
	// not pure virtual, or nil.
	ParentImplementation *model.ClassDescriptor

	// ChildrenImplementations are the descendants, in pre-order, that
	// override the slot with a concrete body.
	ChildrenImplementations []model.ClassDescriptor
}

type Resolver struct {
	store      *hierarchy.Store
	prototypes []model.Prototype
}

// NewResolver returns a resolver over store. prototypes may be nil, in
// which case only inline prototypes are attached to resolved slots.
func NewResolver(store *hierarchy.Store, prototypes []model.Prototype) *Resolver {
	return &Resolver{store: store, prototypes: prototypes}
}

// Resolve is shorthand for a resolver without a prototype table.
func Resolve(class model.ClassDescriptor, store *hierarchy.Store) []ResolvedSlot {
	return NewResolver(store, nil).Resolve(class)
}

// Resolve returns one entry per slot of class.Vtable. A class without a
// vtable resolves to nothing. A class missing from the store is resolved
// as if it had no relatives.
func (r *Resolver) Resolve(class model.ClassDescriptor) []ResolvedSlot {
	size := len(class.Vtable)
	if size == 0 {
		return nil
	}

	parents := r.store.Parents(class.Name) // Nearest first
	children := r.store.Children(class.Name)

	declaring := make([]model.ClassDescriptor, size)
	parentImpl := make([]*model.ClassDescriptor, size)
	childImpls := make([][]model.ClassDescriptor, size)

	for i := range declaring {
		declaring[i] = class
	}

	for pi := range parents {
		parent := &parents[pi]
		for i, slot := range parent.Vtable {
			if i >= size {
				break
			}
			// Walking outwards, the last ancestor seen with the slot is the furthest
			declaring[i] = *parent
			if parentImpl[i] == nil && !slot.IsPureVirtual {
				parentImpl[i] = parent
			}
		}
	}

	for _, child := range children {
		for i, slot := range child.Vtable {
			if i >= size {
				break
			}
			if slot.IsOverridden && !slot.IsPureVirtual {
				childImpls[i] = append(childImpls[i], child)
			}
		}
	}

	resolved := make([]ResolvedSlot, size)
	for i, slot := range class.Vtable {
		resolved[i] = ResolvedSlot{
			Index:                   i,
			Class:                   class.Name,
			Slot:                    slot,
			Prototype:               slot.Prototype(r.prototypes),
			DeclaringClass:          declaring[i],
			IsOverriddenHere:        slot.IsOverridden,
			ParentImplementation:    parentImpl[i],
			ChildrenImplementations: childImpls[i],
		}
	}
	return resolved
}

// ResolveName resolves the class called name, reporting false when the
// store does not know it.
func (r *Resolver) ResolveName(name string) ([]ResolvedSlot, bool) {
	class, ok := r.store.Node(name)
	if !ok {
		return nil, false
	}
	return r.Resolve(class), true
}

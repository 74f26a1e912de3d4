package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotAt(t *testing.T) {
	c := ClassDescriptor{
		Name:   "Human",
		Vtable: []VirtualMethodSlot{{PrototypeIndex: 0}, {PrototypeIndex: 1, IsPureVirtual: true}},
	}

	slot, ok := c.SlotAt(1)
	assert.True(t, ok)
	assert.True(t, slot.IsPureVirtual)

	_, ok = c.SlotAt(2)
	assert.False(t, ok)
	_, ok = c.SlotAt(-1)
	assert.False(t, ok)

	assert.True(t, c.IsRoot())
	assert.True(t, c.HasVtable())
	assert.False(t, ClassDescriptor{Name: "Man", Parent: "Human"}.IsRoot())
}

func TestSlotPrototype(t *testing.T) {
	table := []Prototype{{Name: "speak", ProtoIndex: 0}}

	assert.Equal(t, "speak", VirtualMethodSlot{PrototypeIndex: 0}.Prototype(table).Name)
	assert.Nil(t, VirtualMethodSlot{PrototypeIndex: 3}.Prototype(table))
	assert.Nil(t, VirtualMethodSlot{PrototypeIndex: NoPrototype}.Prototype(table))

	inline := &Prototype{Name: "walk"}
	assert.Same(t, inline, VirtualMethodSlot{PrototypeIndex: NoPrototype, Inline: inline}.Prototype(table))
}

func TestSignature(t *testing.T) {
	tests := []struct {
		name  string
		proto Prototype
		want  string
	}{
		{
			name:  "no parameters",
			proto: Prototype{Name: "speak"},
			want:  "speak()",
		},
		{
			name: "named and unnamed parameters",
			proto: Prototype{Name: "greet", Parameters: []MethodParameter{
				{Name: "other", Type: "Human *"},
				{Type: "int"},
			}},
			want: "greet(Human * other, int)",
		},
		{
			name: "name already in type",
			proto: Prototype{Name: "setMan", Parameters: []MethodParameter{
				{Name: "man", Type: "Man const &"},
			}},
			want: "setMan(Man const &)",
		},
		{
			name:  "unnamed pure virtual",
			proto: Prototype{VtableIndex: 4, Parameters: []MethodParameter{{Type: UnknownType}}},
			want:  "vmethod4(???)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.proto.Signature())
		})
	}
}

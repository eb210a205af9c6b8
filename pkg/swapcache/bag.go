package swapcache

import "github.com/cespare/xxhash/v2"

// Bag is a map-backed Host: the front attribute view for types without
// dynamic fields. Hosts with real struct fields can implement Host directly
// instead.
type Bag struct {
	attrs map[string]any
}

func NewBag() *Bag {
	return &Bag{attrs: make(map[string]any)}
}

func (b *Bag) SetAttr(name string, value any) {
	b.attrs[name] = value
}

// GetAttr reads an attribute by name, reporting whether it is present.
func (b *Bag) GetAttr(name string) (any, bool) {
	v, ok := b.attrs[name]
	return v, ok
}

func (b *Bag) DelAttr(name string) {
	delete(b.attrs, name)
}

func (b *Bag) Len() int {
	return len(b.attrs)
}

// Names returns the currently set attribute names, unordered.
func (b *Bag) Names() []string {
	names := make([]string, 0, len(b.attrs))
	for name := range b.attrs {
		names = append(names, name)
	}
	return names
}

// DeriveKey hashes an arbitrary parameter blob into a stable uint64 cache
// key, for callers that key bundles by serialized parameter sets.
func DeriveKey(params []byte) uint64 {
	return xxhash.Sum64(params)
}

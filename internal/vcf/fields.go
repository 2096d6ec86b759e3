package vcf

import "fmt"

// Fields is a string-keyed collection that iterates in insertion order.
// Header payloads are order-sensitive: a contig or sample line must write
// its attributes back in the order they were read.
type Fields struct {
	keys   []string
	values map[string]string
}

// NewFields returns an empty Fields.
func NewFields() *Fields {
	return &Fields{values: make(map[string]string)}
}

// Set stores a value under key. Setting an existing key overwrites the value
// but keeps the key's original position.
func (f *Fields) Set(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for key and whether it was present.
func (f *Fields) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key is present.
func (f *Fields) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice is shared
// with the Fields and must not be modified.
func (f *Fields) Keys() []string {
	return f.keys
}

// Len returns the number of stored pairs.
func (f *Fields) Len() int {
	return len(f.keys)
}

// require returns the value for key or an error when it is absent.
func (f *Fields) require(key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", fmt.Errorf("value not found for key %q", key)
	}
	return v, nil
}

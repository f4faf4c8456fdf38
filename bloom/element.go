package bloom

import "fmt"

// Element is implemented by values that can be added to a filter. Values that
// are considered equal must return identical keys, and the key of a value
// must not change for as long as any filter containing it is in use.
type Element interface {
	BloomKey() []byte
}

type stringerElement struct {
	s fmt.Stringer
}

func (e stringerElement) BloomKey() []byte { return []byte(e.s.String()) }

// StringerElement adapts a fmt.Stringer to an Element keyed by the UTF-8 bytes
// of its String() result.
func StringerElement(s fmt.Stringer) Element {
	return stringerElement{s: s}
}

// AddString adds the UTF-8 bytes of s.
func (f *Filter) AddString(s string) {
	f.Add([]byte(s))
}

// ContainsString tests the UTF-8 bytes of s.
func (f *Filter) ContainsString(s string) bool {
	return f.Contains([]byte(s))
}

func (f *Filter) AddElement(e Element) {
	f.Add(e.BloomKey())
}

func (f *Filter) ContainsElement(e Element) bool {
	return f.Contains(e.BloomKey())
}

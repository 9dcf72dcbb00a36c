package sipmsg

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Headers is an ordered, case-insensitive SIP header collection. A header
// name maps to one value or, when the message repeats the name, to an
// ordered list preserving first-seen order. Lookup is always
// case-insensitive; marshaling renders single values as scalars and repeated
// values as arrays, keeping the one-or-many shape visible to consumers.
type Headers struct {
	names   []string            // lowercased, first-seen order
	display map[string]string   // lowercased -> original spelling
	values  map[string][]string // lowercased -> ordered values
}

// NewHeaders returns an empty header collection.
func NewHeaders() *Headers {
	return &Headers{
		display: make(map[string]string),
		values:  make(map[string][]string),
	}
}

// Add appends a value under name, accumulating repeats in order.
func (h *Headers) Add(name, value string) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	if _, seen := h.values[key]; !seen {
		h.names = append(h.names, key)
		h.display[key] = strings.TrimSpace(name)
	}
	h.values[key] = append(h.values[key], value)
}

// Get returns the first value recorded under name.
func (h *Headers) Get(name string) (string, bool) {
	vals := h.values[strings.ToLower(strings.TrimSpace(name))]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Values returns every value recorded under name, in first-seen order.
func (h *Headers) Values(name string) []string {
	return h.values[strings.ToLower(strings.TrimSpace(name))]
}

// Names returns the header names in first-seen order, original spelling.
func (h *Headers) Names() []string {
	out := make([]string, len(h.names))
	for i, key := range h.names {
		out[i] = h.display[key]
	}
	return out
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.names)
}

// MarshalJSON renders the mapping in first-seen order, single values as
// strings and repeated values as arrays.
func (h *Headers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range h.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(h.display[key])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		vals := h.values[key]
		var encoded []byte
		if len(vals) == 1 {
			encoded, err = json.Marshal(vals[0])
		} else {
			encoded, err = json.Marshal(vals)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

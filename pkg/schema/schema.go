package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Schema is an interned, laid-out record shape: a name plus an ordered
// list of fields, each assigned a byte offset within the record's fixed
// region. Schemas are immutable once constructed and safe for concurrent
// use. Construction through the package-level Intern cache means two
// Intern calls describing the same [name, fields] pair return the exact
// same *Schema pointer; New builds an uninterned copy.
type Schema struct {
	name   string
	fields []FieldDescriptor
	layout Layout
	id     uint64
	canon  []byte // canonical JSON, cached for ID derivation and Equal
	byName map[string]int // field name -> index into layout.Fields, built once
}

// New validates and lays out a schema without interning it. Most callers
// want Intern instead, which deduplicates identical schemas process-wide;
// New is exposed for callers that need a throwaway or test-only schema.
func New(name string, fields []FieldDescriptor) (*Schema, error) {
	if len(fields) == 0 {
		return nil, ErrEmptySchema
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if err := validateField(f); err != nil {
			return nil, err
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	cp := make([]FieldDescriptor, len(fields))
	copy(cp, fields)

	s := &Schema{
		name:   name,
		fields: cp,
		layout: computeLayout(cp),
	}

	canon, err := canonicalJSON(name, s.layout.Fields)
	if err != nil {
		return nil, err
	}
	s.canon = canon
	s.id = deriveID(canon)

	s.byName = make(map[string]int, len(s.layout.Fields))
	for i, f := range s.layout.Fields {
		s.byName[f.Name] = i
	}

	return s, nil
}

// Name returns the schema's declared name.
func (s *Schema) Name() string { return s.name }

// ID returns the schema's 64-bit content-derived identifier.
func (s *Schema) ID() uint64 { return s.id }

// Fields returns the laid-out fields in storage order (not input order).
func (s *Schema) Fields() []FieldLayout { return s.layout.Fields }

// FixedRegionLen returns the total width in bytes of the record's fixed
// region, before any variable-length tail payloads.
func (s *Schema) FixedRegionLen() int { return s.layout.FixedRegionLen }

// VariableFields returns the schema's variable-width fields in tail
// order — the order their payloads are laid out after the fixed region,
// which is also VarIndex order. A field's payload ends where the next
// entry's stored offset begins, or at the buffer's end for the last one.
func (s *Schema) VariableFields() []FieldLayout { return s.layout.Variable }

// Field looks up a field by name in O(1), returning ok=false if absent.
func (s *Schema) Field(name string) (FieldLayout, bool) {
	i, ok := s.byName[name]
	if !ok {
		return FieldLayout{}, false
	}
	return s.layout.Fields[i], true
}

// CanonicalJSON returns the schema's canonical [name, fields] encoding,
// the same bytes hashed to derive ID.
func (s *Schema) CanonicalJSON() []byte {
	return append([]byte(nil), s.canon...)
}

// Equal reports whether two schemas describe the identical [name, layout]
// pair — same name and the same fields once laid out. Declaration order
// matters only among fields of equal width, which keep their input order
// in the layout. Interned schemas can be compared by
// pointer; Equal exists for schemas built with New or decoded
// independently (e.g. on stream replay).
func (s *Schema) Equal(other *Schema) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return bytes.Equal(s.canon, other.canon)
}

func (s *Schema) String() string {
	return fmt.Sprintf("schema.Schema{name:%q id:%#x fields:%d}", s.name, s.id, len(s.fields))
}

// canonicalJSON produces the deterministic [name, fields] encoding used
// both for interning lookups and ID derivation. Fields are emitted in
// *layout* order, not caller declaration order: per spec.md §3.2/§8
// scenario 2, two schemas that declare the same fields in a different
// order but produce the same computed layout are the same record type,
// so their identity must be order-independent. Using layout order here
// (rather than the caller's input order) is what makes that hold: layout
// is computed purely from field width, so permuting the declaration
// order of fields of differing width yields an identical canonical
// encoding.
func canonicalJSON(name string, fields []FieldLayout) ([]byte, error) {
	type jsonField struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Length int    `json:"length,omitempty"`
	}
	out := make([]jsonField, len(fields))
	for i, f := range fields {
		out[i] = jsonField{Name: f.Name, Type: f.Kind.String(), Length: f.Length}
	}
	pair := []interface{}{name, out}
	return json.Marshal(pair)
}

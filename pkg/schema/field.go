package schema

import (
	"fmt"
	"regexp"

	"github.com/idleman/staabler/pkg/prim"
)

// reservedFieldName is carved out because every record reserves "buffer"
// for the method that exposes its backing byte slice.
const reservedFieldName = "buffer"

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// FieldDescriptor describes one named field of a Schema as given by the
// caller, before layout has assigned it a byte offset.
type FieldDescriptor struct {
	Name   string    `json:"name"`
	Kind   prim.Kind `json:"type"`
	Length int       `json:"length,omitempty"` // >1 for fixed arrays, 0/1 for scalars
}

// IsArray reports whether the field repeats Length > 1 times.
func (f FieldDescriptor) IsArray() bool {
	return f.Length > 1
}

// ElementCount normalizes Length so that a scalar field (Length 0 or 1)
// and an explicit single-element array both report 1.
func (f FieldDescriptor) ElementCount() int {
	if f.Length <= 0 {
		return 1
	}
	return f.Length
}

// byteWidth returns the total encoded width of a fixed-width field, or 0
// for variable-width fields (which occupy only an offset slot in the
// fixed region).
func (f FieldDescriptor) byteWidth() int {
	if !f.Kind.Fixed() {
		return 0
	}
	return f.Kind.BytesPerElement() * f.ElementCount()
}

func validateFieldName(name string) error {
	if name == reservedFieldName || !fieldNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
	}
	return nil
}

func validateField(f FieldDescriptor) error {
	if err := validateFieldName(f.Name); err != nil {
		return err
	}
	if f.Length < 0 {
		return fmt.Errorf("%w: field %q has negative length %d", ErrInvalidLength, f.Name, f.Length)
	}
	if f.IsArray() && !f.Kind.Fixed() {
		return fmt.Errorf("%w: field %q", ErrVariadicUnsupported, f.Name)
	}
	return nil
}

package schema

import "sort"

// variableSlotWidth is the width of the fixed-region slot a variable-width
// field occupies: a single uint32 byte offset into the tail region where
// its payload begins. No length word is stored — a payload's length is
// derived at read time from the next variable field's offset (or the
// buffer's end, for the last variable field). The slot, not the payload,
// participates in the fixed-width layout pass.
const variableSlotWidth = 4

// FieldLayout is a FieldDescriptor after layout has assigned it a position
// within the record's fixed region (or, for variable fields, an offset
// slot within that region plus an index into the tail).
type FieldLayout struct {
	FieldDescriptor

	ByteOffset  int // offset of the field's slot within the fixed region
	ByteWidth   int // width of the slot itself (variableSlotWidth for variable fields)
	InputIndex  int // position in the caller-supplied field list, for canonical JSON
	VarIndex    int // 0-based index among variable fields, -1 for fixed fields
}

// Layout is the computed placement of every field in a schema: the fixed
// region width, the variable fields in tail order, and each field's slot.
type Layout struct {
	Fields         []FieldLayout
	Variable       []FieldLayout // variable fields only, in VarIndex (tail) order
	FixedRegionLen int           // total bytes of the fixed region, 4-byte aligned
	VariableCount  int
}

// computeLayout places fields by descending byte width, breaking ties by
// input order, with every variable-width field pushed after every fixed
// field regardless of where it appeared in the input. Each offset is
// rounded up to the field's element width (variableSlotWidth for variable
// fields), the offset slots are grouped together at the end of the fixed
// region, and the region's length is padded to a multiple of 4.
func computeLayout(fields []FieldDescriptor) Layout {
	ordered := make([]FieldLayout, len(fields))
	for i, f := range fields {
		ordered[i] = FieldLayout{FieldDescriptor: f, InputIndex: i}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		wi, wj := sortWidth(ordered[i]), sortWidth(ordered[j])
		if wi != wj {
			return wi > wj
		}
		return ordered[i].InputIndex < ordered[j].InputIndex
	})

	offset := 0
	varIndex := 0
	for i := range ordered {
		f := &ordered[i]
		align := variableSlotWidth
		if f.Kind.Fixed() {
			f.ByteWidth = f.byteWidth()
			f.VarIndex = -1
			align = f.Kind.BytesPerElement()
		} else {
			f.ByteWidth = variableSlotWidth
			f.VarIndex = varIndex
			varIndex++
		}
		offset = (offset + align - 1) / align * align
		f.ByteOffset = offset
		offset += f.ByteWidth
	}
	offset = (offset + 3) / 4 * 4

	variable := make([]FieldLayout, 0, varIndex)
	for _, f := range ordered {
		if f.VarIndex >= 0 {
			variable = append(variable, f)
		}
	}

	return Layout{
		Fields:         ordered,
		Variable:       variable,
		FixedRegionLen: offset,
		VariableCount:  varIndex,
	}
}

// sortWidth orders fixed fields by their true encoded width and pushes
// every variable field below every fixed field, sorted last among
// themselves by input order only.
func sortWidth(f FieldLayout) int {
	if !f.Kind.Fixed() {
		return -1
	}
	return f.byteWidth()
}

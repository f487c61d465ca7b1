package framework

// VariableKind tags the encoding of a decision vector.
type VariableKind int

const (
	RealKind VariableKind = iota
	IntegerKind
	BinaryKind
	PermutationKind
)

func (k VariableKind) String() string {
	switch k {
	case RealKind:
		return "real"
	case IntegerKind:
		return "integer"
	case BinaryKind:
		return "binary"
	case PermutationKind:
		return "permutation"
	}
	return "unknown"
}

// Variables is a decision vector of fixed length. The concrete encoding is a
// capability exposed by Kind, operators type-assert on it.
type Variables interface {
	Kind() VariableKind
	Len() int
	Clone() Variables
}

// RealVariables represents a decision vector with real-valued variables.
type RealVariables struct {
	Values []float64
	// Bounds is shared between clones, it is never mutated.
	Bounds []Bounds
}

func NewRealVariables(values []float64, b []Bounds) *RealVariables {
	return &RealVariables{
		Values: values,
		Bounds: b,
	}
}

func (v *RealVariables) Kind() VariableKind { return RealKind }
func (v *RealVariables) Len() int           { return len(v.Values) }

func (v *RealVariables) Clone() Variables {
	values := make([]float64, len(v.Values))
	copy(values, v.Values)
	return &RealVariables{
		Values: values,
		Bounds: v.Bounds,
	}
}

// IntegerVariables uses an integer encoding where each gene lies in its IntBounds.
type IntegerVariables struct {
	Values []int
	Bounds []IntBounds
}

func NewIntegerVariables(values []int, b []IntBounds) *IntegerVariables {
	return &IntegerVariables{
		Values: values,
		Bounds: b,
	}
}

func (v *IntegerVariables) Kind() VariableKind { return IntegerKind }
func (v *IntegerVariables) Len() int           { return len(v.Values) }

func (v *IntegerVariables) Clone() Variables {
	values := make([]int, len(v.Values))
	copy(values, v.Values)
	return &IntegerVariables{
		Values: values,
		Bounds: v.Bounds,
	}
}

// BinaryVariables uses a binary encoding scheme, where each bit
// or group of bits can have a meaning in the context of the problem.
type BinaryVariables struct {
	Bits []bool
}

func NewBinaryVariables(bits []bool) *BinaryVariables {
	return &BinaryVariables{
		Bits: bits,
	}
}

func (v *BinaryVariables) Kind() VariableKind { return BinaryKind }
func (v *BinaryVariables) Len() int           { return len(v.Bits) }

func (v *BinaryVariables) Clone() Variables {
	bits := make([]bool, len(v.Bits))
	copy(bits, v.Bits)
	return &BinaryVariables{
		Bits: bits,
	}
}

// PermutationVariables holds an ordering of 0..n-1.
type PermutationVariables struct {
	Order []int
}

func NewPermutationVariables(order []int) *PermutationVariables {
	return &PermutationVariables{
		Order: order,
	}
}

func (v *PermutationVariables) Kind() VariableKind { return PermutationKind }
func (v *PermutationVariables) Len() int           { return len(v.Order) }

func (v *PermutationVariables) Clone() Variables {
	order := make([]int, len(v.Order))
	copy(order, v.Order)
	return &PermutationVariables{
		Order: order,
	}
}

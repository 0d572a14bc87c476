package stringop

import (
	"encoding/json"
	"fmt"
)

// opRecord is the persisted form of an Op.
type opRecord struct {
	Op       string     `json:"op"`
	I        int        `json:"i,omitempty"`
	J        int        `json:"j,omitempty"`
	D        int        `json:"d,omitempty"`
	A        string     `json:"a,omitempty"`
	B        string     `json:"b,omitempty"`
	Alphabet string     `json:"alphabet,omitempty"`
	Ops      []opRecord `json:"ops,omitempty"`
}

// Marshal encodes op canonically: equal ops produce equal bytes.
func Marshal(op Op) ([]byte, error) {
	s, err := toRecord(op)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// Unmarshal decodes an op produced by Marshal.
func Unmarshal(data []byte) (Op, error) {
	var s opRecord
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}
	return fromRecord(s)
}

func toRecord(op Op) (opRecord, error) {
	switch o := op.(type) {
	case Transposition:
		return opRecord{Op: "swap", I: o.I, J: o.J}, nil
	case Shift:
		return opRecord{Op: "shift", I: o.I, D: o.D, Alphabet: o.Alphabet}, nil
	case Exchange:
		return opRecord{Op: "exchange", A: string(o.A), B: string(o.B)}, nil
	case Rotation:
		return opRecord{Op: "rotate", D: o.D}, nil
	case Reflection:
		return opRecord{Op: "reflect"}, nil
	case Composite:
		children := make([]opRecord, len(o.Ops))
		for i, child := range o.Ops {
			c, err := toRecord(child)
			if err != nil {
				return opRecord{}, err
			}
			children[i] = c
		}
		return opRecord{Op: "chain", Ops: children}, nil
	default:
		return opRecord{}, fmt.Errorf("unknown operation %T", op)
	}
}

func fromRecord(s opRecord) (Op, error) {
	switch s.Op {
	case "swap":
		return Transposition{I: s.I, J: s.J}, nil
	case "shift":
		if len([]rune(s.Alphabet)) < 2 {
			return nil, fmt.Errorf("shift: alphabet %q too small", s.Alphabet)
		}
		return Shift{I: s.I, D: s.D, Alphabet: s.Alphabet}, nil
	case "exchange":
		a, b := []rune(s.A), []rune(s.B)
		if len(a) != 1 || len(b) != 1 {
			return nil, fmt.Errorf("exchange: want single symbols, got %q and %q", s.A, s.B)
		}
		return Exchange{A: a[0], B: b[0]}, nil
	case "rotate":
		return Rotation{D: s.D}, nil
	case "reflect":
		return Reflection{}, nil
	case "chain":
		ops := make([]Op, len(s.Ops))
		for i, child := range s.Ops {
			op, err := fromRecord(child)
			if err != nil {
				return nil, err
			}
			ops[i] = op
		}
		return Composite{Ops: ops}, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", s.Op)
	}
}

package ast

import "testing"

func TestNewSetsKindPositionAndChildren(t *testing.T) {
	left := Leaf(NumberLiteral, "1", 1, 1)
	right := Leaf(NumberLiteral, "2", 1, 5)
	n := New(Binary, 1, 3, left, right)
	if n.Kind != Binary || n.Line != 1 || n.Column != 3 {
		t.Fatalf("unexpected node header: %+v", n)
	}
	if len(n.Children) != 2 || n.Children[0] != left || n.Children[1] != right {
		t.Errorf("expected children to be exactly [left, right], got %+v", n.Children)
	}
}

func TestLeafCarriesValueAndNoChildren(t *testing.T) {
	n := Leaf(Identifier, "x", 2, 4)
	if n.Kind != Identifier || n.Value != "x" || n.Line != 2 || n.Column != 4 {
		t.Fatalf("unexpected leaf: %+v", n)
	}
	if n.Children != nil {
		t.Errorf("expected a leaf to have no children, got %+v", n.Children)
	}
}

func TestNewEmptyIsAPositionedPlaceholder(t *testing.T) {
	n := NewEmpty(3, 7)
	if n.Kind != Empty || n.Line != 3 || n.Column != 7 {
		t.Fatalf("unexpected empty node: %+v", n)
	}
}

func TestChildReturnsNilOutOfRange(t *testing.T) {
	n := New(Block, 0, 0, Leaf(NumberLiteral, "1", 0, 0))
	if n.Child(0) == nil {
		t.Fatal("expected Child(0) to return the sole child")
	}
	if n.Child(1) != nil {
		t.Errorf("expected Child(1) out of range to return nil, got %+v", n.Child(1))
	}
	if n.Child(-1) != nil {
		t.Errorf("expected Child(-1) to return nil, got %+v", n.Child(-1))
	}
}

func TestChildOnNilNodeReturnsNil(t *testing.T) {
	var n *Node
	if n.Child(0) != nil {
		t.Error("expected Child on a nil node to return nil rather than panic")
	}
}

func TestKindStringNamesAllKinds(t *testing.T) {
	if Program.String() != "Program" {
		t.Errorf("expected Program.String() == %q, got %q", "Program", Program.String())
	}
	if Type.String() != "Type" {
		t.Errorf("expected the last declared kind to still resolve, got %q", Type.String())
	}
}

func TestKindStringOutOfRangeIsUnknown(t *testing.T) {
	var k Kind = Type + 1
	if k.String() != "Unknown" {
		t.Errorf("expected an out-of-range Kind to stringify as Unknown, got %q", k.String())
	}
}

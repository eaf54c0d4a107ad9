package binarytree

import "fmt"

// Tag says how to read a child reference.
type Tag int

const (
	// Link is a structural child, or nil when there is no child.
	Link Tag = iota
	// Thread points at a predecessor (left) or successor (right), or nil at the
	// boundary of the ordering.
	Thread
)

func (t Tag) String() string {
	switch t {
	case Link:
		return "link"
	case Thread:
		return "thread"
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Node is what BinaryTree walks. Implementations must be comparable (pointer
// types in practice) and must report a missing child as an untyped nil.
type Node interface {
	LeftChild() Node
	RightChild() Node
	LeftTag() Tag
	RightTag() Tag
	SetLeftChild(child Node, tag Tag)
	SetRightChild(child Node, tag Tag)
	Visit()
}

// Vertex is a named Node. OnVisit and OnSetChild let a host react to the engine.
type Vertex struct {
	Name       string
	OnVisit    func(v *Vertex)
	OnSetChild func(v *Vertex, side Side, child Node, tag Tag)

	left, right       Node
	leftTag, rightTag Tag
}

func NewVertex(name string) *Vertex {
	return &Vertex{Name: name}
}

func (v *Vertex) String() string {
	return v.Name
}

func (v *Vertex) LeftChild() Node  { return v.left }
func (v *Vertex) RightChild() Node { return v.right }
func (v *Vertex) LeftTag() Tag     { return v.leftTag }
func (v *Vertex) RightTag() Tag    { return v.rightTag }

func (v *Vertex) SetLeftChild(child Node, tag Tag) {
	v.left, v.leftTag = normalize(child), tag
	if v.OnSetChild != nil {
		v.OnSetChild(v, Left, v.left, tag)
	}
}

func (v *Vertex) SetRightChild(child Node, tag Tag) {
	v.right, v.rightTag = normalize(child), tag
	if v.OnSetChild != nil {
		v.OnSetChild(v, Right, v.right, tag)
	}
}

func (v *Vertex) Visit() {
	if v.OnVisit != nil {
		v.OnVisit(v)
	}
}

// Child returns the reference and tag on one side of n.
func Child(n Node, side Side) (Node, Tag) {
	if side == Left {
		return n.LeftChild(), n.LeftTag()
	}
	return n.RightChild(), n.RightTag()
}

// SetChild sets one side of n.
func SetChild(n Node, side Side, child Node, tag Tag) {
	if side == Left {
		n.SetLeftChild(child, tag)
		return
	}
	n.SetRightChild(child, tag)
}

// normalize turns a typed nil *Vertex into an untyped nil so comparisons with
// nil keep working.
func normalize(n Node) Node {
	if v, ok := n.(*Vertex); ok && v == nil {
		return nil
	}
	return n
}

package binarytree

import (
	"fmt"
	"log/slog"

	"github.com/mholzen/threadtree/pkg/collections"
)

// threader carries the state of one threading pass. pre is the node threaded
// most recently.
type threader struct {
	tree      *BinaryTree
	withDelay bool
	pre       Node
	count     int
}

// reach visits n when the walk first gets to it.
func (th *threader) reach(n Node) {
	th.tree.visit(n, th.withDelay)
	th.count++
}

func (th *threader) thread(n Node) {
	if n.LeftChild() == nil {
		n.SetLeftChild(th.pre, Thread)
	}
	if th.pre != nil && th.pre.RightChild() == nil {
		th.pre.SetRightChild(n, Thread)
	}
	th.pre = n
}

// CreateThreadedTree turns every nil child into a thread to the predecessor
// (left) or successor (right) in the given order. Structural links are kept.
// Each node is visited when the walk first reaches it, so the visits come in
// preorder whatever the mode.
func (t *BinaryTree) CreateThreadedTree(mode Mode, withDelay bool) error {
	if !mode.Valid() {
		return fmt.Errorf("cannot thread tree: %w: %s", ErrUnsupportedMode, mode)
	}
	if err := t.requireUnthreaded("threading"); err != nil {
		return err
	}

	th := &threader{tree: t, withDelay: withDelay}
	s := collections.NewStack[Node](0)

	slog.Debug("threading tree", "mode", mode)
	if t.root != nil {
		switch mode {
		case PreOrder:
			th.preOrder(s, t.root)
		case InOrder:
			th.inOrder(s, t.root)
		case PostOrder:
			th.postOrder(s, t.root)
		}
		// the last node has no successor
		if th.pre != nil && th.pre.RightChild() == nil {
			th.pre.SetRightChild(nil, Thread)
		}
	}
	t.stackPeak = s.Peak()
	t.threaded, t.mode = true, mode
	slog.Debug("threaded tree", "mode", mode, "nodes", th.count)
	return nil
}

func (th *threader) preOrder(s *collections.Stack[Node], root Node) {
	s.Push(root)
	for !s.IsEmpty() {
		n := s.Pop()
		th.reach(n)
		th.thread(n)
		// threading may have turned an empty left into a thread; never descend one
		if n.RightTag() == Link && n.RightChild() != nil {
			s.Push(n.RightChild())
		}
		if n.LeftTag() == Link && n.LeftChild() != nil {
			s.Push(n.LeftChild())
		}
	}
}

func (th *threader) inOrder(s *collections.Stack[Node], root Node) {
	cur := root
	for cur != nil || !s.IsEmpty() {
		for ; cur != nil; cur = cur.LeftChild() {
			th.reach(cur)
			s.Push(cur)
		}
		n := s.Pop()
		th.thread(n)
		cur = n.RightChild()
	}
}

func (th *threader) postOrder(s *collections.Stack[Node], root Node) {
	cur := root
	for cur != nil || !s.IsEmpty() {
		for ; cur != nil; cur = cur.LeftChild() {
			th.reach(cur)
			s.Push(cur)
		}
		n := s.Top()
		if right := n.RightChild(); right != nil && right != th.pre {
			cur = right
			continue
		}
		s.Pop()
		th.thread(n)
	}
}

// ClearThreadedTree turns every thread back into an empty link. Only links are
// followed. It is safe to call on a tree that was never threaded.
func (t *BinaryTree) ClearThreadedTree() {
	s := collections.NewStack[Node](0)
	if t.root != nil {
		s.Push(t.root)
	}
	for !s.IsEmpty() {
		n := s.Pop()
		for _, side := range []Side{Right, Left} {
			child, tag := Child(n, side)
			if tag != Link {
				SetChild(n, side, nil, Link)
				continue
			}
			if child != nil {
				s.Push(child)
			}
		}
	}
	if t.threaded {
		slog.Debug("cleared threads", "mode", t.mode)
	}
	t.stackPeak = s.Peak()
	t.threaded = false
}

// ThreadedTraversal walks a tree threaded in mode without a stack.
func (t *BinaryTree) ThreadedTraversal(mode Mode, withDelay bool) error {
	switch mode {
	case PreOrder:
		return t.ThreadedPreOrder(withDelay)
	case InOrder:
		return t.ThreadedInOrder(withDelay)
	}
	return fmt.Errorf("cannot run threaded %s traversal: %w", mode, ErrUnsupportedMode)
}

// ThreadedPreOrder follows left links while they exist, then right pointers,
// which are either the right child or the preorder successor.
func (t *BinaryTree) ThreadedPreOrder(withDelay bool) error {
	if err := t.requireThreaded(PreOrder); err != nil {
		return err
	}
	p := t.root
	for p != nil {
		for p.LeftTag() == Link && p.LeftChild() != nil {
			t.visit(p, withDelay)
			p = p.LeftChild()
		}
		t.visit(p, withDelay)
		p = p.RightChild()
	}
	return nil
}

// ThreadedInOrder descends to the leftmost node, then follows successor threads
// until it reaches a right link, and repeats from there.
func (t *BinaryTree) ThreadedInOrder(withDelay bool) error {
	if err := t.requireThreaded(InOrder); err != nil {
		return err
	}
	p := t.root
	for p != nil {
		for p.LeftTag() == Link && p.LeftChild() != nil {
			p = p.LeftChild()
		}
		t.visit(p, withDelay)
		for p.RightTag() == Thread && p.RightChild() != nil {
			p = p.RightChild()
			t.visit(p, withDelay)
		}
		p = p.RightChild()
	}
	return nil
}

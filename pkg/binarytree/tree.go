package binarytree

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mholzen/threadtree/pkg/collections"
)

// DefaultDelay is the pause after each visit when a traversal runs with delay.
const DefaultDelay = 500 * time.Millisecond

// Pause blocks for roughly the given duration between visits.
type Pause func(time.Duration)

// NoPause is the headless Pause.
func NoPause(time.Duration) {}

type Option func(*BinaryTree)

func WithPause(pause Pause) Option {
	return func(t *BinaryTree) {
		if pause == nil {
			pause = NoPause
		}
		t.pause = pause
	}
}

func WithDelay(delay time.Duration) Option {
	return func(t *BinaryTree) {
		t.delay = delay
	}
}

// BinaryTree runs traversals and threading over caller-owned nodes. It never
// allocates or frees nodes. Calls must not overlap on the same tree.
type BinaryTree struct {
	root  Node
	pause Pause
	delay time.Duration

	threaded  bool
	mode      Mode
	stackPeak int
}

func New(root Node, opts ...Option) *BinaryTree {
	t := &BinaryTree{
		root:  normalize(root),
		pause: time.Sleep,
		delay: DefaultDelay,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *BinaryTree) Root() Node {
	return t.root
}

// Threaded reports the mode the tree is currently threaded in.
func (t *BinaryTree) Threaded() (Mode, bool) {
	return t.mode, t.threaded
}

// StackPeak is the deepest the explicit stack got during the last stack-based walk.
func (t *BinaryTree) StackPeak() int {
	return t.stackPeak
}

func (t *BinaryTree) visit(n Node, withDelay bool) {
	n.Visit()
	if withDelay {
		t.pause(t.delay)
	}
}

func (t *BinaryTree) requireUnthreaded(operation string) error {
	if t.threaded {
		slog.Debug("rejecting operation on threaded tree", "operation", operation, "mode", t.mode)
		return fmt.Errorf("cannot run %s: %w in %s mode (clear threads first)", operation, ErrThreaded, t.mode)
	}
	return nil
}

func (t *BinaryTree) requireThreaded(mode Mode) error {
	if !t.threaded {
		return fmt.Errorf("cannot run threaded %s traversal: %w", mode, ErrNotThreaded)
	}
	if t.mode != mode {
		return fmt.Errorf("cannot run threaded %s traversal: %w (%s)", mode, ErrModeMismatch, t.mode)
	}
	return nil
}

// Traversal runs the unthreaded traversal for mode.
func (t *BinaryTree) Traversal(mode Mode, withDelay bool) error {
	switch mode {
	case PreOrder:
		return t.PreOrder(withDelay)
	case InOrder:
		return t.InOrder(withDelay)
	case PostOrder:
		return t.PostOrder(withDelay)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
}

// PreOrder visits root, left, right.
func (t *BinaryTree) PreOrder(withDelay bool) error {
	if err := t.requireUnthreaded("preorder traversal"); err != nil {
		return err
	}
	s := collections.NewStack[Node](0)
	defer func() { t.stackPeak = s.Peak() }()

	if t.root == nil {
		return nil
	}
	s.Push(t.root)
	for !s.IsEmpty() {
		n := s.Pop()
		t.visit(n, withDelay)
		// right first so left pops first
		if right := n.RightChild(); right != nil {
			s.Push(right)
		}
		if left := n.LeftChild(); left != nil {
			s.Push(left)
		}
	}
	return nil
}

// InOrder visits left, root, right. A nil pushed at the end of each left spine
// marks where the descent stopped.
func (t *BinaryTree) InOrder(withDelay bool) error {
	if err := t.requireUnthreaded("inorder traversal"); err != nil {
		return err
	}
	s := collections.NewStack[Node](0)
	defer func() { t.stackPeak = s.Peak() }()

	if t.root == nil {
		return nil
	}
	s.Push(t.root)
	for !s.IsEmpty() {
		for n := s.Top(); n != nil; n = s.Top() {
			s.Push(n.LeftChild())
		}
		s.Pop()

		if !s.IsEmpty() {
			n := s.Pop()
			t.visit(n, withDelay)
			s.Push(n.RightChild())
		}
	}
	return nil
}

// PostOrder visits left, right, root. A node is visited once its right child is
// absent or was the last node visited.
func (t *BinaryTree) PostOrder(withDelay bool) error {
	if err := t.requireUnthreaded("postorder traversal"); err != nil {
		return err
	}
	s := collections.NewStack[Node](0)
	defer func() { t.stackPeak = s.Peak() }()

	if t.root == nil {
		return nil
	}
	var last Node
	s.Push(t.root)
	for !s.IsEmpty() {
		for n := s.Top(); n != nil; n = s.Top() {
			s.Push(n.LeftChild())
		}
		s.Pop()

		if s.IsEmpty() {
			continue
		}
		n := s.Top()
		if right := n.RightChild(); right == nil || right == last {
			s.Pop()
			t.visit(n, withDelay)
			last = n
			// stands in for the spine sentinel popped above
			s.Push(nil)
		} else {
			s.Push(right)
		}
	}
	return nil
}

// CountLeafNodes counts nodes without children. The tree must not be threaded
// since threads would be mistaken for children.
func (t *BinaryTree) CountLeafNodes() (int, error) {
	if err := t.requireUnthreaded("leaf count"); err != nil {
		return 0, err
	}
	s := collections.NewStack[Node](0)
	defer func() { t.stackPeak = s.Peak() }()

	if t.root == nil {
		return 0, nil
	}
	count := 0
	s.Push(t.root)
	for !s.IsEmpty() {
		n := s.Pop()
		left, right := n.LeftChild(), n.RightChild()
		if left == nil && right == nil {
			count++
			continue
		}
		if right != nil {
			s.Push(right)
		}
		if left != nil {
			s.Push(left)
		}
	}
	return count, nil
}

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mholzen/threadtree/pkg/binarytree"
)

var (
	ErrNoRoot        = errors.New("no root vertex")
	ErrRootExists    = errors.New("root vertex already exists")
	ErrUnknownVertex = errors.New("unknown vertex")
	ErrOccupied      = errors.New("child slot already occupied")
	ErrRunning       = errors.New("traversal in progress")
)

const (
	ActionTraverse       = "Start Traversal"
	ActionCreateTraverse = "Create & Traverse"
	ActionCreate         = "Create Tree"
)

// Event is a status message for whoever drives the session.
type Event struct {
	Tip       string
	LeafCount int
}

type Option func(*Session)

// WithTreeOptions configures every BinaryTree the session builds.
func WithTreeOptions(opts ...binarytree.Option) Option {
	return func(s *Session) {
		s.treeOptions = append(s.treeOptions, opts...)
	}
}

func WithObserver(observer func(Event)) Option {
	return func(s *Session) {
		s.observer = observer
	}
}

// ThreadEdge is a thread created while threading: From's Side now points at To.
type ThreadEdge struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Side binarytree.Side `json:"side"`
}

func (e ThreadEdge) String() string {
	return fmt.Sprintf("%s.%s ~> %s", e.From, e.Side, e.To)
}

// Run is the outcome of one Session.Run.
type Run struct {
	Mode     string       `json:"mode"`
	Threaded bool         `json:"threaded"`
	Visited  []string     `json:"visited"`
	Threads  []ThreadEdge `json:"threads,omitempty"`
}

// Session builds a tree one attachment at a time and runs traversals on it.
// Vertices are named V0, V1, ... in creation order.
type Session struct {
	vertices    []*binarytree.Vertex
	byName      map[string]*binarytree.Vertex
	tree        *binarytree.BinaryTree
	treeOptions []binarytree.Option
	observer    func(Event)

	mode     binarytree.Mode
	threaded bool
	running  bool
	leaves   int

	visited []string
	threads []ThreadEdge
}

func New(opts ...Option) *Session {
	s := &Session{byName: map[string]*binarytree.Vertex{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) newVertex() *binarytree.Vertex {
	v := binarytree.NewVertex(fmt.Sprintf("V%d", len(s.vertices)))
	v.OnVisit = s.onVisit
	v.OnSetChild = s.onSetChild
	s.vertices = append(s.vertices, v)
	s.byName[strings.ToUpper(v.Name)] = v
	return v
}

func (s *Session) onVisit(v *binarytree.Vertex) {
	s.visited = append(s.visited, v.Name)
}

func (s *Session) onSetChild(v *binarytree.Vertex, side binarytree.Side, child binarytree.Node, tag binarytree.Tag) {
	if tag != binarytree.Thread || child == nil {
		return
	}
	if to, ok := child.(*binarytree.Vertex); ok {
		s.threads = append(s.threads, ThreadEdge{From: v.Name, To: to.Name, Side: side})
	}
}

func (s *Session) tip(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Debug("session", "tip", msg)
	if s.observer != nil {
		s.observer(Event{Tip: msg, LeafCount: s.leaves})
	}
}

// AddRoot creates V0.
func (s *Session) AddRoot() (*binarytree.Vertex, error) {
	if s.running {
		return nil, ErrRunning
	}
	if len(s.vertices) > 0 {
		return nil, ErrRootExists
	}
	root := s.newVertex()
	s.tree = binarytree.New(root, s.treeOptions...)
	s.leaves = 1
	s.tip("Attach a left or right child to any vertex.")
	return root, nil
}

// Attach creates the next vertex and links it under parent.
func (s *Session) Attach(parent string, side binarytree.Side) (*binarytree.Vertex, error) {
	if s.running {
		return nil, ErrRunning
	}
	if s.tree == nil {
		return nil, ErrNoRoot
	}
	p, err := s.Vertex(parent)
	if err != nil {
		return nil, err
	}
	// threads from an earlier run are not children
	s.tree.ClearThreadedTree()
	if child, _ := binarytree.Child(p, side); child != nil {
		return nil, fmt.Errorf("cannot attach to %s %s: %w", p.Name, side, ErrOccupied)
	}

	v := s.newVertex()
	binarytree.SetChild(p, side, v, binarytree.Link)
	s.leaves = s.countLeaves()
	slog.Debug("attached vertex", "vertex", v.Name, "parent", p.Name, "side", side)
	s.tip("Continue attaching children to build the tree.")
	return v, nil
}

// Vertex looks a vertex up by name, ignoring case.
func (s *Session) Vertex(name string) (*binarytree.Vertex, error) {
	v, ok := s.byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVertex, name)
	}
	return v, nil
}

func (s *Session) Root() *binarytree.Vertex {
	if len(s.vertices) == 0 {
		return nil
	}
	return s.vertices[0]
}

func (s *Session) Len() int {
	return len(s.vertices)
}

// LeafCount is the number of leaves, as of the last change to the tree.
func (s *Session) LeafCount() int {
	return s.leaves
}

func (s *Session) countLeaves() int {
	count, err := s.tree.CountLeafNodes()
	if err != nil {
		slog.Warn("cannot count leaves", "error", err)
		return 0
	}
	return count
}

func (s *Session) SetMode(mode binarytree.Mode) {
	s.mode = mode
}

func (s *Session) Mode() binarytree.Mode {
	return s.mode
}

func (s *Session) SetThreaded(threaded bool) {
	s.threaded = threaded
}

func (s *Session) Threaded() bool {
	return s.threaded
}

// Action names what Run will do with the current settings.
func (s *Session) Action() string {
	switch {
	case !s.threaded:
		return ActionTraverse
	case s.mode == binarytree.PostOrder:
		return ActionCreate
	default:
		return ActionCreateTraverse
	}
}

func (s *Session) Tree() *binarytree.BinaryTree {
	return s.tree
}

// Run clears old threads, then either walks the tree or threads it and walks
// the threads. Threaded postorder only builds the threads.
func (s *Session) Run(withDelay bool) (Run, error) {
	result := Run{Mode: s.mode.String(), Threaded: s.threaded}
	if s.running {
		return result, ErrRunning
	}
	if s.tree == nil {
		return result, ErrNoRoot
	}
	if !s.mode.Valid() {
		return result, fmt.Errorf("%w: %s", binarytree.ErrUnsupportedMode, s.mode)
	}

	s.running = true
	defer func() { s.running = false }()
	s.tree.ClearThreadedTree()
	s.visited, s.threads = nil, nil

	if !s.threaded {
		s.tip("Executing binary tree traversal...")
		if err := s.tree.Traversal(s.mode, withDelay); err != nil {
			return result, fmt.Errorf("cannot traverse: %w", err)
		}
		result.Visited = s.visited
		s.tip("The traversal is done. Choose a different mode to try again.")
		return result, nil
	}

	s.tip("Creating a threaded binary tree...")
	if err := s.tree.CreateThreadedTree(s.mode, withDelay); err != nil {
		return result, fmt.Errorf("cannot create threaded tree: %w", err)
	}
	result.Threads = s.threads
	s.tip("The threaded binary tree creation is completed.")
	if s.mode == binarytree.PostOrder {
		result.Visited = s.visited
		s.tip("The traversal is done. Choose a different mode to try again.")
		return result, nil
	}

	s.visited = nil
	s.tip("Executing threaded binary tree traversal...")
	if err := s.tree.ThreadedTraversal(s.mode, withDelay); err != nil {
		return result, fmt.Errorf("cannot traverse threads: %w", err)
	}
	result.Visited = s.visited
	s.tip("The traversal is done. Choose a different mode to try again.")
	return result, nil
}

// Reset drops every vertex.
func (s *Session) Reset() error {
	if s.running {
		return ErrRunning
	}
	s.vertices = nil
	s.byName = map[string]*binarytree.Vertex{}
	s.tree = nil
	s.leaves = 0
	s.visited, s.threads = nil, nil
	s.tip("Add a root vertex to start a new tree.")
	return nil
}

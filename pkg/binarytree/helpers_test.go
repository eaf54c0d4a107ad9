package binarytree

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	names []string
}

func (r *recorder) visit(v *Vertex) {
	r.names = append(r.names, v.Name)
}

func (r *recorder) take() []string {
	names := r.names
	r.names = nil
	return names
}

func newVertices(r *recorder, n int) []*Vertex {
	vertices := make([]*Vertex, n)
	for i := range vertices {
		vertices[i] = NewVertex(fmt.Sprintf("V%d", i))
		vertices[i].OnVisit = r.visit
	}
	return vertices
}

func link(parent, left, right *Vertex) {
	parent.SetLeftChild(left, Link)
	parent.SetRightChild(right, Link)
}

// scenarioC is V0 with leaves V1 and V2.
func scenarioC(r *recorder) []*Vertex {
	v := newVertices(r, 3)
	link(v[0], v[1], v[2])
	return v
}

// sampleTree:
//
//	      V0
//	    /    \
//	  V1      V2
//	 /  \       \
//	V3   V4      V5
//	    /       /
//	   V6      V7
func sampleTree(r *recorder) []*Vertex {
	v := newVertices(r, 8)
	link(v[0], v[1], v[2])
	link(v[1], v[3], v[4])
	link(v[2], nil, v[5])
	link(v[4], v[6], nil)
	link(v[5], v[7], nil)
	return v
}

// leftChain is V0 -> V1 -> ... through left children only.
func leftChain(r *recorder, n int) []*Vertex {
	v := newVertices(r, n)
	for i := 0; i+1 < n; i++ {
		v[i].SetLeftChild(v[i+1], Link)
	}
	return v
}

// randomTree attaches n vertices one at a time to random free slots.
func randomTree(r *recorder, rng *rand.Rand, n int) []*Vertex {
	v := newVertices(r, n)
	for i := 1; i < n; i++ {
		for {
			parent := v[rng.IntN(i)]
			side := Side(rng.IntN(2))
			if child, _ := Child(parent, side); child == nil {
				SetChild(parent, side, v[i], Link)
				break
			}
		}
	}
	return v
}

type shape struct {
	left, right       string
	leftTag, rightTag Tag
}

func name(n Node) string {
	if n == nil {
		return ""
	}
	return n.(*Vertex).Name
}

func snapshot(vertices []*Vertex) map[string]shape {
	out := make(map[string]shape, len(vertices))
	for _, v := range vertices {
		out[v.Name] = shape{
			left:     name(v.LeftChild()),
			right:    name(v.RightChild()),
			leftTag:  v.LeftTag(),
			rightTag: v.RightTag(),
		}
	}
	return out
}

func leafCount(vertices []*Vertex) int {
	count := 0
	for _, v := range vertices {
		if v.LeftChild() == nil && v.RightChild() == nil {
			count++
		}
	}
	return count
}

// assertThreads checks a threaded snapshot against the unthreaded one: links
// are kept, and every empty left (right) is now a thread to the predecessor
// (successor) in order, or to nil at either end.
func assertThreads(t *testing.T, before, after map[string]shape, order []string) {
	t.Helper()
	for i, n := range order {
		was, got := before[n], after[n]

		if was.left == "" {
			want := ""
			if i > 0 {
				want = order[i-1]
			}
			assert.Equal(t, Thread, got.leftTag, "%s left tag", n)
			assert.Equal(t, want, got.left, "%s left thread", n)
		} else {
			assert.Equal(t, Link, got.leftTag, "%s left tag", n)
			assert.Equal(t, was.left, got.left, "%s left link", n)
		}

		if was.right == "" {
			want := ""
			if i+1 < len(order) {
				want = order[i+1]
			}
			assert.Equal(t, Thread, got.rightTag, "%s right tag", n)
			assert.Equal(t, want, got.right, "%s right thread", n)
		} else {
			assert.Equal(t, Link, got.rightTag, "%s right tag", n)
			assert.Equal(t, was.right, got.right, "%s right link", n)
		}
	}
}

package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Stack_PushPop(t *testing.T) {
	s := NewStack[int](0)
	require.True(t, s.IsEmpty())

	s.Push(1)
	s.Push(2)
	s.Push(3)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 3, s.Top())
	assert.Equal(t, 3, s.Pop())
	assert.Equal(t, 2, s.Pop())
	assert.Equal(t, 1, s.Pop())
	assert.True(t, s.IsEmpty())
}

func Test_Stack_EmptyReturnsZero(t *testing.T) {
	s := Stack[*int]{}
	assert.Nil(t, s.Pop())
	assert.Nil(t, s.Top())
	assert.Equal(t, 0, s.Len())
}

func Test_Stack_NilItemsAreValues(t *testing.T) {
	s := Stack[*int]{}
	s.Push(nil)
	require.False(t, s.IsEmpty())
	assert.Nil(t, s.Pop())
	assert.True(t, s.IsEmpty())
}

func Test_Stack_Peak(t *testing.T) {
	s := NewStack[string](4)
	s.Push("a")
	s.Push("b")
	s.Pop()
	s.Push("c")
	s.Push("d")
	s.Pop()
	s.Pop()

	assert.Equal(t, 3, s.Peak())
	assert.Equal(t, 1, s.Len())

	s.Reset()
	assert.Equal(t, 0, s.Peak())
	assert.True(t, s.IsEmpty())
}

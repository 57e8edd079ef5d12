package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryQueue(t *testing.T) {
	q := NewInMemoryQueue(2)

	assert.NoError(t, q.Enqueue("a"))
	assert.NoError(t, q.Enqueue("b"))
	assert.ErrorIs(t, q.Enqueue("c"), ErrQueueFull)
	assert.Equal(t, 2, q.Size())

	item, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "a", item)

	assert.NoError(t, q.Enqueue("d"))
	assert.Equal(t, []interface{}{"b", "d"}, q.ReadAllMessages())

	_, ok = q.Dequeue()
	assert.False(t, ok, "dequeue never blocks")
	assert.Nil(t, q.ReadAllMessages())

	assert.NoError(t, q.Enqueue("e"))
	q.ClearQueue()
	assert.Equal(t, 0, q.Size())
}

func TestNewInMemoryQueueDefaultSize(t *testing.T) {
	q := NewInMemoryQueue(0)
	assert.Equal(t, DefaultQueueSize, cap(q.ch))
}

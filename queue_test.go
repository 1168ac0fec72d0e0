// FILE: queue_test.go
package backlog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := newEntryQueue()

	for i := 0; i < 100; i++ {
		q.enqueue([]byte(fmt.Sprintf("entry-%d", i)))
	}

	drained := q.drainAll()
	require.Len(t, drained, 100)
	for i, e := range drained {
		assert.Equal(t, fmt.Sprintf("entry-%d", i), string(e))
	}
	assert.True(t, q.isEmpty())
}

func TestQueueDrainAllIsAtomic(t *testing.T) {
	q := newEntryQueue()
	q.enqueue([]byte("a"))
	q.enqueue([]byte("b"))

	first := q.drainAll()
	second := q.drainAll()

	assert.Len(t, first, 2)
	assert.Empty(t, second)
}

func TestQueueTryDequeueOne(t *testing.T) {
	q := newEntryQueue()

	_, ok := q.tryDequeueOne()
	assert.False(t, ok)

	q.enqueue([]byte("head"))
	q.enqueue([]byte("tail"))

	head, ok := q.tryDequeueOne()
	require.True(t, ok)
	assert.Equal(t, "head", string(head))
	assert.Equal(t, 1, q.size())
}

func TestQueueEnqueueAllStaysContiguous(t *testing.T) {
	q := newEntryQueue()

	block := [][]byte{[]byte("1"), []byte("2"), []byte("3")}
	q.enqueueAll(block)

	drained := q.drainAll()
	require.Len(t, drained, 3)
	assert.Equal(t, "1", string(drained[0]))
	assert.Equal(t, "3", string(drained[2]))
}

func TestQueueClear(t *testing.T) {
	q := newEntryQueue()
	for i := 0; i < 10; i++ {
		q.enqueue([]byte("x"))
	}

	dropped := q.clear()
	assert.Equal(t, 10, dropped)
	assert.True(t, q.isEmpty())
	assert.Zero(t, q.clear())
}

// TestQueueConcurrentProducers verifies the multi-producer contract: no
// entry is lost or corrupted under concurrent enqueue.
func TestQueueConcurrentProducers(t *testing.T) {
	q := newEntryQueue()

	const producers = 10
	const perProducer = 1000

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.enqueue([]byte(fmt.Sprintf("p%d-%d", p, i)))
			}
		}(p)
	}
	wg.Wait()

	drained := q.drainAll()
	require.Len(t, drained, producers*perProducer)

	// Per-producer relative order must be preserved
	lastSeen := make(map[int]int)
	for _, e := range drained {
		var p, i int
		_, err := fmt.Sscanf(string(e), "p%d-%d", &p, &i)
		require.NoError(t, err)
		if last, seen := lastSeen[p]; seen {
			assert.Equal(t, last+1, i, "producer %d entries out of order", p)
		}
		lastSeen[p] = i
	}
}

// TestQueueUnboundedGrowth pins the deliberate no-backpressure contract:
// enqueue keeps accepting entries regardless of depth.
func TestQueueUnboundedGrowth(t *testing.T) {
	q := newEntryQueue()

	for i := 0; i < 100_000; i++ {
		q.enqueue([]byte("entry"))
	}

	assert.Equal(t, 100_000, q.size())
}

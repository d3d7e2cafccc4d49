package id

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.GenerateString()
		require.Len(t, id, 26)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	for _, prefix := range []string{RequestPrefix, TracePrefix, SpanPrefix} {
		t.Run(prefix, func(t *testing.T) {
			id := gen.GenerateWithPrefix(prefix)
			parts := strings.SplitN(id, "_", 2)
			require.Len(t, parts, 2)
			assert.Equal(t, prefix, parts[0])
			assert.True(t, IsValid(parts[1]))
		})
	}
}

func TestTypedIDs(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewRequestID().String(), "req_"))
	assert.True(t, strings.HasPrefix(NewTraceID().String(), "trace_"))
	assert.True(t, strings.HasPrefix(NewSpanID().String(), "span_"))
}

func TestTempName(t *testing.T) {
	name := TempName("demo.project")

	assert.True(t, strings.HasPrefix(name, ".demo.project-"))
	assert.Equal(t, ".tmp", filepath.Ext(name))
	assert.NotEqual(t, name, TempName("demo.project"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(NewGenerator().GenerateString()))

	for _, id := range []string{"", "invalid", "1234567890", "zzzzzzzzzzzzzzzzzzzzzzzzzzz"} {
		assert.False(t, IsValid(id), id)
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Truncate(time.Millisecond)
	id := NewGenerator().GenerateString()
	after := time.Now()

	ts, err := Timestamp(id)
	require.NoError(t, err)
	assert.False(t, ts.Before(before))
	assert.False(t, ts.After(after))
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]bool)
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := gen.GenerateString()
				mu.Lock()
				ids[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 1000)
}

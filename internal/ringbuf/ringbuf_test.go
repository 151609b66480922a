package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_AppendAndTrim(t *testing.T) {
	var b Buffer
	b.AppendAll([]float64{0, 1, 2, 3, 4}, []complex128{0, 1, 2, 3, 4})

	assert.Equal(t, 5, b.Len())
	assert.Equal(t, 0.0, b.Front())
	assert.Equal(t, 4.0, b.Back())

	b.TrimBefore(2)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 2.0, b.Front())

	b.Append(5, 5)
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 5.0, b.Back())

	assert.Equal(t, []float64{2, 3, 4, 5}, b.Times())
}

func TestBuffer_TrimAllThenAppend(t *testing.T) {
	var b Buffer
	b.AppendAll([]float64{0, 1}, []complex128{0, 1})
	b.TrimBefore(10)
	assert.True(t, b.Empty())

	b.Append(10, 10)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 10.0, b.Front())
}

func TestBuffer_CompactsAfterHeavyTrim(t *testing.T) {
	var b Buffer
	for i := 0; i < 1000; i++ {
		b.Append(float64(i), complex(float64(i), 0))
	}
	b.TrimBefore(999)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 999.0, b.Front())
	assert.Equal(t, 0, b.head)
	assert.Len(t, b.t, 1)
}

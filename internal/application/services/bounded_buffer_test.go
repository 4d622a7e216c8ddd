package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedBuffer(t *testing.T) {
	b := NewBoundedBuffer(5)

	n, err := b.Write([]byte("abc"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, b.Truncated())

	n, err = b.Write([]byte("defgh"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n, "reports full length to avoid short writes")
	assert.Equal(t, "abcde", b.String())
	assert.True(t, b.Truncated())

	n, err = b.Write([]byte("zzz"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abcde", b.String())
}

func TestBoundedBuffer_DefaultLimit(t *testing.T) {
	b := NewBoundedBuffer(0)
	assert.Equal(t, DefaultOutputLimit, b.limit)
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New(0)

	_, ok := c.Get("caption:abc")
	assert.False(t, ok)

	c.Set("caption:abc", "a man riding a bicycle")

	got, ok := c.Get("caption:abc")
	require.True(t, ok)
	assert.Equal(t, "a man riding a bicycle", got)
}

func TestCache_Expiry(t *testing.T) {
	c := New(10 * time.Millisecond)

	c.Set("k", "v")
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

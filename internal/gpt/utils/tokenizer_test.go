package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTokenizer(t *testing.T) Tokenizer {
	t.Helper()

	tk, err := NewTokenzier()
	if err != nil {
		// cl100k_base is fetched on first use
		t.Skipf("cl100k_base encoding unavailable: %v", err)
	}
	return tk
}

func TestTokenizer_CountTokens(t *testing.T) {
	tk := newTestTokenizer(t)

	assert.Equal(t, 2, tk.CountTokens("hello world"))
	assert.Equal(t, 0, tk.CountTokens(""))
}

func TestTokenizer_Truncate(t *testing.T) {
	tk := newTestTokenizer(t)

	assert.Equal(t, "hello", tk.Truncate("hello world", 1))
	assert.Equal(t, "hello world", tk.Truncate("hello world", 2))
	assert.Equal(t, "hello world", tk.Truncate("hello world", 0))

	long := "The soup was cold and the waiter ignored us for twenty minutes."
	cut := tk.Truncate(long, 5)
	assert.Equal(t, 5, tk.CountTokens(cut))
	assert.Contains(t, long, cut)
}

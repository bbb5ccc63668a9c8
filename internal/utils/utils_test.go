package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash_StableAndPartSensitive(t *testing.T) {
	assert.Equal(t, Hash("est-1", "coffee"), Hash("est-1", "coffee"))
	assert.NotEqual(t, Hash("est-1", "coffee"), Hash("est-1c", "offee"))
	assert.Len(t, Hash("x"), 64)
}

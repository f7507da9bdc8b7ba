package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketAgotaLaRafaga(t *testing.T) {
	tb := NewTokenBucket(0.0001, 3)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestTokenBucketNoExcedeLaCapacidad(t *testing.T) {
	tb := NewTokenBucket(1000, 2)

	// Aunque la tasa sea alta, nunca acumula más que la capacidad
	tb.tokens = float64(tb.capacity)
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.LessOrEqual(t, tb.tokens, float64(tb.capacity))
}

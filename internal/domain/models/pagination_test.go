package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(25, 2, 10)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 3, p.TotalPages)

	// Sin filas hay cero páginas
	vacia := NewPagination(0, 1, 10)
	assert.Equal(t, 0, vacia.TotalPages)

	// Página exacta
	exacta := NewPagination(20, 1, 10)
	assert.Equal(t, 2, exacta.TotalPages)
}

package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Farmacia-api/internal/application/session"
)

func TestManager_UnCarritoPorOperador(t *testing.T) {
	m := session.NewManager()
	a := m.Cart("u-1")
	assert.Same(t, a, m.Cart("u-1"))
	assert.NotSame(t, a, m.Cart("u-2"))
	assert.Equal(t, 2, m.Active())

	m.End("u-1")
	assert.Equal(t, 1, m.Active())
	assert.NotSame(t, a, m.Cart("u-1"), "tras el logout el carrito es nuevo")
}

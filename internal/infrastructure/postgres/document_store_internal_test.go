package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

func TestBuildQuery_SinFiltros(t *testing.T) {
	sql, args := buildQuery("medicines", repository.Query{})
	assert.Equal(t, `SELECT id, data, created_at FROM documents WHERE collection = $1 ORDER BY seq ASC`, sql)
	assert.Equal(t, []any{"medicines"}, args)
}

func TestBuildQuery_FiltrosOrdenadosYLimite(t *testing.T) {
	sql, args := buildQuery("audit_logs", repository.Query{
		Equals:      map[string]string{"userId": "u1", "action": "LOGIN"},
		NewestFirst: true,
		Limit:       50,
	})
	assert.Equal(t,
		`SELECT id, data, created_at FROM documents WHERE collection = $1`+
			` AND data->>$2 = $3 AND data->>$4 = $5 ORDER BY seq DESC LIMIT $6`, sql)
	assert.Equal(t, []any{"audit_logs", "action", "LOGIN", "userId", "u1", 50}, args)
}

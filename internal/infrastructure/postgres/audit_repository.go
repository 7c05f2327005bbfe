package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/art-school-server/internal/application"
)

// AuditRepository appends auth events to the auth_audit table.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Record(ctx context.Context, ev application.AuditEvent) error {
	meta := ev.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO auth_audit (email, action, ip, user_agent, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ev.Email, ev.Action, ev.IP, ev.UserAgent, b, ev.At)
	return err
}

var _ application.AuditSink = (*AuditRepository)(nil)

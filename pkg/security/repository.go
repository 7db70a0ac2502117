package security

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// SecurityEventRepository writes audit events to the security_events table.
type SecurityEventRepository struct {
	db *pgxpool.Pool
}

func NewSecurityEventRepository(db *pgxpool.Pool) *SecurityEventRepository {
	return &SecurityEventRepository{db: db}
}

const insertEventQuery = `
	INSERT INTO security_events (
		event_type, service, environment, level,
		subject_type, subject_value, ip_address, user_agent,
		request_id, tags, details, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// PersistEvent stores a single security event.
func (r *SecurityEventRepository) PersistEvent(ctx context.Context, event SecurityEvent) error {
	details := []byte("null")
	if len(event.Details) > 0 {
		details, _ = json.Marshal(event.Details)
	}

	// The inet column rejects empty strings; nil keeps it NULL.
	var ipAddr interface{}
	if event.IP != "" {
		ipAddr = event.IP
	}

	_, err := r.db.Exec(ctx, insertEventQuery,
		string(event.Event),
		event.Service,
		event.Environment,
		event.Level,
		event.SubjectType,
		event.SubjectValue,
		ipAddr,
		event.UserAgent,
		event.RequestID,
		pq.Array(event.Tags),
		details,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("persist security event: %w", err)
	}
	return nil
}

// CreatePersistFunc adapts the repository to the SecurityLogger's sink.
func (r *SecurityEventRepository) CreatePersistFunc() func(context.Context, SecurityEvent) error {
	return r.PersistEvent
}

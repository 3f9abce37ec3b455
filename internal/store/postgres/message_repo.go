package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"collegeconnect/internal/domain"
)

const messageColumns = `m.id, m.sender_id, m.receiver_id, m.content, m.created_at,
	s.name, s.email, r.name, r.email`

const messageJoins = `
	FROM messages m
	JOIN users s ON s.id = m.sender_id
	JOIN users r ON r.id = m.receiver_id`

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

var _ domain.MessageRepository = (*MessageRepo)(nil)

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	m.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, m.SenderID, m.ReceiverID, m.Content, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepo) ListBetween(ctx context.Context, a, b int64) ([]*domain.Message, error) {
	query := `SELECT ` + messageColumns + messageJoins + `
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at ASC, m.id ASC
	`
	return r.queryMessages(ctx, query, a, b)
}

func (r *MessageRepo) ListInvolving(ctx context.Context, userID int64) ([]*domain.Message, error) {
	query := `SELECT ` + messageColumns + messageJoins + `
		WHERE m.sender_id = $1 OR m.receiver_id = $1
		ORDER BY m.created_at DESC, m.id DESC
	`
	return r.queryMessages(ctx, query, userID)
}

func (r *MessageRepo) queryMessages(ctx context.Context, query string, args ...any) ([]*domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var res []*domain.Message
	for rows.Next() {
		m := &domain.Message{}
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt,
			&m.Sender.Name, &m.Sender.Email, &m.Receiver.Name, &m.Receiver.Email,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Sender.ID = m.SenderID
		m.Receiver.ID = m.ReceiverID
		res = append(res, m)
	}
	return res, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sidehustle_server/internal/types"

	"github.com/google/uuid"
)

// CreateSession starts a new builder session for owner and returns its id.
func (s *Store) CreateSession(ctx context.Context, owner string) (string, error) {
	id := uuid.New().String()
	err := s.withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO builder_sessions (id, owner, created_at) VALUES (?, ?, ?)`,
			id, owner, s.now().UnixNano())
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to create builder session: %w", err)
	}
	return id, nil
}

// ListSessions returns owner's session ids, newest first.
func (s *Store) ListSessions(ctx context.Context, owner string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM builder_sessions WHERE owner = ? ORDER BY created_at DESC, rowid DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list builder sessions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan builder session: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SessionOwner returns the owner recorded for sessionID.
func (s *Store) SessionOwner(ctx context.Context, sessionID string) (string, error) {
	var owner string
	err := s.db.QueryRowContext(ctx, `SELECT owner FROM builder_sessions WHERE id = ?`, sessionID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up builder session: %w", err)
	}
	return owner, nil
}

// AppendMessage adds a message to the end of a session transcript.
func (s *Store) AppendMessage(ctx context.Context, sessionID string, role types.Role, content string) (types.BuilderMessage, error) {
	if !role.Valid() {
		return types.BuilderMessage{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	msg := types.BuilderMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	err := s.withRetry(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		var one int
		err = tx.QueryRowContext(ctx, `SELECT 1 FROM builder_sessions WHERE id = ?`, sessionID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		var seq int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM builder_messages WHERE session_id = ?`,
			sessionID).Scan(&seq); err != nil {
			return err
		}

		ts := s.now()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO builder_messages (session_id, seq, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
			sessionID, seq, string(role), content, ts.UnixNano()); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		msg.ID = seq
		msg.Timestamp = ts
		return nil
	})
	if errors.Is(err, ErrSessionNotFound) {
		return types.BuilderMessage{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return types.BuilderMessage{}, fmt.Errorf("failed to append builder message: %w", err)
	}
	return msg, nil
}

// SessionMessages returns a session transcript in the order it was written.
func (s *Store) SessionMessages(ctx context.Context, sessionID string) ([]types.BuilderMessage, error) {
	if _, err := s.SessionOwner(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, role, content, created_at FROM builder_messages WHERE session_id = ? ORDER BY seq`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load builder messages: %w", err)
	}
	defer rows.Close()

	messages := []types.BuilderMessage{}
	for rows.Next() {
		var (
			m    types.BuilderMessage
			role string
			ts   int64
		)
		if err := rows.Scan(&m.ID, &role, &m.Content, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan builder message: %w", err)
		}
		m.SessionID = sessionID
		m.Role = types.Role(role)
		m.Timestamp = time.Unix(0, ts)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

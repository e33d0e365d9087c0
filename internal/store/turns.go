package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nvelop/pitchdrill/internal/roleplay"
)

// AppendTurn writes one turn ordered after all existing turns of the
// session. The seq column makes ordering stable even when two turns land
// in the same clock tick.
func (s *Store) AppendTurn(ctx context.Context, sessionID uuid.UUID, role roleplay.Role, content string) (*roleplay.Turn, error) {
	turn := &roleplay.Turn{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO turns (id, session_id, seq, role, content, created_at)
		VALUES ($1, $2, (SELECT COALESCE(MAX(seq), 0) + 1 FROM turns WHERE session_id = $2), $3, $4, now())
		RETURNING created_at`,
		turn.ID, sessionID, role, content,
	)
	if err := row.Scan(&turn.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert turn: %w", err)
	}
	return turn, nil
}

// ListTurns returns the full ordered transcript of a session.
func (s *Store) ListTurns(ctx context.Context, sessionID uuid.UUID) ([]roleplay.Turn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM turns
		WHERE session_id = $1
		ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []roleplay.Turn
	for rows.Next() {
		var t roleplay.Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nvelop/pitchdrill/internal/catalog"
	"github.com/nvelop/pitchdrill/internal/roleplay"
)

// CreateSession inserts a session in the active state with an empty
// transcript. Catalog references are validated by the caller.
func (s *Store) CreateSession(ctx context.Context, personaID, scriptID uuid.UUID) (*roleplay.Session, error) {
	session := &roleplay.Session{
		ID:        uuid.New(),
		PersonaID: personaID,
		ScriptID:  scriptID,
		State:     roleplay.StateActive,
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO sessions (id, persona_id, script_id, state, started_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING started_at`,
		session.ID, personaID, scriptID, session.State,
	)
	if err := row.Scan(&session.StartedAt); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

// GetSession loads a session with its persona, script (including
// sections) and ordered transcript.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*roleplay.Session, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, persona_id, script_id, state, started_at, ended_at, feedback_summary
		FROM sessions WHERE id = $1`, id)

	var sess roleplay.Session
	err := row.Scan(&sess.ID, &sess.PersonaID, &sess.ScriptID, &sess.State, &sess.StartedAt, &sess.EndedAt, &sess.FeedbackSummary)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, roleplay.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if sess.Persona, err = s.GetPersona(ctx, sess.PersonaID); err != nil {
		return nil, err
	}
	if sess.Script, err = s.GetScript(ctx, sess.ScriptID); err != nil {
		return nil, err
	}
	if sess.Turns, err = s.ListTurns(ctx, id); err != nil {
		return nil, err
	}
	return &sess, nil
}

// ListSessions returns session summaries newest first. Persona and script
// carry only the display fields the list view needs.
func (s *Store) ListSessions(ctx context.Context) ([]roleplay.Session, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT s.id, s.persona_id, s.script_id, s.state, s.started_at, s.ended_at, s.feedback_summary,
		       p.name, p.avatar_emoji, sc.title
		FROM sessions s
		JOIN personas p ON p.id = s.persona_id
		JOIN scripts sc ON sc.id = s.script_id
		ORDER BY s.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []roleplay.Session
	for rows.Next() {
		var sess roleplay.Session
		persona := &catalog.Persona{}
		script := &catalog.Script{}
		err := rows.Scan(&sess.ID, &sess.PersonaID, &sess.ScriptID, &sess.State, &sess.StartedAt, &sess.EndedAt, &sess.FeedbackSummary,
			&persona.Name, &persona.AvatarEmoji, &script.Title)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		persona.ID = sess.PersonaID
		script.ID = sess.ScriptID
		sess.Persona = persona
		sess.Script = script
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// EndSession marks a session ended and stores the feedback summary.
// The engine holds the per-session lock and has already verified the
// session is active.
func (s *Store) EndSession(ctx context.Context, id uuid.UUID, endedAt time.Time, feedback *string) (*roleplay.Session, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE sessions SET state = $2, ended_at = $3, feedback_summary = $4
		WHERE id = $1 AND state = $5`,
		id, roleplay.StateEnded, endedAt, feedback, roleplay.StateActive,
	)
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, roleplay.ErrAlreadyEnded
	}
	return s.GetSession(ctx, id)
}

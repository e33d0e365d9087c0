package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nvelop/pitchdrill/internal/roleplay"
)

type sessionJSON struct {
	ID              uuid.UUID     `json:"id"`
	PersonaID       uuid.UUID     `json:"persona_id"`
	ScriptID        uuid.UUID     `json:"script_id"`
	State           string        `json:"state"`
	StartedAt       time.Time     `json:"started_at"`
	EndedAt         *time.Time    `json:"ended_at"`
	FeedbackSummary *string       `json:"feedback_summary"`
	PersonaName     string        `json:"persona_name,omitempty"`
	PersonaEmoji    string        `json:"persona_emoji,omitempty"`
	ScriptTitle     string        `json:"script_title,omitempty"`
	Messages        []messageJSON `json:"messages,omitempty"`
}

type messageJSON struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessageJSON(t roleplay.Turn) messageJSON {
	return messageJSON{
		ID:        t.ID,
		Role:      string(t.Role),
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
}

func toSessionJSON(sess *roleplay.Session, withMessages bool) sessionJSON {
	out := sessionJSON{
		ID:              sess.ID,
		PersonaID:       sess.PersonaID,
		ScriptID:        sess.ScriptID,
		State:           string(sess.State),
		StartedAt:       sess.StartedAt,
		EndedAt:         sess.EndedAt,
		FeedbackSummary: sess.FeedbackSummary,
	}
	if sess.Persona != nil {
		out.PersonaName = sess.Persona.Name
		out.PersonaEmoji = sess.Persona.AvatarEmoji
	}
	if sess.Script != nil {
		out.ScriptTitle = sess.Script.Title
	}
	if withMessages {
		out.Messages = make([]messageJSON, 0, len(sess.Turns))
		for _, t := range sess.Turns {
			out.Messages = append(out.Messages, toMessageJSON(t))
		}
	}
	return out
}

type startSessionRequest struct {
	PersonaID uuid.UUID `json:"persona_id"`
	ScriptID  uuid.UUID `json:"script_id"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PersonaID == uuid.Nil || req.ScriptID == uuid.Nil {
		writeDetail(w, http.StatusBadRequest, "persona_id and script_id are required")
		return
	}

	session, err := s.engine.StartSession(r.Context(), req.PersonaID, req.ScriptID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionJSON(session, true))
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.engine.Sessions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]sessionJSON, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionJSON(&sessions[i], false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "sessionID")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid session id")
		return
	}
	session, err := s.engine.Session(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionJSON(session, true))
}

type submitTurnRequest struct {
	Content string `json:"content"`
}

func (s *Server) submitTurn(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "sessionID")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid session id")
		return
	}

	var req submitTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeDetail(w, http.StatusBadRequest, "content is required")
		return
	}

	exchange, err := s.engine.SubmitTurn(r.Context(), id, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]messageJSON{
		"user_message": toMessageJSON(exchange.User),
		"ai_message":   toMessageJSON(exchange.Assistant),
	})
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "sessionID")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid session id")
		return
	}
	session, err := s.engine.EndSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionJSON(session, true))
}

package roleplay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nvelop/pitchdrill/internal/catalog"
	"github.com/nvelop/pitchdrill/internal/openai"
)

var turnParams = openai.Params{
	Temperature:     0.8,
	MaxTokens:       300,
	PresencePenalty: 0.3,
}

// Completer is the model dependency. The concrete provider is opaque to
// the core; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, messages []openai.Message, params openai.Params) (string, error)
}

// Store is the persistence the engine needs. Turns are append-only and
// ordered; sessions reference immutable catalog records.
type Store interface {
	GetPersona(ctx context.Context, id uuid.UUID) (*catalog.Persona, error)
	GetScript(ctx context.Context, id uuid.UUID) (*catalog.Script, error)

	CreateSession(ctx context.Context, personaID, scriptID uuid.UUID) (*Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	EndSession(ctx context.Context, id uuid.UUID, endedAt time.Time, feedback *string) (*Session, error)

	AppendTurn(ctx context.Context, sessionID uuid.UUID, role Role, content string) (*Turn, error)
}

// Publisher emits lifecycle events. Optional: a nil Publisher disables it.
type Publisher interface {
	Publish(subject string, data any) error
}

// Engine orchestrates sessions: lifecycle transitions, turn submission
// and end-of-session feedback.
type Engine struct {
	store  Store
	llm    Completer
	synth  *Synthesizer
	events Publisher
	logger *slog.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex // serializes writes per session
}

func NewEngine(store Store, llm Completer, synth *Synthesizer, events Publisher, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		llm:    llm,
		synth:  synth,
		events: events,
		logger: logger,
		locks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing writes for one session.
// Different sessions proceed fully in parallel.
func (e *Engine) sessionLock(id uuid.UUID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	return lock
}

// StartSession creates an active session after resolving both catalog
// references. Fails without side effects if either does not exist.
func (e *Engine) StartSession(ctx context.Context, personaID, scriptID uuid.UUID) (*Session, error) {
	persona, err := e.store.GetPersona(ctx, personaID)
	if err != nil {
		return nil, err
	}
	script, err := e.store.GetScript(ctx, scriptID)
	if err != nil {
		return nil, err
	}

	session, err := e.store.CreateSession(ctx, personaID, scriptID)
	if err != nil {
		return nil, err
	}
	session.Persona = persona
	session.Script = script

	e.logger.Info("session started",
		"session_id", session.ID,
		"persona", persona.Name,
		"script", script.Title,
	)
	e.publish(SubjectSessionStarted, SessionStarted{
		SessionID: session.ID,
		PersonaID: personaID,
		ScriptID:  scriptID,
		StartedAt: session.StartedAt,
	})

	return session, nil
}

// SubmitTurn runs one exchange: the user turn is written unconditionally
// before the model call, so a model failure never loses the human's own
// statement. On success the transcript grows by exactly two turns.
func (e *Engine) SubmitTurn(ctx context.Context, sessionID uuid.UUID, userText string) (*Exchange, error) {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != StateActive {
		return nil, ErrSessionClosed
	}

	userTurn, err := e.store.AppendTurn(ctx, sessionID, RoleUser, userText)
	if err != nil {
		return nil, err
	}

	// session.Turns was read before the append, so it is exactly the
	// history excluding the new user turn.
	messages := BuildMessages(session.Persona, session.Script, session.Turns, userText)

	reply, err := e.llm.Complete(ctx, messages, turnParams)
	if err != nil {
		upstream := classifyUpstream(err)
		e.logger.Error("model call failed",
			"session_id", sessionID,
			"quota", upstream.Quota,
			"error", err,
		)
		return nil, upstream
	}

	assistantTurn, err := e.store.AppendTurn(ctx, sessionID, RoleAssistant, reply)
	if err != nil {
		return nil, err
	}

	return &Exchange{User: *userTurn, Assistant: *assistantTurn}, nil
}

// EndSession performs the single active → ended transition. Feedback is
// synthesized only for non-empty transcripts; a synthesis failure stores
// the fallback string and the end still succeeds.
func (e *Engine) EndSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != StateActive {
		return nil, ErrAlreadyEnded
	}

	var feedback *string
	if len(session.Turns) > 0 {
		summary := e.synth.Synthesize(ctx, session.Turns)
		feedback = &summary
	}

	ended, err := e.store.EndSession(ctx, sessionID, time.Now().UTC(), feedback)
	if err != nil {
		return nil, err
	}

	// The session can never go active again, so its lock entry is no
	// longer needed. Late submitters get a fresh mutex and then fail the
	// state check.
	e.mu.Lock()
	delete(e.locks, sessionID)
	e.mu.Unlock()

	e.logger.Info("session ended",
		"session_id", sessionID,
		"turns", len(ended.Turns),
		"has_feedback", feedback != nil,
	)
	e.publish(SubjectSessionEnded, SessionEnded{
		SessionID:   sessionID,
		TurnCount:   len(ended.Turns),
		HasFeedback: feedback != nil,
		EndedAt:     *ended.EndedAt,
	})

	return ended, nil
}

// Session returns the current state and full transcript, read-only.
func (e *Engine) Session(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	return e.store.GetSession(ctx, sessionID)
}

// Sessions lists all sessions, newest first, without transcripts.
func (e *Engine) Sessions(ctx context.Context) ([]Session, error) {
	return e.store.ListSessions(ctx)
}

func (e *Engine) publish(subject string, data any) {
	if e.events == nil {
		return
	}
	if err := e.events.Publish(subject, data); err != nil {
		e.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// classifyUpstream maps a provider failure onto the caller-facing
// taxonomy: quota exhaustion gets its own kind since the remedy differs.
func classifyUpstream(err error) *UpstreamError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return newUpstreamError(apiErr.QuotaExhausted(), apiErr.Message)
	}
	return newUpstreamError(false, err.Error())
}

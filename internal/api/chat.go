package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"chat-backend/internal/chat"
	"chat-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// defaultSessionID is used when /api/chat is called without a session id.
// /api/reset deliberately has no such default and requires one.
const defaultSessionID = "default"

type ChatService struct {
	orchestrator *chat.Orchestrator
	store        chat.SessionStore
}

func NewChatService(orchestrator *chat.Orchestrator, store chat.SessionStore) *ChatService {
	return &ChatService{
		orchestrator: orchestrator,
		store:        store,
	}
}

func (s *ChatService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", RestHandler(s.Chat))
		r.Post("/reset", s.Reset)
		r.Post("/sessions", RestHandler(s.StartSession))
		r.Get("/sessions/{session_id}/history", RestHandler(s.GetHistory))
	})
}

// chatRequest keeps message as raw JSON so a non-string value is rejected with
// the same "message required" error as an absent one, before any external call.
type chatRequest struct {
	SessionID string          `json:"sessionId"`
	Message   json.RawMessage `json:"message"`
}

func (s *ChatService) Chat(r *http.Request) (any, error) {
	req, err := ParseRequest[chatRequest](r)
	if err != nil {
		return nil, err
	}

	var message string
	if len(req.Message) == 0 || json.Unmarshal(req.Message, &message) != nil || message == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "message required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	reply, err := s.orchestrator.Chat(r.Context(), sessionID, message)
	if err != nil {
		slog.Error("chat request failed", "session_id", sessionID, "error", err)
		return nil, err
	}

	return api.ChatResponse{Reply: reply}, nil
}

// Reset deletes a session's stored history. Its response envelope carries an
// ok flag rather than the usual error shape, and the session id is required.
func (s *ChatService) Reset(w http.ResponseWriter, r *http.Request) {
	var req api.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		WriteJsonResponse(w, http.StatusBadRequest, api.ResetResponse{Ok: false, Error: "sessionId required"})
		return
	}

	if err := s.orchestrator.Reset(r.Context(), req.SessionID); err != nil {
		slog.Error("error resetting session", "session_id", req.SessionID, "error", err)
		WriteJsonResponse(w, http.StatusInternalServerError, api.ResetResponse{Ok: false, Error: "failed to reset session"})
		return
	}

	WriteJsonResponse(w, http.StatusOK, api.ResetResponse{Ok: true})
}

// StartSession mints a fresh opaque session id for clients that do not want
// to choose their own. No state is created until the first chat turn.
func (s *ChatService) StartSession(r *http.Request) (any, error) {
	return api.StartSessionResponse{SessionID: uuid.New().String()}, nil
}

type historyQuery struct {
	Limit int `schema:"limit"`
}

func (s *ChatService) GetHistory(r *http.Request) (any, error) {
	sessionID := chi.URLParam(r, "session_id")
	if sessionID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "missing {session_id} url parameter")
	}

	params, err := ParseRequestQueryParams[historyQuery](r)
	if err != nil {
		return nil, err
	}

	history, err := s.store.Get(r.Context(), sessionID)
	if err != nil {
		return nil, err
	}

	if params.Limit > 0 && len(history) > params.Limit {
		history = history[len(history)-params.Limit:]
	}

	items := make([]api.ChatHistoryItem, len(history))
	for i, turn := range history {
		items[i] = api.ChatHistoryItem{Role: turn.Role, Content: turn.Content}
	}
	return items, nil
}

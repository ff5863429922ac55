package api

type ChatRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ResetRequest struct {
	SessionID string `json:"sessionId"`
}

type ResetResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type StartSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type ChatHistoryItem struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

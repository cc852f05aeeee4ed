package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"curator/repository"
)

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

type chatMetadata struct {
	ContextUsed int       `json:"contextUsed"`
	Degraded    bool      `json:"degraded"`
	Fallbacks   []string  `json:"fallbacks,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type chatData struct {
	Response       string       `json:"response"`
	ConversationID string       `json:"conversationId"`
	Metadata       chatMetadata `json:"metadata"`
	Sources        []string     `json:"sources"`
}

type chatResponse struct {
	Success bool     `json:"success"`
	Data    chatData `json:"data"`
}

type historyResponse struct {
	Success        bool              `json:"success"`
	ConversationID string            `json:"conversationId"`
	History        []repository.Turn `json:"history"`
}

type healthResponse struct {
	Status     string    `json:"status"`
	AgentReady bool      `json:"agentReady"`
	Timestamp  time.Time `json:"timestamp"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if !s.ready {
		writeError(w, http.StatusServiceUnavailable, "vector store not initialized; run the embedding builder first")
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	reply, err := s.responder.Respond(r.Context(), conversationID, req.Message)
	if err != nil {
		s.logger.Error("chat request failed",
			zap.String("conversation", conversationID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to answer the question")
		return
	}

	sources := reply.Sources
	if sources == nil {
		sources = []string{}
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Success: true,
		Data: chatData{
			Response:       reply.Response,
			ConversationID: conversationID,
			Metadata: chatMetadata{
				ContextUsed: reply.ContextUsed,
				Degraded:    reply.Degraded,
				Fallbacks:   reply.Fallbacks,
				Timestamp:   time.Now().UTC(),
			},
			Sources: sources,
		},
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	history := s.memory.History(id)
	if history == nil {
		history = []repository.Turn{}
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Success:        true,
		ConversationID: id,
		History:        history,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !s.ready {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     status,
		AgentReady: s.ready,
		Timestamp:  time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

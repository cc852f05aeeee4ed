// Package api exposes the chat service over HTTP.
package api

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"curator/chat"
)

type Server struct {
	responder *chat.Responder
	memory    chat.Memory
	ready     bool
	logger    *zap.Logger
}

func NewServer(responder *chat.Responder, memory chat.Memory, ready bool, logger *zap.Logger) *Server {
	return &Server{
		responder: responder,
		memory:    memory,
		ready:     ready,
		logger:    logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /conversations/{id}", s.handleHistory)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start blocks serving HTTP on the given port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("chat service listening", zap.String("addr", addr))

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Copyright 2025 Verity Labs
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

// Package server exposes the validation pipeline over HTTP.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/verity-labs/docvet/internal/pipeline"
	"github.com/verity-labs/docvet/internal/transport"
)

type ServerConfig struct {
	ListenHost string
	ListenPort int

	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
}

func DefaultConfig() ServerConfig {
	return ServerConfig{
		ListenPort: 8000,
		RedisAddr:  "localhost:6379",
	}
}

// Server serves synchronous validations directly and hands async ones to
// the worker through the task queue.
type Server struct {
	config    ServerConfig
	validator *pipeline.Validator

	store       transport.Store
	asynqClient *asynq.Client
}

func New(config ServerConfig, validator *pipeline.Validator) *Server {
	return &Server{
		config:    config,
		validator: validator,
	}
}

func (s *Server) Serve() error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     s.config.RedisAddr,
		Username: s.config.RedisUsername,
		Password: s.config.RedisPassword,
		DB:       s.config.RedisDB,
	})
	defer rdb.Close()

	s.store = transport.NewRedisStore(rdb)

	client := asynq.NewClientFromRedisClient(rdb)
	defer client.Close()
	s.asynqClient = client

	mux := http.NewServeMux()
	mux.HandleFunc("POST /validate-document", s.handleValidateDocument)
	mux.HandleFunc("POST /validate-record", s.handleValidateRecord)
	mux.HandleFunc("POST /validations", s.handleCreateValidation)
	mux.HandleFunc("GET /validations/{id}", s.handleGetValidation)
	mux.HandleFunc("GET /health", s.handleHealth)

	lisAddr := fmt.Sprintf("%s:%d", s.config.ListenHost, s.config.ListenPort)
	slog.Info("Server starting", "listener", lisAddr)
	if err := http.ListenAndServe(lisAddr, mux); err != nil {
		slog.Error("failed to serve", "err", err)
		return err
	}
	return nil
}

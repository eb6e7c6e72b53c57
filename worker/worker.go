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

// Package worker runs the background consumer for async validations.
package worker

import (
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/verity-labs/docvet/internal/pipeline"
	"github.com/verity-labs/docvet/internal/tasks"
	"github.com/verity-labs/docvet/internal/transport"
)

type WorkerConfig struct {
	Concurrency int

	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
}

func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		Concurrency: 10,
		RedisAddr:   "localhost:6379",
	}
}

type Worker struct {
	config    WorkerConfig
	validator *pipeline.Validator
}

func New(config WorkerConfig, validator *pipeline.Validator) *Worker {
	if config.Concurrency <= 0 {
		config.Concurrency = 10
	}
	return &Worker{
		config:    config,
		validator: validator,
	}
}

func (w *Worker) Start() error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     w.config.RedisAddr,
		Username: w.config.RedisUsername,
		Password: w.config.RedisPassword,
		DB:       w.config.RedisDB,
	})
	defer rdb.Close()

	asynqServer := asynq.NewServerFromRedisClient(
		rdb,
		asynq.Config{
			Concurrency: w.config.Concurrency,
		},
	)

	store := transport.NewRedisStore(rdb)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeValidate, tasks.NewTaskHandler(w.validator, store))

	return asynqServer.Run(mux)
}

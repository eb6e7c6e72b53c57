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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"github.com/verity-labs/docvet/internal/extract"
	"github.com/verity-labs/docvet/internal/pipeline"
	"github.com/verity-labs/docvet/internal/provider"
	"github.com/verity-labs/docvet/server"
	"github.com/verity-labs/docvet/worker"
)

const (
	ProgramName   = "docvet"
	Version       = "v0.1.0"
	RepositoryUrl = "github.com/verity-labs/docvet"
)

type serveCmd struct{}

type workCmd struct{}

type validateCmd struct {
	Path   string `arg:"positional,required" help:"path to the document or record to validate"`
	Record bool   `arg:"--record" help:"treat the file as a JSON onboarding record"`
}

type args struct {
	Serve    *serveCmd    `arg:"subcommand:serve" help:"start the docvet API server"`
	Work     *workCmd     `arg:"subcommand:work" help:"start the docvet worker"`
	Validate *validateCmd `arg:"subcommand:validate" help:"validate a single file and print the report"`

	Config string `arg:"--config,-c" default:"docvet.yaml" help:"path to the config file"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func (args) Epilogue() string {
	return fmt.Sprintf("For more information visit %s", RepositoryUrl)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: strings.ToLower(ProgramName)}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	if p.Subcommand() == nil {
		p.WriteUsage(os.Stdout)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	// provider API keys may live in a local .env file
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	conf, err := ReadConfig(args.Config)
	if err != nil {
		log.Fatalf("failed to read config %q: %v", args.Config, err)
	}

	validator, err := buildValidator(conf)
	if err != nil {
		log.Fatalf("failed to initialize validator: %v", err)
	}

	switch cmd := p.Subcommand().(type) {
	case *serveCmd:
		err = startServer(conf, validator)
	case *workCmd:
		err = startWorker(conf, validator)
	case *validateCmd:
		err = validateFile(cmd, validator)
	default:
		p.FailSubcommand("unrecognized command", p.SubcommandNames()...)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func buildValidator(conf *config) (*pipeline.Validator, error) {
	embedderType, err := provider.ParseEmbedderType(conf.Providers.Embedder)
	if err != nil {
		return nil, fmt.Errorf("embedder %q: %w", conf.Providers.Embedder, err)
	}
	embedder, err := provider.NewEmbedder(embedderType)
	if err != nil {
		return nil, err
	}

	completerType, err := provider.ParseCompleterType(conf.Providers.Completer)
	if err != nil {
		return nil, fmt.Errorf("completer %q: %w", conf.Providers.Completer, err)
	}
	completer, err := provider.NewCompleter(completerType)
	if err != nil {
		return nil, err
	}

	return pipeline.NewValidator(embedder, completer, pipelineParams(conf.Pipeline)), nil
}

// pipelineParams overlays configured values on the shipped defaults.
func pipelineParams(pc pipelineConfig) pipeline.Params {
	params := pipeline.DefaultParams()
	if pc.ChunkSize > 0 {
		params.ChunkSize = pc.ChunkSize
	}
	if pc.ChunkOverlap > 0 {
		params.ChunkOverlap = pc.ChunkOverlap
	}
	if pc.TopK > 0 {
		params.TopK = pc.TopK
	}
	if pc.MaxContextChars > 0 {
		params.MaxContextChars = pc.MaxContextChars
	}
	if pc.Query != "" {
		params.Query = pc.Query
	}
	if pc.CompletionModel != "" {
		params.CompletionModel = pc.CompletionModel
	}
	if pc.Temperature > 0 {
		params.Temperature = pc.Temperature
	}
	if pc.MaxTokens > 0 {
		params.MaxTokens = pc.MaxTokens
	}
	return params
}

func startServer(conf *config, validator *pipeline.Validator) error {
	sc := server.DefaultConfig()
	if conf.Server.ListenHost != "" {
		sc.ListenHost = conf.Server.ListenHost
	}
	if conf.Server.ListenPort > 0 {
		sc.ListenPort = conf.Server.ListenPort
	}
	sc.RedisAddr = conf.Transport.Addr
	sc.RedisUsername = conf.Transport.Username
	sc.RedisPassword = conf.Transport.Password
	sc.RedisDB = conf.Transport.DB

	srv := server.New(sc, validator)
	return srv.Serve()
}

func startWorker(conf *config, validator *pipeline.Validator) error {
	wc := worker.DefaultConfig()
	if conf.Worker.Concurrency > 0 {
		wc.Concurrency = conf.Worker.Concurrency
	}
	wc.RedisAddr = conf.Transport.Addr
	wc.RedisUsername = conf.Transport.Username
	wc.RedisPassword = conf.Transport.Password
	wc.RedisDB = conf.Transport.DB

	w := worker.New(wc, validator)
	return w.Start()
}

func validateFile(cmd *validateCmd, validator *pipeline.Validator) error {
	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var report any
	if cmd.Record {
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return fmt.Errorf("failed to parse record %q: %w", cmd.Path, err)
		}
		report, err = validator.ValidateRecord(ctx, fields)
		if err != nil {
			return err
		}
	} else {
		text, err := extract.Text(filepath.Base(cmd.Path), data)
		if err != nil {
			return err
		}
		report, err = validator.ValidateDocument(ctx, text)
		if err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

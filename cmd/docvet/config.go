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
	"errors"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
)

type redisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type serverConfig struct {
	ListenHost string `yaml:"listen_host"`
	ListenPort int    `yaml:"listen_port"`
}

type workerConfig struct {
	Concurrency int `yaml:"concurrency"`
}

type providersConfig struct {
	Embedder  string `yaml:"embedder"`
	Completer string `yaml:"completer"`
}

type pipelineConfig struct {
	ChunkSize       int    `yaml:"chunk_size"`
	ChunkOverlap    int    `yaml:"chunk_overlap"`
	TopK            int    `yaml:"top_k"`
	MaxContextChars int    `yaml:"max_context_chars"`
	Query           string `yaml:"query"`

	CompletionModel string  `yaml:"completion_model"`
	Temperature     float32 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
}

type config struct {
	Server serverConfig `yaml:"server"`
	Worker workerConfig `yaml:"worker"`

	Transport redisConfig `yaml:"transport"`

	Providers providersConfig `yaml:"providers"`
	Pipeline  pipelineConfig  `yaml:"pipeline"`
}

func defaultProviders() providersConfig {
	return providersConfig{
		Embedder:  "openrouter",
		Completer: "openrouter",
	}
}

// ReadConfig loads the YAML config at path. A missing file is not an
// error; everything falls back to defaults so the binary runs without
// any config at all.
func ReadConfig(path string) (*config, error) {
	conf := &config{
		Transport: redisConfig{Addr: "localhost:6379"},
		Providers: defaultProviders(),
	}

	file, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(file, conf); err != nil {
		return nil, err
	}

	if conf.Providers.Embedder == "" {
		conf.Providers.Embedder = "openrouter"
	}
	if conf.Providers.Completer == "" {
		conf.Providers.Completer = "openrouter"
	}
	if conf.Transport.Addr == "" {
		conf.Transport.Addr = "localhost:6379"
	}

	return conf, nil
}

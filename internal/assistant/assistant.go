// Package assistant provides the LLM-backed answer generation for health
// questions. The retrieval layer produces grounding context; this package
// only turns grounded evidence into prose and declines without it.
package assistant

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Provider generates a completion from a system prompt and a user message.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}

// Options configures the assistant.
type Options struct {
	Provider  string // "anthropic" or "openai"
	Model     string
	MaxTokens int
	APIKey    string
}

// NewProvider builds the configured provider. The API key is resolved from
// Options, then the environment, then .env files.
func NewProvider(opts Options) (Provider, error) {
	key := opts.APIKey
	switch strings.ToLower(opts.Provider) {
	case "", "anthropic":
		if key == "" {
			key = resolveKey("ANTHROPIC_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		return NewAnthropic(key, opts.Model, opts.MaxTokens), nil
	case "openai":
		if key == "" {
			key = resolveKey("OPENAI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return NewOpenAI(key, opts.Model, opts.MaxTokens), nil
	}
	return nil, fmt.Errorf("unknown assistant provider %q", opts.Provider)
}

// resolveKey checks the environment first, then loads .env from the current
// directory and the user's config directory.
func resolveKey(name string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}

	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vitalwatch", ".env"))
	}
	for _, p := range paths {
		if env, err := godotenv.Read(p); err == nil {
			if v := env[name]; v != "" {
				return v
			}
		}
	}
	return ""
}

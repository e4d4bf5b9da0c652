package fill

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestOpenAIProvider_ParseResponse(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key"})

	tests := []struct {
		name     string
		content  string
		expected int
		want     []string
		wantErr  bool
	}{
		{
			name:     "translations object",
			content:  `{"translations": ["Hola", "Adiós"]}`,
			expected: 2,
			want:     []string{"Hola", "Adiós"},
		},
		{
			name:     "object with differently named array",
			content:  `{"results": ["Hola"]}`,
			expected: 1,
			want:     []string{"Hola"},
		},
		{
			name:     "bare array",
			content:  `["Hola", "Adiós"]`,
			expected: 2,
			want:     []string{"Hola", "Adiós"},
		},
		{
			name:     "count mismatch",
			content:  `{"translations": ["Hola"]}`,
			expected: 2,
			wantErr:  true,
		},
		{
			name:     "not JSON",
			content:  "Sure! Here are the translations:",
			expected: 1,
			wantErr:  true,
		},
		{
			name:     "non-string elements coerced",
			content:  `{"translations": ["Hola", 42]}`,
			expected: 2,
			want:     []string{"Hola", "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.parseResponse(tt.content, tt.expected)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseResponse should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseResponse failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseResponse = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenAIProvider_EmptyBatch(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key"})

	got, err := p.Translate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Translate of empty batch failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Translate = %v, want empty", got)
	}
}

func TestOpenAIProvider_SystemPrompt(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key"})

	prompt := p.buildSystemPrompt(Request{
		SourceLang: "en",
		TargetLang: "es",
		Context:    "Discord moderation bot",
		Glossary:   map[string]string{"guild": "servidor"},
	})

	for _, want := range []string{"English", "Spanish", "Discord moderation bot", "servidor", "{count}"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt should mention %q", want)
		}
	}
}

func TestOpenAIProvider_UserMessageIncludesKeys(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key"})

	msg := p.buildUserMessage(Request{
		Texts: []string{"Pong!"},
		Keys:  []string{"misc.ping"},
	})

	if !strings.Contains(msg, "misc.ping") {
		t.Errorf("user message should carry the key as a hint, got %q", msg)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("rate limit exceeded"), true},
		{errors.New("request timeout"), true},
		{errors.New("status 429"), true},
		{errors.New("status 503 service unavailable"), true},
		{errors.New("invalid api key"), false},
		{errors.New("model not found"), false},
	}

	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

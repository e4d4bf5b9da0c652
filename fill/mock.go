package fill

import (
	"context"
	"fmt"
)

// MockProvider is a mock translation backend for testing.
type MockProvider struct {
	Translations map[string]string // Source text to translation
	CallCount    int               // Number of times Translate was called
	LastRequest  *Request          // Last request received
	Err          error             // Error returned instead of translating
}

// NewMockProvider creates a mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":                          "Hola",
			"Deleting {count} messages":      "Borrando {count} mensajes",
			"You need the {perm} permission": "Necesitas el permiso {perm}",
		},
	}
}

// Translate returns mock translations, bracketing unknown source strings.
func (m *MockProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else {
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}
	return results, nil
}

// Reset clears the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements Provider.
var _ Provider = (*MockProvider)(nil)

package catalog

import (
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/shopspring/decimal"
)

// defaultEntry is a compact literal form of a built-in catalog entry.
type defaultEntry struct {
	id, name, provider string
	input, output      string
	contextWindow      int
	features           []string
	multimodal         bool
	vision             bool
	audio              bool
}

// Prices are list prices in USD per million tokens at the time the list was
// compiled. They are a starting point, not a source of truth.
var defaultEntries = []defaultEntry{
	{"gpt-4o", "GPT-4o", "openai", "2.5", "10", 128000, []string{"tools", "json", "vision", "streaming"}, true, true, true},
	{"gpt-4o-mini", "GPT-4o mini", "openai", "0.15", "0.6", 128000, []string{"tools", "json", "vision"}, true, true, false},
	{"gpt-4.1", "GPT-4.1", "openai", "2", "8", 1047576, []string{"tools", "json", "vision"}, true, true, false},
	{"o3-mini", "o3-mini", "openai", "1.1", "4.4", 200000, []string{"tools", "reasoning"}, false, false, false},
	{"claude-3-5-sonnet", "Claude 3.5 Sonnet", "anthropic", "3", "15", 200000, []string{"tools", "vision", "computer-use"}, true, true, false},
	{"claude-3-5-haiku", "Claude 3.5 Haiku", "anthropic", "0.8", "4", 200000, []string{"tools"}, false, false, false},
	{"claude-3-opus", "Claude 3 Opus", "anthropic", "15", "75", 200000, []string{"tools", "vision"}, true, true, false},
	{"gemini-1.5-pro", "Gemini 1.5 Pro", "google", "1.25", "5", 2000000, []string{"tools", "vision", "audio", "video"}, true, true, true},
	{"gemini-1.5-flash", "Gemini 1.5 Flash", "google", "0.075", "0.3", 1000000, []string{"tools", "vision", "audio"}, true, true, true},
	{"mistral-large", "Mistral Large", "mistral", "2", "6", 128000, []string{"tools", "json"}, false, false, false},
	{"llama-3.1-70b", "Llama 3.1 70B", "meta", "0.88", "0.88", 128000, nil, false, false, false},
	{"deepseek-chat", "DeepSeek V3", "deepseek", "0.27", "1.1", 64000, []string{"tools", "json"}, false, false, false},
}

// Defaults returns a fresh copy of the built-in catalog.
func Defaults() []pricing.ModelCatalogEntry {
	out := make([]pricing.ModelCatalogEntry, len(defaultEntries))
	for i, d := range defaultEntries {
		features := make([]string, len(d.features))
		copy(features, d.features)
		out[i] = pricing.ModelCatalogEntry{
			ID:                    d.id,
			Name:                  d.name,
			Provider:              d.provider,
			InputPricePerMillion:  decimal.RequireFromString(d.input),
			OutputPricePerMillion: decimal.RequireFromString(d.output),
			ContextWindow:         d.contextWindow,
			Currency:              "USD",
			Features:              features,
			IsMultiModal:          d.multimodal,
			IsVisionEnabled:       d.vision,
			IsAudioEnabled:        d.audio,
		}
	}
	return out
}

// IsDefault reports whether id names a built-in entry.
func IsDefault(id string) bool {
	for _, d := range defaultEntries {
		if d.id == id {
			return true
		}
	}
	return false
}

// Package tokenizer estimates token counts from sample text so usage can be
// derived from a representative prompt instead of guessed.
package tokenizer

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts tokens for sample prompts and conversations.
type Tokenizer interface {
	// CountTokens counts tokens in a text string for a given model.
	CountTokens(text string, model string) (int, error)

	// CountMessages counts tokens for a slice of chat messages.
	CountMessages(messages []Message, model string) (int, error)

	// Estimate derives per-query usage from sample text.
	Estimate(req EstimateRequest) (*Estimate, error)
}

// Encoding names used by tiktoken.
const (
	EncodingCL100kBase = "cl100k_base" // GPT-4, GPT-3.5-turbo
	EncodingO200kBase  = "o200k_base"  // GPT-4o, GPT-4.1, o-series
)

// encodingRule maps a model id prefix to an encoding.
type encodingRule struct {
	prefix   string
	encoding string
}

// encodingRules is checked in order, so more specific prefixes come first.
// Non-OpenAI models have no public tokenizer here and fall back to
// cl100k_base, which is close enough for cost estimates.
var encodingRules = []encodingRule{
	{"text-embedding", EncodingCL100kBase},
	{"gpt-4o", EncodingO200kBase},
	{"gpt-4.1", EncodingO200kBase},
	{"gpt-3.5", EncodingCL100kBase},
	{"gpt-4", EncodingCL100kBase},
	{"chatgpt", EncodingO200kBase},
	{"o1", EncodingO200kBase},
	{"o3", EncodingO200kBase},
	{"o4", EncodingO200kBase},
}

// TiktokenTokenizer implements Tokenizer using tiktoken-go.
type TiktokenTokenizer struct {
	mu        sync.RWMutex
	encodings map[string]*tiktoken.Tiktoken
}

// New creates a new TiktokenTokenizer.
func New() *TiktokenTokenizer {
	return &TiktokenTokenizer{
		encodings: make(map[string]*tiktoken.Tiktoken),
	}
}

// EncodingFor returns the encoding name used to count tokens for model.
func EncodingFor(model string) string {
	lower := strings.ToLower(model)
	for _, r := range encodingRules {
		if strings.HasPrefix(lower, r.prefix) {
			return r.encoding
		}
	}
	return EncodingCL100kBase
}

// encoder returns the loaded encoding for a model, loading it once.
func (t *TiktokenTokenizer) encoder(model string) (*tiktoken.Tiktoken, error) {
	name := EncodingFor(model)

	t.mu.RLock()
	enc, ok := t.encodings[name]
	t.mu.RUnlock()
	if ok {
		return enc, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another goroutine may have loaded it while we waited.
	if enc, ok = t.encodings[name]; ok {
		return enc, nil
	}

	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	t.encodings[name] = enc
	return enc, nil
}

// CountTokens counts tokens in a text string for a given model.
func (t *TiktokenTokenizer) CountTokens(text string, model string) (int, error) {
	if text == "" {
		return 0, nil
	}
	enc, err := t.encoder(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

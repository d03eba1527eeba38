package tokenizer

import (
	"errors"
	"strings"
)

// Chat framing overhead, following OpenAI's published counting rules.
const (
	messageOverhead    = 3 // <|start|>role<|end|>
	nameOverhead       = 1
	replyPrimingTokens = 3
)

// ErrEmptySample is returned when an estimate has no text to count.
var ErrEmptySample = errors.New("sample text is empty")

// Message is one turn of a sample conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// EstimateRequest is the sample text a per-query usage is derived from.
type EstimateRequest struct {
	Model      string    `json:"model"`
	System     string    `json:"system,omitempty"`
	Prompt     string    `json:"prompt"`
	History    []Message `json:"history,omitempty"`
	Completion string    `json:"completion,omitempty"`
}

// Estimate is the token usage of one query built from an EstimateRequest.
type Estimate struct {
	Model         string `json:"model"`
	Encoding      string `json:"encoding"`
	InputTokens   int    `json:"input_tokens"`
	OutputTokens  int    `json:"output_tokens"`
	HistoryTokens int    `json:"history_tokens"`
}

// CountMessages counts tokens for a slice of messages, including framing and
// the reply priming tokens the model adds before answering.
func (t *TiktokenTokenizer) CountMessages(messages []Message, model string) (int, error) {
	total, err := t.countTurns(messages, model)
	if err != nil {
		return 0, err
	}
	return total + replyPrimingTokens, nil
}

// Estimate counts the system prompt and user prompt as input, the history
// separately so callers can price it on its own, and the completion as output.
func (t *TiktokenTokenizer) Estimate(req EstimateRequest) (*Estimate, error) {
	if strings.TrimSpace(req.Prompt) == "" && strings.TrimSpace(req.System) == "" {
		return nil, ErrEmptySample
	}

	var turns []Message
	if req.System != "" {
		turns = append(turns, Message{Role: "system", Content: req.System})
	}
	turns = append(turns, Message{Role: "user", Content: req.Prompt})

	input, err := t.CountMessages(turns, req.Model)
	if err != nil {
		return nil, err
	}

	history, err := t.countTurns(req.History, req.Model)
	if err != nil {
		return nil, err
	}

	output, err := t.CountTokens(req.Completion, req.Model)
	if err != nil {
		return nil, err
	}

	return &Estimate{
		Model:         req.Model,
		Encoding:      EncodingFor(req.Model),
		InputTokens:   input,
		OutputTokens:  output,
		HistoryTokens: history,
	}, nil
}

func (t *TiktokenTokenizer) countTurns(messages []Message, model string) (int, error) {
	total := 0
	for _, msg := range messages {
		role, err := t.CountTokens(msg.Role, model)
		if err != nil {
			return 0, err
		}
		content, err := t.CountTokens(msg.Content, model)
		if err != nil {
			return 0, err
		}
		total += role + content + messageOverhead

		if msg.Name != "" {
			name, err := t.CountTokens(msg.Name, model)
			if err != nil {
				return 0, err
			}
			total += name + nameOverhead
		}
	}
	return total, nil
}

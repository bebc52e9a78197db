package chat

import (
	"context"
	"encoding/json"
	"log/slog"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	greetingText    = "Hello! I'm your jet booking assistant. How can I help you today?"
	unavailableText = "The AI service is currently unavailable. Please try again later."
)

// Concierge executes a chat message against the intent-handling service.
type Concierge interface {
	Concierge(ctx context.Context, message string) (ConciergeResult, error)
}

// Reply is the structured answer sent back to the client.
type Reply struct {
	Status   string         `json:"status"`
	Response *ReplyBody     `json:"response,omitempty"`
	Metadata *ReplyMetadata `json:"metadata,omitempty"`
	Message  string         `json:"message,omitempty"`
}

type ReplyBody struct {
	Text string          `json:"text"`
	Data json.RawMessage `json:"data,omitempty"`
}

type ReplyMetadata struct {
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   Entities `json:"entities"`
}

// Service classifies messages and proxies non-trivial intents to the
// concierge.
type Service struct {
	classifier *Classifier
	concierge  Concierge
	logger     *slog.Logger
}

// NewService builds a chat service.
func NewService(concierge Concierge, logger *slog.Logger) *Service {
	return &Service{
		classifier: NewClassifier(),
		concierge:  concierge,
		logger:     logger,
	}
}

// ProcessMessage answers greetings locally and hands everything else to the
// concierge. Concierge failures come back as a friendly error reply, never as
// a transport error.
func (s *Service) ProcessMessage(ctx context.Context, userID, message string) Reply {
	intent, confidence := s.classifier.Classify(message)
	entities := s.classifier.ExtractEntities(message)
	meta := &ReplyMetadata{Intent: string(intent), Confidence: confidence, Entities: entities}

	if intent == IntentGreeting {
		return Reply{
			Status:   statusSuccess,
			Response: &ReplyBody{Text: greetingText},
			Metadata: meta,
		}
	}

	result, err := s.concierge.Concierge(ctx, message)
	if err != nil {
		s.logger.Error("concierge call failed", "user_id", userID, "intent", intent, "error", err)
		return Reply{
			Status:   statusError,
			Message:  unavailableText,
			Metadata: meta,
		}
	}

	if result.Intent != "" {
		meta.Intent = result.Intent
		meta.Confidence = result.Confidence
	}
	text := result.Message
	if text == "" {
		text = "I don't have a response for that."
	}
	return Reply{
		Status:   statusSuccess,
		Response: &ReplyBody{Text: text, Data: result.Data},
		Metadata: meta,
	}
}

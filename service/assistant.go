package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"arogyachat/platform"

	"github.com/go-redis/redis/v8"
)

const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
)

// Fixed Kannada fallbacks: one for an empty model reply, one for a failed
// call. The assistant degrades to these instead of surfacing an error.
const (
	FallbackRetry = "ಕ್ಷಮಿಸಿ, ದಯವಿಟ್ಟು ಮತ್ತೊಮ್ಮೆ ಪ್ರಶ್ನೆಯನ್ನು ಪ್ರಯತ್ನಿಸಿ."

	FallbackUnavailable = "ಕ್ಷಮಿಸಿ, AI ಸೇವೆ ತಾತ್ಕಾಲಿಕವಾಗಿ ಲಭ್ಯವಿಲ್ಲ. " +
		"ಸ್ವಲ್ಪ ಸಮಯದ ನಂತರ ಮತ್ತೆ ಪ್ರಯತ್ನಿಸಿ."
)

const assistantTimeout = 60 * time.Second

const assistantPrompt = "You are a general health guidance assistant.\n" +
	"You are NOT a doctor.\n" +
	"Do NOT diagnose diseases.\n" +
	"Do NOT prescribe medicines.\n" +
	"Provide only general wellness and lifestyle advice.\n" +
	"IMPORTANT:\n" +
	"- Respond ONLY in Kannada language\n" +
	"- Use Kannada script only\n" +
	"- Do NOT use English or Hindi\n\n" +
	"User question: "

// Turn is one entry of an assistant transcript.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// TranscriptStore holds the per-session assistant transcript. Transcripts
// are session state, not durable records: they expire with the session.
type TranscriptStore interface {
	Load(ctx context.Context, sessionID string) ([]Turn, error)
	Save(ctx context.Context, sessionID string, turns []Turn) error
}

// RedisTranscriptStore keeps each transcript as a JSON value with a TTL.
type RedisTranscriptStore struct {
	Client *redis.Client
	TTL    time.Duration
}

const transcriptKeyPrefix = "assistant:transcript:"

func (s *RedisTranscriptStore) Load(ctx context.Context, sessionID string) ([]Turn, error) {
	data, err := s.Client.Get(ctx, transcriptKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return turns, nil
}

func (s *RedisTranscriptStore) Save(ctx context.Context, sessionID string, turns []Turn) error {
	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := s.Client.Set(ctx, transcriptKeyPrefix+sessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

// AssistantService answers general health questions in Kannada, keeping a
// running transcript per session in the given store.
type AssistantService struct {
	Client *platform.InferenceClient
	Model  string
	Store  TranscriptStore
}

func NewAssistantService(store TranscriptStore) *AssistantService {
	m := os.Getenv("ASSISTANT_MODEL")
	if m == "" {
		m = "llama3.1:8b"
	}
	return &AssistantService{
		Client: platform.Inference,
		Model:  m,
		Store:  store,
	}
}

// Ask appends the user's question and the assistant's reply to the session
// transcript and returns both. An inference failure or empty reply is
// replaced with a fixed Kannada fallback; the transcript grows by exactly
// two turns either way. Only a store failure is returned as an error.
func (a *AssistantService) Ask(ctx context.Context, sessionID, userText string) ([]Turn, string, error) {
	turns, err := a.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	turns = append(turns, Turn{Role: TurnRoleUser, Text: userText})

	reply, err := a.Client.Generate(a.Model, assistantPrompt+userText, assistantTimeout)
	if err != nil {
		logger.Warnf("assistant inference failed for session %s: %s", sessionID, err)
		reply = FallbackUnavailable
	} else if reply == "" {
		reply = FallbackRetry
	}

	turns = append(turns, Turn{Role: TurnRoleAssistant, Text: reply})

	if err := a.Store.Save(ctx, sessionID, turns); err != nil {
		return nil, "", err
	}
	return turns, reply, nil
}

// Transcript returns the stored turns for a session, empty if none.
func (a *AssistantService) Transcript(ctx context.Context, sessionID string) ([]Turn, error) {
	return a.Store.Load(ctx, sessionID)
}

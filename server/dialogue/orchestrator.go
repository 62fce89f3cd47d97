package dialogue

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/northernisles/sage/plugin/ai"
)

// FallbackReply is what the user sees when generation fails. Even a failed
// turn is persisted with this reply so the log stays consistent with what
// the user saw.
const FallbackReply = "I apologize, but something went wrong while processing your message. Could you try again?"

// ErrEmptyUtterance rejects blank input at the orchestrator boundary.
var ErrEmptyUtterance = errors.New("utterance is empty")

// recentTurns is how many stored turns are replayed verbatim in the prompt.
const recentTurns = 5

// TurnResult is the outcome of one dialogue turn.
type TurnResult struct {
	Reply     string `json:"reply"`
	Augmented bool   `json:"augmented"`
	Knowledge string `json:"knowledge_result,omitempty"`
	Err       string `json:"error,omitempty"`
}

// Orchestrator composes the dialogue pipeline: augmentation decision,
// optional knowledge lookup, prompt assembly from the conversation store,
// completion call, and turn recording.
type Orchestrator struct {
	store    *Store
	policy   *Policy
	resolver *Resolver
	llm      ai.LLMService
	persona  string
}

// NewOrchestrator wires the dialogue pipeline. An empty persona falls back
// to Adam's system prompt.
func NewOrchestrator(store *Store, policy *Policy, resolver *Resolver, llm ai.LLMService, persona string) *Orchestrator {
	if persona == "" {
		persona = SystemPrompt
	}
	return &Orchestrator{
		store:    store,
		policy:   policy,
		resolver: resolver,
		llm:      llm,
		persona:  persona,
	}
}

// Process runs one dialogue turn. The only error it returns is a rejected
// precondition (blank input); completion and knowledge failures degrade to
// fallback text inside the result. There are no retries anywhere in this
// flow.
func (o *Orchestrator) Process(ctx context.Context, utterance string) (*TurnResult, error) {
	if strings.TrimSpace(utterance) == "" {
		return nil, ErrEmptyUtterance
	}

	start := time.Now()
	if _, err := o.store.Append(RoleUser, utterance, time.Time{}); err != nil {
		return nil, err
	}

	result := &TurnResult{}
	if o.policy.ShouldAugment(utterance) {
		knowledge := o.resolver.Resolve(ctx, utterance)
		result.Augmented = true
		result.Knowledge = knowledge.Text
		slog.Info("knowledge augmentation applied",
			"source", knowledge.Source,
			"query_length", len(utterance),
		)
	}

	messages := o.assembleMessages(result.Knowledge)

	reply, err := o.llm.Chat(ctx, messages)
	if err != nil {
		slog.Warn("completion call failed, using fallback reply", "error", err)
		reply = FallbackReply
		result.Err = err.Error()
	}
	result.Reply = reply

	if _, err := o.store.Append(RoleAssistant, reply, time.Time{}); err != nil {
		return nil, err
	}

	slog.Info("dialogue turn completed",
		"augmented", result.Augmented,
		"fallback", result.Err != "",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// assembleMessages builds the outbound message list: persona first, then the
// context digest, then the knowledge snippet when one was obtained, then the
// most recent stored turns verbatim.
func (o *Orchestrator) assembleMessages(knowledge string) []ai.Message {
	messages := []ai.Message{ai.SystemPrompt(o.persona)}

	if digest := o.store.ContextDigest(); digest != "" {
		messages = append(messages, ai.SystemPrompt("Conversation context: "+digest))
	}
	if knowledge != "" {
		messages = append(messages, ai.SystemPrompt("Relevant knowledge: "+knowledge))
	}

	snapshot := o.store.Snapshot()
	recent := snapshot.Messages
	if len(recent) > recentTurns {
		recent = recent[len(recent)-recentTurns:]
	}
	for _, msg := range recent {
		messages = append(messages, ai.Message{Role: string(msg.Role), Content: msg.Content})
	}
	return messages
}

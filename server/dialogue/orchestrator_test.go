package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northernisles/sage/plugin/ai"
)

// fakeLLM returns a scripted reply and records the messages it was sent.
type fakeLLM struct {
	reply string
	err   error
	calls [][]ai.Message
}

func (f *fakeLLM) Chat(_ context.Context, messages []ai.Message) (string, error) {
	f.calls = append(f.calls, messages)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestOrchestrator(llm ai.LLMService) (*Orchestrator, *Store) {
	store := NewStore(&WordEstimator{}, StoreConfig{})
	resolver := NewResolver(nil, nil)
	policy := NewPolicy(nil)
	return NewOrchestrator(store, policy, resolver, llm, ""), store
}

func TestProcessRecordsBothTurns(t *testing.T) {
	llm := &fakeLLM{reply: "Greetings, traveler."}
	o, store := newTestOrchestrator(llm)

	result, err := o.Process(context.Background(), "Good day to you, sage")
	require.NoError(t, err)

	assert.Equal(t, "Greetings, traveler.", result.Reply)
	assert.Empty(t, result.Err)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Messages, 2)
	assert.Equal(t, RoleUser, snapshot.Messages[0].Role)
	assert.Equal(t, "Good day to you, sage", snapshot.Messages[0].Content)
	assert.Equal(t, RoleAssistant, snapshot.Messages[1].Role)
	assert.Equal(t, "Greetings, traveler.", snapshot.Messages[1].Content)
}

func TestProcessRejectsBlankInput(t *testing.T) {
	llm := &fakeLLM{reply: "unused"}
	o, store := newTestOrchestrator(llm)

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := o.Process(context.Background(), input)
		assert.ErrorIs(t, err, ErrEmptyUtterance)
	}
	assert.Equal(t, 0, store.MessageCount())
	assert.Empty(t, llm.calls)
}

func TestProcessCompletionFailureFallsBack(t *testing.T) {
	llm := &fakeLLM{err: errors.New("deadline exceeded")}
	o, store := newTestOrchestrator(llm)

	result, err := o.Process(context.Background(), "Good day to you")
	require.NoError(t, err)

	assert.Equal(t, FallbackReply, result.Reply)
	assert.Contains(t, result.Err, "deadline exceeded")

	// The fallback reply is persisted as the assistant turn, so the log
	// matches what the user saw.
	snapshot := store.Snapshot()
	require.Len(t, snapshot.Messages, 2)
	assert.Equal(t, RoleAssistant, snapshot.Messages[1].Role)
	assert.Equal(t, FallbackReply, snapshot.Messages[1].Content)
}

func TestProcessAugmentsOnTrigger(t *testing.T) {
	llm := &fakeLLM{reply: "Ah, the Isles..."}
	o, _ := newTestOrchestrator(llm)

	result, err := o.Process(context.Background(), "Tell me about the northern isles")
	require.NoError(t, err)

	assert.True(t, result.Augmented)
	assert.Contains(t, result.Knowledge, "mystical archipelago")
}

func TestProcessSkipsAugmentationWithoutTrigger(t *testing.T) {
	llm := &fakeLLM{reply: "Welcome."}
	o, _ := newTestOrchestrator(llm)

	result, err := o.Process(context.Background(), "Good evening, old friend")
	require.NoError(t, err)

	assert.False(t, result.Augmented)
	assert.Empty(t, result.Knowledge)
}

func TestProcessMessageAssemblyOrder(t *testing.T) {
	llm := &fakeLLM{reply: "As the runes foretold."}
	o, _ := newTestOrchestrator(llm)

	_, err := o.Process(context.Background(), "Tell me about the northern isles")
	require.NoError(t, err)

	require.Len(t, llm.calls, 1)
	messages := llm.calls[0]
	require.GreaterOrEqual(t, len(messages), 4)

	// Persona first, then context digest, then knowledge, then history.
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "You are Adam")
	assert.Equal(t, "system", messages[1].Role)
	assert.True(t, strings.HasPrefix(messages[1].Content, "Conversation context: "))
	assert.Equal(t, "system", messages[2].Role)
	assert.True(t, strings.HasPrefix(messages[2].Content, "Relevant knowledge: "))

	last := messages[len(messages)-1]
	assert.Equal(t, "user", last.Role)
	assert.Equal(t, "Tell me about the northern isles", last.Content)
}

func TestProcessHistoryCappedAtFiveTurns(t *testing.T) {
	llm := &fakeLLM{reply: "Indeed."}
	o, store := newTestOrchestrator(llm)

	for i := 0; i < 10; i++ {
		_, err := store.Append(RoleUser, "an earlier remark", time.Time{})
		require.NoError(t, err)
	}

	_, err := o.Process(context.Background(), "Good evening")
	require.NoError(t, err)

	messages := llm.calls[0]
	// Persona + context digest + five history turns.
	assert.Len(t, messages, 7)
}

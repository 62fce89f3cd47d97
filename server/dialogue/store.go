package dialogue

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const (
	// DefaultTokenBudget is the estimated token count the stored
	// conversation may occupy before a trim is forced.
	DefaultTokenBudget = 4000
	// DefaultKeepRecent is how many of the newest messages survive a trim.
	DefaultKeepRecent = 5
	// DefaultSummaryLimit caps the rolling summary body in characters.
	DefaultSummaryLimit = 500

	summaryPrefix = "Previous conversation covered: "
	digestRecent  = 3
	digestCharCap = 100
)

// StoreConfig configures a conversation store. Zero values fall back to the
// package defaults.
type StoreConfig struct {
	TokenBudget  int
	KeepRecent   int
	SummaryLimit int
}

// Store holds the ordered message log and the rolling summary for a single
// conversation, and enforces the token budget by summarizing and trimming.
//
// The rolling summary is single-slot: a new trim replaces the previous
// summary instead of folding it in. Bounded size is the contract here, not
// summary fidelity.
//
// All methods are safe for concurrent use. The internal lock is held only
// for the duration of one call, never across network I/O.
type Store struct {
	mu        sync.Mutex
	estimator TokenEstimator
	budget    int
	keep      int
	sumLimit  int

	messages []Message
	summary  string
}

// Snapshot is a read-only copy of the store state.
type Snapshot struct {
	Messages   []Message `json:"messages"`
	Summary    string    `json:"summary"`
	TokenCount int       `json:"token_count"`
}

// NewStore creates a conversation store using the given estimator.
// A nil estimator falls back to the word heuristic.
func NewStore(estimator TokenEstimator, cfg StoreConfig) *Store {
	if estimator == nil {
		estimator = &WordEstimator{}
	}
	if cfg.TokenBudget <= 0 {
		cfg.TokenBudget = DefaultTokenBudget
	}
	if cfg.KeepRecent <= 0 {
		cfg.KeepRecent = DefaultKeepRecent
	}
	if cfg.SummaryLimit <= 0 {
		cfg.SummaryLimit = DefaultSummaryLimit
	}
	return &Store{
		estimator: estimator,
		budget:    cfg.TokenBudget,
		keep:      cfg.KeepRecent,
		sumLimit:  cfg.SummaryLimit,
	}
}

// Append adds a message to the log and returns the post-trim estimated token
// count. The timestamp defaults to the current time when zero. Appending may
// trigger the trim-and-summarize step if the token budget is exceeded.
func (s *Store) Append(role Role, content string, ts time.Time) (int, error) {
	if _, err := ParseRole(string(role)); err != nil {
		return 0, err
	}
	if ts.IsZero() {
		ts = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, Message{
		UID:       shortuuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: ts,
	})

	if s.totalTokensLocked() > s.budget {
		s.trimLocked()
	}
	return s.totalTokensLocked(), nil
}

// Snapshot returns the current state without mutating it.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]Message, len(s.messages))
	copy(messages, s.messages)
	return Snapshot{
		Messages:   messages,
		Summary:    s.summary,
		TokenCount: s.totalTokensLocked(),
	}
}

// ContextDigest produces a short human-readable digest of the conversation:
// the rolling summary, if any, followed by the last few messages with their
// content truncated. It never mutates stored state; it exists purely to keep
// prompts compact.
func (s *Store) ContextDigest() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 0 {
		return "No conversation history."
	}

	var parts []string
	if s.summary != "" {
		parts = append(parts, "Previous summary: "+s.summary)
	}
	parts = append(parts, "Recent messages:")

	recent := s.messages
	if len(recent) > digestRecent {
		recent = recent[len(recent)-digestRecent:]
	}
	for _, msg := range recent {
		parts = append(parts, fmt.Sprintf("- %s: %s...", msg.Role, truncateRunes(msg.Content, digestCharCap)))
	}
	return strings.Join(parts, "\n")
}

// Reset clears messages and the rolling summary atomically.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.summary = ""
}

// MessageCount returns the number of stored messages.
func (s *Store) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// HasSummary reports whether a rolling summary exists.
func (s *Store) HasSummary() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary != ""
}

// trimLocked retains the newest messages and folds everything older into the
// rolling summary. With fewer messages than the retention window the old
// slice is empty and the summary degrades to the bare prefix; that state is
// valid, just over budget until older turns age out.
func (s *Store) trimLocked() {
	var old []Message
	if len(s.messages) > s.keep {
		old = s.messages[:len(s.messages)-s.keep]
	}

	lines := make([]string, 0, len(old))
	for _, msg := range old {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	s.summary = summaryPrefix + truncateRunes(strings.Join(lines, "\n"), s.sumLimit) + "..."

	if len(s.messages) > s.keep {
		kept := make([]Message, s.keep)
		copy(kept, s.messages[len(s.messages)-s.keep:])
		s.messages = kept
	}

	slog.Debug("conversation summarized due to token limit",
		"dropped", len(old),
		"retained", len(s.messages),
		"summary_length", len(s.summary),
	)
}

// totalTokensLocked sums the estimated tokens of every stored message's
// content. Must be called with s.mu held.
func (s *Store) totalTokensLocked() int {
	total := 0
	for _, msg := range s.messages {
		total += s.estimator.Estimate(msg.Content)
	}
	return total
}

// truncateRunes caps s at n runes, keeping multi-byte characters intact.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

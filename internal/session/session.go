// Package session provides conversation session management.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Message represents a chat message in a session.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Session represents one conversation.
type Session struct {
	Key       string    `json:"key"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	mu        sync.RWMutex
}

// NewSession creates a new session with the given key.
func NewSession(key string) *Session {
	now := time.Now()
	return &Session{
		Key:       key,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddMessage appends a message to the session.
func (s *Session) AddMessage(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	s.UpdatedAt = time.Now()
}

// GetHistory returns the most recent maxMessages messages.
func (s *Session) GetHistory(maxMessages int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.Messages) <= maxMessages {
		result := make([]Message, len(s.Messages))
		copy(result, s.Messages)
		return result
	}
	result := make([]Message, maxMessages)
	copy(result, s.Messages[len(s.Messages)-maxMessages:])
	return result
}

// Clear removes all messages from the session.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = []Message{}
	s.UpdatedAt = time.Now()
}

// Manager manages session persistence. Sessions are stored one per
// file as JSONL: a metadata line followed by one line per message.
type Manager struct {
	dir   string
	cache map[string]*Session
	mu    sync.RWMutex
}

// NewManager creates a session manager rooted at dir.
func NewManager(dir string) *Manager {
	os.MkdirAll(dir, 0755)
	return &Manager{
		dir:   dir,
		cache: make(map[string]*Session),
	}
}

// GetOrCreate returns an existing session or creates a new one.
func (m *Manager) GetOrCreate(key string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.cache[key]; ok {
		return sess
	}
	sess := m.load(key)
	if sess == nil {
		sess = NewSession(key)
	}
	m.cache[key] = sess
	return sess
}

// Save persists a session to disk.
func (m *Manager) Save(sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, err := os.Create(m.sessionPath(sess.Key))
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	defer file.Close()

	sess.mu.RLock()
	defer sess.mu.RUnlock()

	meta := map[string]any{
		"_type":      "metadata",
		"created_at": sess.CreatedAt.Format(time.RFC3339),
		"updated_at": sess.UpdatedAt.Format(time.RFC3339),
	}
	metaLine, _ := json.Marshal(meta)
	if _, err := file.WriteString(string(metaLine) + "\n"); err != nil {
		return fmt.Errorf("write session metadata: %w", err)
	}
	for _, msg := range sess.Messages {
		msgLine, _ := json.Marshal(msg)
		if _, err := file.WriteString(string(msgLine) + "\n"); err != nil {
			return fmt.Errorf("write session message: %w", err)
		}
	}

	m.cache[sess.Key] = sess
	return nil
}

// Delete removes a session from cache and disk.
func (m *Manager) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, key)
	return os.Remove(m.sessionPath(key)) == nil
}

func (m *Manager) sessionPath(key string) string {
	// Strip separators and traversal components to keep keys inside dir.
	safe := strings.NewReplacer(":", "_", "/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(m.dir, filepath.Base(safe)+".jsonl")
}

func (m *Manager) load(key string) *Session {
	file, err := os.Open(m.sessionPath(key))
	if err != nil {
		return nil
	}
	defer file.Close()

	sess := NewSession(key)
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			break
		}

		var check map[string]any
		if json.Unmarshal(raw, &check) == nil && check["_type"] == "metadata" {
			if created, ok := check["created_at"].(string); ok {
				sess.CreatedAt, _ = time.Parse(time.RFC3339, created)
			}
			if updated, ok := check["updated_at"].(string); ok {
				sess.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
			}
			continue
		}

		var msg Message
		if json.Unmarshal(raw, &msg) == nil {
			sess.Messages = append(sess.Messages, msg)
		}
	}
	return sess
}

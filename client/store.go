// file: client/store.go

package client

import (
	"encoding/json"
	"os"
	"sync"
)

// Store owns the client-side session state: the token pair and the cached
// user JSON. All reads and writes of session credentials go through it, and
// Clear wipes everything at once.
type Store interface {
	AccessToken() string
	RefreshToken() string
	User() string
	SetAccessToken(token string)
	SetTokens(access, refresh string)
	SetUser(user string)
	Clear()
}

// MemoryStore keeps the session in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
	user    string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryStore) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *MemoryStore) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
}

func (s *MemoryStore) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
}

func (s *MemoryStore) SetUser(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	s.user = ""
}

// FileStore persists the session to a JSON file so it survives restarts.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileState struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         string `json:"user,omitempty"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() fileState {
	var state fileState
	data, err := os.ReadFile(s.path)
	if err != nil {
		return state
	}
	json.Unmarshal(data, &state)
	return state
}

func (s *FileStore) save(state fileState) {
	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().AccessToken
}

func (s *FileStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().RefreshToken
}

func (s *FileStore) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().User
}

func (s *FileStore) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load()
	state.AccessToken = token
	s.save(state)
}

func (s *FileStore) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load()
	state.AccessToken = access
	state.RefreshToken = refresh
	s.save(state)
}

func (s *FileStore) SetUser(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load()
	state.User = user
	s.save(state)
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.Remove(s.path)
}

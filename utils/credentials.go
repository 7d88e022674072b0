package utils

import (
	"context"
	"encoding/json"
	"errors"
	"geonews/models"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const credentialKeyPrefix = "auth:"

// CredentialStore persists at most one Session per browser session ID, in
// one of two tiers: a durable Redis entry with a TTL (used when the user
// asked to be remembered) or an in-process map that lives until the server
// restarts. Writing one tier always clears the other, so a session is never
// duplicated or left stale in two places.
type CredentialStore struct {
	client *redis.Client
	ttl    time.Duration

	mu  sync.RWMutex
	mem map[string]models.Session
}

// NewCredentialStore returns a store whose durable tier uses the given
// Redis client and TTL.
func NewCredentialStore(client *redis.Client, ttl time.Duration) *CredentialStore {
	return &CredentialStore{
		client: client,
		ttl:    ttl,
		mem:    make(map[string]models.Session),
	}
}

// Save writes the session to the durable tier if durable is true, else to
// the session-scoped tier, and clears the other tier.
func (s *CredentialStore) Save(ctx context.Context, sid string, session models.Session, durable bool) error {
	if session.Token == "" {
		return errors.New("refusing to save session with empty token")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if durable {
		data, err := json.Marshal(session)
		if err != nil {
			return err
		}
		if err := s.client.Set(ctx, credentialKeyPrefix+sid, data, s.ttl).Err(); err != nil {
			return err
		}
		s.mu.Lock()
		delete(s.mem, sid)
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.mem[sid] = session
	s.mu.Unlock()

	// Clearing the durable tier keeps the two locations mutually exclusive.
	if err := s.client.Del(ctx, credentialKeyPrefix+sid).Err(); err != nil {
		return err
	}
	return nil
}

// Load returns the stored session for the browser session ID, checking the
// durable tier first. Missing or malformed data is reported as absent,
// never as an error.
func (s *CredentialStore) Load(ctx context.Context, sid string) (*models.Session, bool) {
	if sid == "" {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, credentialKeyPrefix+sid).Result()
	if err == nil && data != "" {
		var session models.Session
		if jsonErr := json.Unmarshal([]byte(data), &session); jsonErr != nil {
			log.Println("discarding malformed stored session: ", jsonErr)
			return nil, false
		}
		if session.Token == "" {
			return nil, false
		}
		return &session, true
	}
	if err != nil && err != redis.Nil {
		log.Println("error reading stored session: ", err)
	}

	s.mu.RLock()
	session, ok := s.mem[sid]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return &session, true
}

// Clear removes the session from both tiers.
func (s *CredentialStore) Clear(ctx context.Context, sid string) {
	if sid == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.mu.Lock()
	delete(s.mem, sid)
	s.mu.Unlock()

	if err := s.client.Del(ctx, credentialKeyPrefix+sid).Err(); err != nil {
		log.Println("error clearing stored session: ", err)
	}
}

// WaitReadable polls Load until the session is readable or the timeout
// elapses. It exists because the durable write and the next page's read can
// be separated by Redis round trips; the caller proceeds either way once it
// returns.
func (s *CredentialStore) WaitReadable(ctx context.Context, sid string, timeout time.Duration, interval time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if _, ok := s.Load(ctx, sid); ok {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(interval):
		}
	}
}

package utils

import (
	"context"
	"sync"
)

// AuthBinder keeps a default Authorization header per browser session in
// sync with the CredentialStore. Both the cached default and the
// dispatch-time fallback derive from the same store read, so whichever
// writer runs last produces the same value.
type AuthBinder struct {
	store *CredentialStore

	mu       sync.RWMutex
	defaults map[string]string
}

// NewAuthBinder returns a binder backed by the given store.
func NewAuthBinder(store *CredentialStore) *AuthBinder {
	return &AuthBinder{
		store:    store,
		defaults: make(map[string]string),
	}
}

// Refresh re-derives the default header for the browser session from the
// store. Call after every Save or Clear.
func (b *AuthBinder) Refresh(ctx context.Context, sid string) {
	session, ok := b.store.Load(ctx, sid)

	b.mu.Lock()
	defer b.mu.Unlock()
	if !ok {
		delete(b.defaults, sid)
		return
	}
	b.defaults[sid] = session.AuthorizationHeader()
}

// Header returns the Authorization header value for the browser session,
// or "" when no session exists. When no cached default is present it falls
// back to reading the store directly, so a request issued before Refresh
// ran (or after a restart) still goes out authenticated.
func (b *AuthBinder) Header(ctx context.Context, sid string) string {
	b.mu.RLock()
	header, ok := b.defaults[sid]
	b.mu.RUnlock()
	if ok {
		return header
	}

	session, found := b.store.Load(ctx, sid)
	if !found {
		return ""
	}
	return session.AuthorizationHeader()
}

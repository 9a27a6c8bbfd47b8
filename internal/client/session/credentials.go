package session

import "sync"

// Credentials is the in-memory bearer-credential holder injected into the
// transport layer. The transport re-resolves the token on every request, so
// attaching or detaching here takes effect immediately. Only the Manager
// writes to it.
type Credentials struct {
	mu    sync.RWMutex
	token string
}

func NewCredentials() *Credentials {
	return &Credentials{}
}

// AccessToken satisfies api.CredentialProvider. Empty means "no credential".
func (c *Credentials) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Credentials) attach(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Credentials) detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

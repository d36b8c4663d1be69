package identity

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/example/maternal/internal/storage"
)

const idCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// Provider derives and persists the anonymous user identifier. The
// identifier is created once, stored, and reused for as long as the store
// keeps it; it carries no personal data and only correlates tracking events.
type Provider struct {
	store *storage.Store

	mu     sync.Mutex
	cached string
}

// New creates an identity provider backed by the given store
func New(store *storage.Store) *Provider {
	return &Provider{store: store}
}

// UserID returns the anonymous identifier, creating and persisting it on
// first use. If the store is unreadable the identifier degrades to a
// session-only value rather than failing the caller.
func (p *Provider) UserID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached
	}

	var saved string
	found, err := p.store.Get(storage.KeyUserID, &saved)
	if err != nil {
		log.Printf("identity: failed to load user id: %v", err)
	}
	if found && saved != "" {
		p.cached = saved
		return p.cached
	}

	p.cached = generateID()
	if err := p.store.Set(storage.KeyUserID, p.cached); err != nil {
		log.Printf("identity: failed to persist user id: %v", err)
	}
	return p.cached
}

// generateID builds an identifier like user_1700000000000_k3j9x2m4q
func generateID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idCharset[rand.Intn(len(idCharset))]
	}
	return fmt.Sprintf("user_%s_%s", strconv.FormatInt(time.Now().UnixMilli(), 10), suffix)
}

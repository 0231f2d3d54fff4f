package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/model"
)

// Provider resolves actor identities. A credential token yields a persistent
// identity; otherwise each session key gets a stable anonymous one. Readiness
// is reported asynchronously and nothing resolves before it.
type Provider struct {
	log *zap.Logger

	mu       sync.Mutex
	sessions map[string]model.Identity

	ready chan struct{}
}

func NewProvider(log *zap.Logger) *Provider {
	p := &Provider{
		log:      log,
		sessions: make(map[string]model.Identity),
		ready:    make(chan struct{}),
	}

	// Identity backends report readiness asynchronously; ours has nothing to
	// warm up, but callers still observe the same contract.
	go func() {
		close(p.ready)
		log.Debug("identity provider ready")
	}()

	return p
}

func (p *Provider) Ready() <-chan struct{} {
	return p.ready
}

// Resolve returns the identity for a request. Tokens have the form
// "<subject>:<secret>"; the subject becomes the persistent identity.
// With no token, sessionKey selects a cached anonymous identity.
func (p *Provider) Resolve(ctx context.Context, token, sessionKey string) (model.Identity, error) {
	select {
	case <-p.ready:
	default:
		return model.Identity{}, &model.AuthError{Reason: "identity provider not ready"}
	}

	if token != "" {
		subject, _, _ := strings.Cut(token, ":")
		if subject == "" {
			return model.Identity{}, &model.AuthError{Reason: "malformed credential token"}
		}
		return model.Identity{ID: subject, Ephemeral: false}, nil
	}

	if sessionKey == "" {
		return model.Identity{}, &model.AuthError{Reason: "no credentials supplied"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.sessions[sessionKey]
	if !ok {
		id = model.Identity{ID: uuid.NewString(), Ephemeral: true}
		p.sessions[sessionKey] = id
		p.log.Debug("issued anonymous identity", zap.String("id", id.ID))
	}
	return id, nil
}

// Package session tracks the signed-in user of the client and persists it
// in the local metadata store so the CLI can resume.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/validation"
)

const (
	keyUserID       = "user_id"
	keyEmail        = "email"
	keyRefreshToken = "refresh_token"
)

// Provider is the source of the current session. Subscribers are called
// after every change, including sign-out.
type Provider struct {
	client client.Client
	meta   metadata.Repository
	logger logging.Logger

	mu      sync.RWMutex
	current models.Session

	subMu   sync.Mutex
	subs    map[int]func(models.Session, bool)
	nextSub int
}

func NewProvider(c client.Client, meta metadata.Repository, l logging.Logger) *Provider {
	p := &Provider{
		client: c,
		meta:   meta,
		logger: l.With("module", "session"),
		subs:   make(map[int]func(models.Session, bool)),
	}
	c.OnTokenRotation(p.saveRefreshToken)
	return p
}

func (p *Provider) saveRefreshToken(token string) {
	ctx := context.Background()
	if err := p.meta.Set(ctx, keyRefreshToken, token); err != nil {
		p.logger.Error(ctx, "saving refresh token failed", "error", err)
	}
}

// Current returns the session and whether one is active.
func (p *Provider) Current() (models.Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.current.Active()
}

func (p *Provider) Subscribe(fn func(models.Session, bool)) func() {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		delete(p.subs, id)
	}
}

func (p *Provider) set(s models.Session) {
	p.mu.Lock()
	p.current = s
	p.mu.Unlock()

	p.subMu.Lock()
	fns := make([]func(models.Session, bool), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.subMu.Unlock()

	for _, fn := range fns {
		fn(s, s.Active())
	}
}

// SignUp registers an account. It does not sign in.
func (p *Provider) SignUp(ctx context.Context, in validation.SignUpInput) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.SignUp(in).Err(); err != nil {
		return "", err
	}
	id, err := p.client.SignUp(ctx, in.Email, in.Password, strings.TrimSpace(in.FullName))
	if err != nil {
		return "", fmt.Errorf("sign up: %w", err)
	}
	return id, nil
}

func (p *Provider) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if err := validation.Login(email, password).Err(); err != nil {
		return models.Session{}, err
	}

	s, err := p.client.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	if err := p.meta.Set(ctx, keyUserID, s.UserID); err != nil {
		return models.Session{}, err
	}
	if err := p.meta.Set(ctx, keyEmail, s.Email); err != nil {
		return models.Session{}, err
	}

	p.logger.Info(ctx, "Signed in", "user_id", s.UserID)
	p.set(s)
	return s, nil
}

// Logout forgets the session locally. The server-side refresh token
// expires on its own.
func (p *Provider) Logout(ctx context.Context) error {
	p.client.Logout()
	err := p.meta.Delete(ctx, keyUserID, keyEmail, keyRefreshToken)
	p.set(models.Session{})
	return err
}

// Restore resumes a session saved by an earlier Login. It reports false
// when nothing complete is saved.
func (p *Provider) Restore(ctx context.Context) (bool, error) {
	values := make(map[string]string, 3)
	for _, k := range []string{keyUserID, keyEmail, keyRefreshToken} {
		v, ok, err := p.meta.Get(ctx, k)
		if err != nil {
			return false, err
		}
		if !ok || v == "" {
			return false, nil
		}
		values[k] = v
	}

	p.client.Resume(values[keyRefreshToken])
	p.set(models.Session{UserID: values[keyUserID], Email: values[keyEmail]})
	return true, nil
}

// Verify checks a restored session against the server and signs out when
// the saved credentials are no longer accepted.
func (p *Provider) Verify(ctx context.Context, check func(ctx context.Context) error) error {
	if _, ok := p.Current(); !ok {
		return client.ErrNotLoggedIn
	}
	err := check(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		if lerr := p.Logout(ctx); lerr != nil {
			return errors.Join(err, lerr)
		}
	}
	return err
}

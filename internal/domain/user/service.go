// internal/domain/user/service.go
package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/canteen-backend/internal/infrastructure/storage"
	"github.com/your-org/canteen-backend/internal/pkg/auth"
	"github.com/your-org/canteen-backend/internal/pkg/latency"
)

// SessionKey is the storage key of the persisted session
const SessionKey = "user"

// DefaultSessionTTL is how long a session stays valid after sign-in
const DefaultSessionTTL = 24 * time.Hour

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
)

// IsValidationError reports whether err was raised before the simulated call
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrWeakPassword)
}

// Options configures a Store
type Options struct {
	Storage   storage.Store
	Directory *Directory
	Passwords *auth.PasswordManager
	Tokens    *auth.TokenManager
	Latency   *latency.Simulator
	Logger    logrus.FieldLogger
	// Subject binds issued anti-forgery tokens to one client
	Subject    string
	SessionTTL time.Duration
	Now        func() time.Time
}

// Store holds the session of one client
type Store struct {
	storage   storage.Store
	directory *Directory
	passwords *auth.PasswordManager
	tokens    *auth.TokenManager
	latency   *latency.Simulator
	logger    logrus.FieldLogger
	subject   string
	ttl       time.Duration
	now       func() time.Time

	mu      sync.RWMutex
	session *Session
	token   string
}

// NewStore creates the store and restores a persisted, unexpired session
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if opts.Storage == nil || opts.Directory == nil || opts.Passwords == nil || opts.Tokens == nil {
		return nil, fmt.Errorf("user store: storage, directory, passwords and tokens are required")
	}

	s := &Store{
		storage:   opts.Storage,
		directory: opts.Directory,
		passwords: opts.Passwords,
		tokens:    opts.Tokens,
		latency:   opts.Latency,
		logger:    opts.Logger,
		subject:   opts.Subject,
		ttl:       opts.SessionTTL,
		now:       opts.Now,
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	if s.ttl <= 0 {
		s.ttl = DefaultSessionTTL
	}
	if s.now == nil {
		s.now = time.Now
	}

	token, err := s.tokens.Generate(s.subject)
	if err != nil {
		return nil, err
	}
	s.token = token
	s.session = s.restore(ctx)

	return s, nil
}

// restore reads the persisted session, purging it when expired or unreadable
func (s *Store) restore(ctx context.Context) *Session {
	var persisted Session
	found, err := storage.GetJSON(ctx, s.storage, SessionKey, &persisted)
	if err != nil {
		s.logger.WithError(err).Warn("Discarding unreadable session")
		s.purge(ctx)
		return nil
	}
	if !found {
		return nil
	}

	if persisted.Expired(s.now()) || persisted.User.ID == "" {
		s.logger.WithField("user_id", persisted.User.ID).Info("Persisted session expired")
		s.purge(ctx)
		return nil
	}

	return &persisted
}

func (s *Store) purge(ctx context.Context) {
	if err := s.storage.Delete(ctx, SessionKey); err != nil {
		s.logger.WithError(err).Warn("Failed to delete persisted session")
	}
}

// CurrentUser returns the signed-in user. An expired session is purged
// and reported as signed out.
func (s *Store) CurrentUser(ctx context.Context) (*User, bool) {
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()

	if session == nil {
		return nil, false
	}

	if session.Expired(s.now()) {
		s.mu.Lock()
		if s.session == session {
			s.session = nil
			s.purge(ctx)
		}
		s.mu.Unlock()
		return nil, false
	}

	u := session.User
	return &u, true
}

// Session returns a copy of the current session, if any
func (s *Store) Session(ctx context.Context) (*Session, bool) {
	if _, ok := s.CurrentUser(ctx); !ok {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, false
	}
	copied := *s.session
	return &copied, true
}

// Login authenticates against the demo directory
func (s *Store) Login(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	s.latency.Wait()

	acct, ok := s.directory.lookup(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := s.passwords.VerifyPassword(password, acct.passwordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.signIn(ctx, acct.user)
}

// LoginWithProvider simulates a third-party sign-in. It always yields the
// first demo user.
func (s *Store) LoginWithProvider(ctx context.Context) (*User, error) {
	s.latency.Wait()
	return s.signIn(ctx, s.directory.First())
}

// Register creates a student account and signs it in. The password is
// validated but not stored.
func (s *Store) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	if name == "" || email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, ErrMissingFields
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := s.passwords.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}

	s.latency.Wait()

	if s.directory.Exists(email) {
		return nil, ErrEmailTaken
	}

	return s.signIn(ctx, User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Role:  RoleStudent,
	})
}

// Logout clears the session and rotates the anti-forgery token
func (s *Store) Logout(ctx context.Context) error {
	token, err := s.tokens.Generate(s.subject)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.token = token
	s.purge(ctx)

	return nil
}

func (s *Store) signIn(ctx context.Context, u User) (*User, error) {
	token, err := s.tokens.Generate(s.subject)
	if err != nil {
		return nil, err
	}

	session := &Session{
		User:   u,
		Expiry: s.now().Add(s.ttl).UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	s.token = token
	if err := storage.SetJSON(ctx, s.storage, SessionKey, session); err != nil {
		s.logger.WithError(err).Warn("Failed to persist session")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": u.ID,
		"role":    u.Role,
	}).Info("User signed in")

	signedIn := u
	return &signedIn, nil
}

// Token returns the current anti-forgery token
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// VerifyToken reports whether candidate is the current anti-forgery token
func (s *Store) VerifyToken(candidate string) bool {
	if candidate == "" {
		return false
	}

	current := s.Token()
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(current)) != 1 {
		return false
	}

	claims, err := s.tokens.Parse(candidate)
	if err != nil {
		return false
	}
	return claims.Subject == s.subject
}

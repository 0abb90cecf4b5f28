package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/pkg/utils"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrCodeCooldown: a code was requested again before the resend window
	// elapsed.
	ErrCodeCooldown = errors.New("auth code recently sent")
	// ErrCodeInvalid: no code stored for the email, or it does not match.
	ErrCodeInvalid = errors.New("invalid or expired auth code")
)

const authCodeLength = 4

// CodeStore keeps one-time codes keyed by identity, with TTL eviction.
type CodeStore interface {
	SetCode(ctx context.Context, email, code string, ttl time.Duration) error
	GetCode(ctx context.Context, email string) (string, error) // "" when absent
	DeleteCode(ctx context.Context, email string) error
	// StartCooldown returns false if a cooldown is already running for the
	// email.
	StartCooldown(ctx context.Context, email string, ttl time.Duration) (bool, error)
}

// RedisCodeStore backs CodeStore with redis SETEX / SET NX.
type RedisCodeStore struct {
	Client *redis.Client
}

func (s RedisCodeStore) SetCode(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.Client.Set(ctx, "authcode:"+email, code, ttl).Err()
}

func (s RedisCodeStore) GetCode(ctx context.Context, email string) (string, error) {
	code, err := s.Client.Get(ctx, "authcode:"+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return code, err
}

func (s RedisCodeStore) DeleteCode(ctx context.Context, email string) error {
	return s.Client.Del(ctx, "authcode:"+email).Err()
}

func (s RedisCodeStore) StartCooldown(ctx context.Context, email string, ttl time.Duration) (bool, error) {
	return s.Client.SetNX(ctx, "authcode:cooldown:"+email, "1", ttl).Result()
}

// MemoryCodeStore is the in-process fallback used when redis is not
// configured, and in tests.
type MemoryCodeStore struct {
	mu        sync.Mutex
	codes     map[string]memoryEntry
	cooldowns map[string]time.Time
}

type memoryEntry struct {
	code    string
	expires time.Time
}

func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{
		codes:     make(map[string]memoryEntry),
		cooldowns: make(map[string]time.Time),
	}
}

func (s *MemoryCodeStore) SetCode(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = memoryEntry{code: code, expires: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryCodeStore) GetCode(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[email]
	if !ok || time.Now().After(entry.expires) {
		delete(s.codes, email)
		return "", nil
	}
	return entry.code, nil
}

func (s *MemoryCodeStore) DeleteCode(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

func (s *MemoryCodeStore) StartCooldown(_ context.Context, email string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if until, ok := s.cooldowns[email]; ok && time.Now().Before(until) {
		return false, nil
	}
	s.cooldowns[email] = time.Now().Add(ttl)
	return true, nil
}

// AuthCodeService issues and checks one-time login codes.
type AuthCodeService struct {
	store    CodeStore
	mailer   Mailer
	ttl      time.Duration
	cooldown time.Duration
}

func NewAuthCodeService(store CodeStore, mailer Mailer, ttl, cooldown time.Duration) *AuthCodeService {
	return &AuthCodeService{store: store, mailer: mailer, ttl: ttl, cooldown: cooldown}
}

// RequestCode generates a code, stores it under the email with the
// configured TTL and mails it. Re-requests within the cooldown window
// return ErrCodeCooldown.
func (s *AuthCodeService) RequestCode(ctx context.Context, email string) error {
	allowed, err := s.store.StartCooldown(ctx, email, s.cooldown)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrCodeCooldown
	}

	code, err := utils.GenerateAuthCode(authCodeLength)
	if err != nil {
		return err
	}
	if err := s.store.SetCode(ctx, email, code, s.ttl); err != nil {
		return err
	}
	return s.mailer.Send(email, "Your login code",
		fmt.Sprintf("Your one-time login code: %s\nIt expires in %d minutes.", code, int(s.ttl.Minutes())))
}

// VerifyCode checks the code and consumes it on success.
func (s *AuthCodeService) VerifyCode(ctx context.Context, email, code string) error {
	stored, err := s.store.GetCode(ctx, email)
	if err != nil {
		return err
	}
	if stored == "" || stored != code {
		return ErrCodeInvalid
	}
	return s.store.DeleteCode(ctx, email)
}

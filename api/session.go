package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"github.com/linesmerrill/scammer-blacklist/models"
)

const (
	sessionCookie = "session"
	flashCookie   = "flash"
	maxSessionAge = 30 * 24 * time.Hour
	keyLength     = 32
)

// Errors for session management
var (
	ErrMissingSessionKey = errors.New("session keys not configured")
	ErrInvalidSessionKey = errors.New("invalid session key format")
	ErrSessionExpired    = errors.New("session expired")
)

// SessionConfig holds session manager configuration
type SessionConfig struct {
	// HashKey and BlockKey are hex encoded, at least 32 bytes each
	HashKey  string
	BlockKey string
	// IsSecure sets the Secure flag on cookies (true for HTTPS)
	IsSecure bool
	// AllowInsecureKeys generates random keys when none are configured
	AllowInsecureKeys bool
}

// SessionManager stores the login token and pending notifications in signed,
// encrypted cookies
type SessionManager struct {
	sc       *securecookie.SecureCookie
	isSecure bool
}

// SessionData represents the data stored in the session cookie
type SessionData struct {
	Token     string `json:"token"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// NewSessionManager creates a new session manager
func NewSessionManager(cfg SessionConfig) (*SessionManager, error) {
	hashKey, err := decodeKey(cfg.HashKey, cfg.AllowInsecureKeys)
	if err != nil {
		return nil, err
	}
	blockKey, err := decodeKey(cfg.BlockKey, cfg.AllowInsecureKeys)
	if err != nil {
		return nil, err
	}
	if cfg.HashKey == "" || cfg.BlockKey == "" {
		zap.S().Warn("session keys not configured, using random keys: sessions will not survive a restart")
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(maxSessionAge.Seconds()))

	return &SessionManager{sc: sc, isSecure: cfg.IsSecure}, nil
}

func decodeKey(keyHex string, allowRandom bool) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) < keyLength {
			return nil, ErrInvalidSessionKey
		}
		return key[:keyLength], nil
	}
	if !allowRandom {
		return nil, ErrMissingSessionKey
	}
	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// SetSession stores token in the session cookie until expiresAt, capped at 30 days
func (sm *SessionManager) SetSession(w http.ResponseWriter, token string, expiresAt time.Time) error {
	now := time.Now()
	if expiresAt.IsZero() || expiresAt.After(now.Add(maxSessionAge)) {
		expiresAt = now.Add(maxSessionAge)
	}
	data := SessionData{
		Token:     token,
		CreatedAt: now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	encoded, err := sm.sc.Encode(sessionCookie, data)
	if err != nil {
		return err
	}
	sm.setCookie(w, sessionCookie, encoded, int(time.Until(expiresAt).Seconds()))
	return nil
}

// GetSession reads and validates the session cookie
func (sm *SessionManager) GetSession(r *http.Request) (*SessionData, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, err
	}
	var data SessionData
	if err := sm.sc.Decode(sessionCookie, cookie.Value, &data); err != nil {
		return nil, err
	}
	if data.ExpiresAt != 0 && time.Now().Unix() >= data.ExpiresAt {
		return nil, ErrSessionExpired
	}
	return &data, nil
}

// ClearSession removes the session cookie
func (sm *SessionManager) ClearSession(w http.ResponseWriter) {
	sm.setCookie(w, sessionCookie, "", -1)
}

// Flash returns the notification sink of one response
func (sm *SessionManager) Flash(w http.ResponseWriter) *Flash {
	return &Flash{sm: sm, w: w}
}

// Flashes returns the notifications queued by a previous response and clears them
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []models.Notification {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	sm.setCookie(w, flashCookie, "", -1)

	var notes []models.Notification
	if err := sm.sc.Decode(flashCookie, cookie.Value, &notes); err != nil {
		zap.S().Warnw("dropping unreadable flash cookie", "error", err)
		return nil
	}
	return notes
}

func (sm *SessionManager) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   sm.isSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash queues notifications for the next rendered page
type Flash struct {
	sm      *SessionManager
	w       http.ResponseWriter
	pending []models.Notification
}

// Notify queues n. It must be called before the response is written.
func (f *Flash) Notify(n models.Notification) {
	f.pending = append(f.pending, n)
	encoded, err := f.sm.sc.Encode(flashCookie, f.pending)
	if err != nil {
		zap.S().Errorw("failed to encode flash", "error", err)
		return
	}
	// a later Set-Cookie for the same name replaces this one in the browser
	f.sm.setCookie(f.w, flashCookie, encoded, 60)
}

// queued returns the notifications set through this sink
func (f *Flash) queued() []models.Notification {
	return f.pending
}

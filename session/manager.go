package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/villicusbot/web/internal/errors"
)

// record is the serialized form of a server-side session.
type record struct {
	AccessToken string `json:"access_token"`
}

// Manager issues and resolves sessions. The backend is fixed at startup:
// store-backed sessions when a Store is configured, direct signed-cookie
// sessions otherwise. A store write failure still degrades to the direct
// cookie for that one response.
type Manager struct {
	codec *Codec
	store Store // nil means direct-cookie only
	log   zerolog.Logger
}

func NewManager(codec *Codec, store Store, log zerolog.Logger) *Manager {
	return &Manager{codec: codec, store: store, log: log}
}

// Issue creates a session for an access token and returns the cookie value to
// set. With a store configured the token is written server-side under
// session:<sid> and the cookie carries only the sid; otherwise (or when the
// write fails) the token is embedded in the signed cookie itself.
func (m *Manager) Issue(ctx context.Context, accessToken string) (string, error) {
	if m.store != nil {
		sid := newSessionID()
		data, err := json.Marshal(record{AccessToken: accessToken})
		if err != nil {
			return "", errors.Wrapf(err, "marshal session record")
		}
		err = m.store.Set(ctx, Key(sid), string(data), RecordTTL)
		if err == nil {
			return m.codec.Encode(Payload{SID: sid})
		}
		m.log.Warn().Err(err).Msg("session store write failed, falling back to cookie session")
	}

	return m.codec.Encode(Payload{AccessToken: accessToken})
}

// Resolve recovers the access token from a cookie value. ok is false for any
// cookie that cannot be traced to a token: bad signature, unknown or expired
// sid, or a sid cookie with no store configured. None of these are errors to
// the caller; the request is simply unauthenticated.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (string, bool) {
	payload := m.codec.Decode(cookieValue)
	if payload == nil {
		return "", false
	}

	if payload.SID != "" {
		if m.store == nil {
			return "", false
		}
		raw, err := m.store.Get(ctx, Key(payload.SID))
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				m.log.Warn().Err(err).Msg("session store read failed")
			}
			return "", false
		}
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return "", false
		}
		return rec.AccessToken, rec.AccessToken != ""
	}

	return payload.AccessToken, payload.AccessToken != ""
}

// newSessionID returns a URL-safe random session id.
func newSessionID() string {
	b := make([]byte, 24)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/carolcampos22/chatterbox/internal/api/handlers"

	"github.com/gorilla/sessions"
)

type contextKey string

// CredentialKey holds the raw credential string in the request context
const CredentialKey contextKey = "credential"

const (
	// SessionName is the cookie that carries the credential for browser clients
	SessionName = "chatterbox_session"
	// sessionTokenKey is the session value holding the token
	sessionTokenKey = "token"
)

var errNoSessionStore = errors.New("session store not configured")

// CredentialMiddleware pulls the caller's credential out of the request.
// It does not verify the credential; the post service does.
type CredentialMiddleware struct {
	store sessions.Store
}

// NewCredentialMiddleware creates a middleware reading sessions from store.
// A nil store disables the cookie fallback.
func NewCredentialMiddleware(store sessions.Store) *CredentialMiddleware {
	return &CredentialMiddleware{store: store}
}

// NewCookieStore builds the session store used for the credential cookie
func NewCookieStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// RequireCredential rejects requests that carry no credential with 401.
// The Authorization header wins over the session cookie.
func (m *CredentialMiddleware) RequireCredential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extract(r)
		if token == "" {
			handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), CredentialKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SaveCredential stores token in the session cookie
func (m *CredentialMiddleware) SaveCredential(w http.ResponseWriter, r *http.Request, token string) error {
	session, err := m.session(r)
	if err != nil {
		return err
	}
	session.Values[sessionTokenKey] = token
	return session.Save(r, w)
}

// ClearCredential expires the session cookie
func (m *CredentialMiddleware) ClearCredential(w http.ResponseWriter, r *http.Request) error {
	session, err := m.session(r)
	if err != nil {
		return err
	}
	delete(session.Values, sessionTokenKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func (m *CredentialMiddleware) session(r *http.Request) (*sessions.Session, error) {
	if m.store == nil {
		return nil, errNoSessionStore
	}
	session, err := m.store.Get(r, SessionName)
	if err != nil && session == nil {
		return nil, err
	}
	// A cookie signed with an old key yields a fresh session plus an error; use the fresh one.
	return session, nil
}

func (m *CredentialMiddleware) extract(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return header
	}

	if m.store == nil {
		return ""
	}
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		log.Printf("[AUTH_FAILURE] type=session_decode ip=%s method=%s path=%s error=%v",
			r.RemoteAddr, r.Method, r.URL.Path, err)
		return ""
	}
	token, _ := session.Values[sessionTokenKey].(string)
	return token
}

// GetCredential returns the raw credential injected by RequireCredential, or ""
func GetCredential(r *http.Request) string {
	token, _ := r.Context().Value(CredentialKey).(string)
	return token
}

// SetTestCredential sets the credential in the context for testing purposes
func SetTestCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CredentialKey, token)
}

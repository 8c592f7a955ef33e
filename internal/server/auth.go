package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/huntbase/zonehunt/internal/session"
)

var errNoSession = errors.New("no valid session")

// sessionFromRequest resolves the Bearer token to a live session.
func sessionFromRequest(r *http.Request, sessions *session.Registry) (*session.Session, error) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return nil, errNoSession
	}
	s, ok := sessions.Get(token)
	if !ok {
		return nil, errNoSession
	}
	return s, nil
}

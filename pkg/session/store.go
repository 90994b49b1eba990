// Package session keeps the database descriptor of a client between requests
// in a signed and encrypted cookie.
package session

import (
	"crypto/sha256"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

// keyDBDefinition is the session value holding the descriptor.
const keyDBDefinition = "db_definition"

func init() {
	gob.Register(models.DBDefinition{})
}

// Store reads and writes the descriptor of the requesting client. Each request
// decodes its own copy; nothing is shared between requests.
type Store struct {
	cookies *sessions.CookieStore
	name    string
}

// Options configure the session cookie.
type Options struct {
	Name   string
	MaxAge int
	Secure bool
}

// NewStore creates a Store. The secret can be any passphrase; the signing and
// encryption keys are derived from it with SHA-256 and must stay the same
// across restarts and replicas.
func NewStore(secret string, opts Options) (*Store, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	signKey := sha256.Sum256([]byte("sign:" + secret))
	encKey := sha256.Sum256([]byte("encrypt:" + secret))

	cookies := sessions.NewCookieStore(signKey[:], encKey[:])
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	cookies.MaxAge(opts.MaxAge)
	return &Store{cookies: cookies, name: opts.Name}, nil
}

// DBDefinition returns the descriptor stored for the client of r.
// It fails with apperrors.ErrMissingDatabaseDefinition when none is stored.
func (s *Store) DBDefinition(r *http.Request) (*models.DBDefinition, error) {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrMissingDatabaseDefinition, err)
	}
	db, ok := sess.Values[keyDBDefinition].(models.DBDefinition)
	if !ok {
		return nil, apperrors.ErrMissingDatabaseDefinition
	}
	return &db, nil
}

// SaveDBDefinition stores db for the client of r.
func (s *Store) SaveDBDefinition(w http.ResponseWriter, r *http.Request, db models.DBDefinition) error {
	sess, _ := s.cookies.Get(r, s.name) // a stale cookie yields a fresh session
	sess.Values[keyDBDefinition] = db
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored descriptor and expires the cookie.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, s.name)
	delete(sess.Values, keyDBDefinition)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore("test-secret", Options{Name: "scaffold_session", MaxAge: 3600})
	require.NoError(t, err)
	return s
}

// carryCookies copies Set-Cookie headers of rec onto a new request.
func carryCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	db := models.DBDefinition{
		DriverClass: "com.mysql.cj.jdbc.Driver",
		URL:         "jdbc:mysql://localhost:3306/shop",
		Username:    "root",
		Password:    "secret",
	}

	rec := httptest.NewRecorder()
	require.NoError(t, s.SaveDBDefinition(rec, httptest.NewRequest(http.MethodPut, "/", nil), db))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, cookies[0].Value, "secret")

	got, err := s.DBDefinition(carryCookies(rec))
	require.NoError(t, err)
	assert.Equal(t, db, *got)
}

func TestStore_Missing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.DBDefinition(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, apperrors.ErrMissingDatabaseDefinition)
}

func TestStore_ForeignSecretRejected(t *testing.T) {
	s := newTestStore(t)
	rec := httptest.NewRecorder()
	require.NoError(t, s.SaveDBDefinition(rec, httptest.NewRequest(http.MethodPut, "/", nil), models.DBDefinition{URL: "jdbc:mysql://h/db"}))

	other, err := NewStore("another-secret", Options{Name: "scaffold_session", MaxAge: 3600})
	require.NoError(t, err)

	_, err = other.DBDefinition(carryCookies(rec))
	assert.ErrorIs(t, err, apperrors.ErrMissingDatabaseDefinition)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	rec := httptest.NewRecorder()
	require.NoError(t, s.SaveDBDefinition(rec, httptest.NewRequest(http.MethodPut, "/", nil), models.DBDefinition{URL: "jdbc:mysql://h/db"}))

	clearRec := httptest.NewRecorder()
	require.NoError(t, s.Clear(clearRec, carryCookies(rec)))

	cookies := clearRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestNewStore_RequiresSecret(t *testing.T) {
	_, err := NewStore("", Options{Name: "s"})
	assert.Error(t, err)
}

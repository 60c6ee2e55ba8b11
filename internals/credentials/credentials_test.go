package credentials

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

func TestStore_keyring(t *testing.T) {
	keyring.MockInit()
	dir := t.TempDir()

	store, err := New(dir)
	require.NoError(t, err)
	assert.False(t, store.NoKeyRingMode)

	_, err = store.Get("repo.example.com")
	assert.ErrorIs(t, err, ErrNoCredentials)

	require.NoError(t, store.Set(&Credentials{Host: "Repo.Example.com", User: "jane", Password: "secret"}))

	// a new store finds the persisted credentials
	reloaded, err := New(dir)
	require.NoError(t, err)
	creds, err := reloaded.Get("repo.example.com")
	require.NoError(t, err)
	assert.Equal(t, "jane", creds.User)
	assert.Equal(t, []string{"repo.example.com"}, reloaded.Hosts())

	require.NoError(t, reloaded.Remove("repo.example.com"))
	_, err = reloaded.Get("repo.example.com")
	assert.ErrorIs(t, err, ErrNoCredentials)
	assert.ErrorIs(t, reloaded.Remove("repo.example.com"), ErrNoCredentials)
}

func TestStore_fileMode(t *testing.T) {
	dir := t.TempDir()
	store := &Store{globalDir: dir, NoKeyRingMode: true, hosts: map[string]*Credentials{}}

	require.NoError(t, store.Set(&Credentials{Host: "repo.example.com:443", Token: &oauth2.Token{AccessToken: "abc"}}))
	assert.FileExists(t, dir+"/"+credentialsFile)

	reloaded := &Store{globalDir: dir, hosts: map[string]*Credentials{}}
	require.NoError(t, reloaded.findFromFile())
	creds, err := reloaded.Get("repo.example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc", creds.Token.AccessToken)
}

func TestTransport(t *testing.T) {
	keyring.MockInit()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()
	host := mustHost(t, srv.URL)

	store, err := New(t.TempDir())
	require.NoError(t, err)
	client := store.WrapClient(srv.Client())

	// no credentials
	res, err := client.Get(srv.URL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Empty(t, gotAuth)

	require.NoError(t, store.Set(&Credentials{Host: host, User: "jane", Password: "secret"}))
	res, err = client.Get(srv.URL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "Basic amFuZTpzZWNyZXQ=", gotAuth)

	require.NoError(t, store.Set(&Credentials{Host: host, Token: &oauth2.Token{AccessToken: "tkn"}}))
	res, err = client.Get(srv.URL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "Bearer tkn", gotAuth)
}

func mustHost(t *testing.T, raw string) string {
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Host
}

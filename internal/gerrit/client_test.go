package gerrit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/gertty/internal/config"
	"github.com/thoreinstein/gertty/internal/netpolicy"
)

func testConfig(url, auth string) *config.Config {
	return &config.Config{
		URL:      url + "/",
		Username: "alice",
		Password: "s3cret",
		AuthType: auth,
		Network:  netpolicy.Default(),
	}
}

func TestVersion_StripsXSSIPrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/a/config/server/version", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "alice", user)
		assert.Equal(t, "s3cret", pass)
		_, _ = w.Write([]byte(")]}'\n\"3.9.1\"\n"))
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL, "basic"))
	require.NoError(t, err)

	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.9.1", v)
}

func TestSelf(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/a/accounts/self", r.URL.Path)
		_, _ = w.Write([]byte(")]}'\n{\"_account_id\":1000,\"name\":\"Alice\",\"username\":\"alice\"}"))
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL, "basic"))
	require.NoError(t, err)

	a, err := c.Self(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1000, a.ID)
	assert.Equal(t, "alice", a.Username)
}

func TestGet_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL, "basic"))
	require.NoError(t, err)

	_, err = c.Version(context.Background())
	require.Error(t, err)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.True(t, gerr.Unauthorized())
	assert.Equal(t, "config/server/version", gerr.Path)
}

func TestFormAuth_LogsInOnce(t *testing.T) {
	var logins atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/login/", func(w http.ResponseWriter, r *http.Request) {
		logins.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		http.SetCookie(w, &http.Cookie{Name: "GerritAccount", Value: "session", Path: "/"})
	})
	mux.HandleFunc("/a/config/server/version", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("GerritAccount"); err != nil {
			http.Error(w, "no session", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(")]}'\n\"3.9.1\""))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := NewClient(testConfig(srv.URL, "form"))
	require.NoError(t, err)

	for range 2 {
		v, err := c.Version(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "3.9.1", v)
	}
	assert.Equal(t, int32(1), logins.Load())
}

func TestDecode(t *testing.T) {
	var out map[string]int
	require.NoError(t, Decode([]byte(")]}'\n{\"a\":1}"), &out))
	assert.Equal(t, 1, out["a"])

	require.NoError(t, Decode([]byte(`{"a":2}`), &out))
	assert.Equal(t, 2, out["a"])

	assert.Error(t, Decode([]byte("not json"), &out))
}

func TestNewClient_BadCABundle(t *testing.T) {
	cfg := testConfig("https://review.example.org", "basic")
	cfg.Network.CABundle = "/nonexistent/ca.pem"
	_, err := NewClient(cfg)
	assert.Error(t, err)
}

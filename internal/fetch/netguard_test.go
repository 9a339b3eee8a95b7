package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsPublicAddr(t *testing.T) {
	tests := []struct {
		addr   string
		public bool
	}{
		{"93.184.216.34", true},
		{"2606:2800:220:1:248:1893:25c8:1946", true},
		{"127.0.0.1", false},
		{"::1", false},
		{"10.1.2.3", false},
		{"172.16.0.1", false},
		{"192.168.1.10", false},
		{"169.254.169.254", false},
		{"fe80::1", false},
		{"fd00::1", false},
		{"100.64.0.1", false},
		{"0.0.0.0", false},
		{"::", false},
		{"224.0.0.1", false},
		{"255.255.255.255", false},
		{"::ffff:127.0.0.1", false},
		{"::ffff:10.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.public, IsPublicAddr(netip.MustParseAddr(tt.addr)))
		})
	}
}

func TestGet_BlocksNonPublicAddresses(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte("<html><body>internal</body></html>"))
	}))
	t.Cleanup(server.Close)

	client := NewClient(DefaultOptions(), zap.NewNop())

	for _, target := range []string{
		server.URL,
		"http://169.254.169.254/latest/meta-data/",
		"http://10.0.0.1/",
		"http://[::1]:8080/",
	} {
		t.Run(target, func(t *testing.T) {
			_, err := client.Get(context.Background(), target)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBlockedAddress), "got %v", err)

			var fetchErr *Error
			assert.ErrorAs(t, err, &fetchErr)
		})
	}
	assert.Zero(t, hits)
}

func TestPosting_NoBrowserWhenGuarded(t *testing.T) {
	renderer := &fakeRenderer{html: "<html><body><main>rendered</main></body></html>"}

	opts := DefaultOptions()
	opts.UseBrowser = true
	client := NewClient(opts, nil,
		WithRenderer(renderer),
		WithHTTPClient(&http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			rec := httptest.NewRecorder()
			_, _ = rec.WriteString(`<html><body><div id="root"></div></body></html>`)
			return rec.Result(), nil
		})}),
	)

	posting, err := client.Posting(context.Background(), "https://jobs.example.com/1")
	require.NoError(t, err)
	assert.Equal(t, 0, renderer.calls)
	assert.False(t, posting.Rendered)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

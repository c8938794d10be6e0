package daemon

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaemon_NewAPIOptions(t *testing.T) {
	t.Parallel()

	t.Run("default options", func(t *testing.T) {
		t.Parallel()

		opts, err := NewAPIOptions()
		require.NoError(t, err)
		assert.Equal(t, DefaultAPIShutdownTimeout(), opts.ShutdownTimeout)
		assert.Equal(t, DefaultAPIRequestTimeout(), opts.RequestTimeout)
		assert.False(t, opts.CORS.Enabled)
	})

	t.Run("with CORS option", func(t *testing.T) {
		t.Parallel()

		origins := []string{"http://localhost:3000", "https://example.com"}
		opts, err := NewAPIOptions(WithCORSAllowOrigins(origins))

		require.NoError(t, err)
		assert.False(t, opts.CORS.Enabled)
		assert.Equal(t, origins, opts.CORS.AllowOrigins)
		assert.Contains(t, opts.CORS.AllowMethods, http.MethodGet)
		assert.Contains(t, opts.CORS.AllowMethods, http.MethodPost)
		assert.ElementsMatch(t, DefaultCORSAllowHeaders(), opts.CORS.AllowHeaders)
		assert.Equal(t, 5*time.Minute, opts.CORS.MaxAge)
	})

	t.Run("options override in order", func(t *testing.T) {
		t.Parallel()

		opts, err := NewAPIOptions(
			WithShutdownTimeout(5*time.Second),
			nil,
			WithShutdownTimeout(10*time.Second),
		)

		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, opts.ShutdownTimeout)
	})
}

func TestDaemon_APIOptions_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opt     APIOption
		wantErr string
	}{
		{"zero shutdown timeout", WithShutdownTimeout(0), "shutdown timeout must be positive"},
		{"negative shutdown timeout", WithShutdownTimeout(-time.Second), "shutdown timeout must be positive"},
		{"zero request timeout", WithRequestTimeout(0), "request timeout must be positive"},
		{"negative max age", WithCORSMaxAge(-time.Second), "CORS max age must not be negative"},
		{"zero max age", WithCORSMaxAge(0), ""},
		{"positive request timeout", WithRequestTimeout(time.Second), ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewAPIOptions(tc.opt)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestDaemon_APIOptions_Defaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Accept", "Accept-Language", "Content-Language", "Content-Type"}, DefaultCORSAllowHeaders())
	assert.Equal(t, []string{http.MethodGet, http.MethodPost, http.MethodOptions}, DefaultCORSAllowMethods())
	assert.False(t, DefaultCORSAllowCredentials())
	assert.Equal(t, 5*time.Minute, DefaultCORSMaxAge())
	assert.Equal(t, 5*time.Second, DefaultAPIShutdownTimeout())
	assert.Equal(t, 30*time.Second, DefaultAPIRequestTimeout())
}

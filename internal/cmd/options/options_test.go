package options

import (
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/cloudnook/mcpgw/internal/config"
	"github.com/cloudnook/mcpgw/internal/gateway"
)

type fakeLoader struct {
	config.Loader
}

type fakeInitializer struct {
	config.Initializer
}

func TestNewOptions_NoOverrides(t *testing.T) {
	t.Parallel()

	opts, err := NewOptions()
	require.NoError(t, err)

	require.NotNil(t, opts.ConfigLoader)
	require.NotNil(t, opts.ConfigInitializer)
	require.NotNil(t, opts.BackendFactory)
}

func TestNewOptions_WithOverrides(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{}
	initializer := &fakeInitializer{}
	called := false
	factory := func(string, time.Duration, hclog.Logger) (gateway.Backend, error) {
		called = true
		return nil, nil
	}

	opts, err := NewOptions(
		WithConfigLoader(loader),
		WithConfigInitializer(initializer),
		WithBackendFactory(factory),
	)
	require.NoError(t, err)

	require.Equal(t, loader, opts.ConfigLoader)
	require.Equal(t, initializer, opts.ConfigInitializer)

	_, _ = opts.BackendFactory("", 0, nil)
	require.True(t, called)
}

func TestNewOptions_NilValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  CmdOption
		want string
	}{
		{"loader", WithConfigLoader(nil), "config loader cannot be nil"},
		{"initializer", WithConfigInitializer(nil), "config initializer cannot be nil"},
		{"backend factory", WithBackendFactory(nil), "backend factory cannot be nil"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewOptions(tc.opt)
			require.EqualError(t, err, tc.want)
		})
	}
}

func TestNewOptions_WithNilOption(t *testing.T) {
	t.Parallel()

	_, err := NewOptions(nil)
	require.NoError(t, err)
}

func TestNewOptions_WithFailingOption(t *testing.T) {
	t.Parallel()

	badOpt := func(*CmdOptions) error {
		return errors.New("fail")
	}

	_, err := NewOptions(badOpt)
	require.ErrorContains(t, err, "fail")
}

func TestDefaultBackendFactory(t *testing.T) {
	t.Parallel()

	b, err := DefaultBackendFactory("http://localhost:8080", 5*time.Second, hclog.NewNullLogger())
	require.NoError(t, err)
	require.IsType(t, &gateway.Client{}, b)

	_, err = DefaultBackendFactory("", 0, hclog.NewNullLogger())
	require.Error(t, err)
}

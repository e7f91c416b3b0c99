package platforms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

func TestFactory_Create_Dropbox(t *testing.T) {
	factory := NewFactory()

	adapter, err := factory.Create(context.Background(), domain.Integration{
		Type:   domain.PlatformDropbox,
		Config: map[string]string{ConfigAccessToken: "token"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformDropbox, adapter.Platform())
}

func TestFactory_Create_GitHub(t *testing.T) {
	factory := NewFactory()

	adapter, err := factory.Create(context.Background(), domain.Integration{
		Type: domain.PlatformGitHub,
		Config: map[string]string{
			ConfigAccessToken: "token",
			ConfigOwner:       "octocat",
			ConfigRepo:        "hello",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformGitHub, adapter.Platform())
}

func TestFactory_Create_OneDrive(t *testing.T) {
	factory := NewFactory()

	adapter, err := factory.Create(context.Background(), domain.Integration{
		Type:   domain.PlatformMicrosoft,
		Config: map[string]string{ConfigAccessToken: "token"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformMicrosoft, adapter.Platform())
}

func TestFactory_Create_Device(t *testing.T) {
	factory := NewFactory()

	adapter, err := factory.Create(context.Background(), domain.Integration{
		Type:   domain.PlatformUbuntu,
		Config: map[string]string{ConfigRoot: t.TempDir()},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformUbuntu, adapter.Platform())
}

func TestFactory_Create_MissingToken(t *testing.T) {
	factory := NewFactory()

	_, err := factory.Create(context.Background(), domain.Integration{
		Type:   domain.PlatformDropbox,
		Config: map[string]string{},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFactory_Create_MissingRepo(t *testing.T) {
	factory := NewFactory()

	_, err := factory.Create(context.Background(), domain.Integration{
		Type:   domain.PlatformGitHub,
		Config: map[string]string{ConfigAccessToken: "token", ConfigOwner: "octocat"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFactory_Create_UnsupportedPlatform(t *testing.T) {
	factory := NewFactory()

	_, err := factory.Create(context.Background(), domain.Integration{
		Type: domain.PlatformOther,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

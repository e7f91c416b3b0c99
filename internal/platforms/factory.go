// Package platforms builds platform adapters from integration configuration.
package platforms

import (
	"context"
	"fmt"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/platforms/device"
	"github.com/filehub-labs/filehub/internal/platforms/dropboxfs"
	"github.com/filehub-labs/filehub/internal/platforms/githubrepo"
	"github.com/filehub-labs/filehub/internal/platforms/googledrive"
	"github.com/filehub-labs/filehub/internal/platforms/onedrive"
)

// Integration config keys read by the factory.
const (
	// ConfigAccessToken is the OAuth access token for cloud platforms.
	ConfigAccessToken = "access_token"

	// ConfigRoot is the folder to list (Dropbox) or the directory to scan
	// (device platforms).
	ConfigRoot = "root"

	// ConfigOwner and ConfigRepo select the GitHub repository.
	ConfigOwner = "owner"
	ConfigRepo  = "repo"
)

// Ensure Factory implements the interface.
var _ driven.AdapterFactory = (*Factory)(nil)

// Factory creates platform adapters from integration configuration.
type Factory struct{}

// NewFactory creates an adapter factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create builds an adapter for the integration's platform. Unknown platforms
// yield domain.ErrUnsupportedPlatform.
func (f *Factory) Create(ctx context.Context, integration domain.Integration) (driven.PlatformAdapter, error) {
	cfg := integration.Config

	switch integration.Type {
	case domain.PlatformDropbox:
		token, err := required(cfg, ConfigAccessToken, integration.Type)
		if err != nil {
			return nil, err
		}
		return dropboxfs.New(token, cfg[ConfigRoot]), nil

	case domain.PlatformGoogle:
		token, err := required(cfg, ConfigAccessToken, integration.Type)
		if err != nil {
			return nil, err
		}
		return googledrive.New(ctx, token)

	case domain.PlatformGitHub:
		token, err := required(cfg, ConfigAccessToken, integration.Type)
		if err != nil {
			return nil, err
		}
		owner, err := required(cfg, ConfigOwner, integration.Type)
		if err != nil {
			return nil, err
		}
		repo, err := required(cfg, ConfigRepo, integration.Type)
		if err != nil {
			return nil, err
		}
		return githubrepo.New(ctx, token, owner, repo), nil

	case domain.PlatformMicrosoft:
		token, err := required(cfg, ConfigAccessToken, integration.Type)
		if err != nil {
			return nil, err
		}
		return onedrive.New(token), nil

	case domain.PlatformIOS, domain.PlatformUbuntu, domain.PlatformWindows, domain.PlatformLocal:
		root, err := required(cfg, ConfigRoot, integration.Type)
		if err != nil {
			return nil, err
		}
		return device.New(integration.Type, root)
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, integration.Type)
}

// required reads a config key, erroring when it is absent or empty.
func required(cfg map[string]string, key string, platform domain.Platform) (string, error) {
	value := cfg[key]
	if value == "" {
		return "", fmt.Errorf("%w: %s integration missing %q", domain.ErrInvalidInput, platform, key)
	}
	return value, nil
}

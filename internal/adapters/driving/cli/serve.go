package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	drive "google.golang.org/api/drive/v3"

	"github.com/filehub-labs/filehub/internal/adapters/driven/statecache"
	"github.com/filehub-labs/filehub/internal/adapters/driving/httpapi"
	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the HTTP API server that exposes file listing, similarity
search, sync and integration management endpoints.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if fileService == nil || searchService == nil || syncOrchestrator == nil {
		return errors.New("services not configured")
	}

	serverCfg := httpapi.Config{Addr: ":8080", AllowedOrigins: []string{"*"}}
	if cfg != nil {
		serverCfg.Addr = cfg.Server.Addr
		serverCfg.AllowedOrigins = cfg.Server.AllowedOrigins
	}
	if serveAddr != "" {
		serverCfg.Addr = serveAddr
	}

	var flow *httpapi.OAuthFlow
	if configs := oauthConfigs(serverCfg.Addr); len(configs) > 0 {
		flow = httpapi.NewOAuthFlow(configs, statecache.New(), integrationStore)
	} else {
		logger.Info("No OAuth client credentials configured, OAuth routes disabled")
	}

	server := httpapi.New(serverCfg, fileService, searchService,
		syncOrchestrator, integrationStore, flow)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}

// oauthConfigs builds per-platform OAuth client configurations from the
// environment. Platforms without credentials are left out.
func oauthConfigs(addr string) map[domain.Platform]*oauth2.Config {
	redirect := os.Getenv("FILEHUB_OAUTH_REDIRECT_URL")
	if redirect == "" {
		redirect = defaultRedirectURL(addr)
	}

	configs := make(map[domain.Platform]*oauth2.Config)
	add := func(platform domain.Platform, prefix string, endpoint oauth2.Endpoint, scopes []string) {
		id := os.Getenv("FILEHUB_" + prefix + "_CLIENT_ID")
		secret := os.Getenv("FILEHUB_" + prefix + "_CLIENT_SECRET")
		if id == "" || secret == "" {
			return
		}
		configs[platform] = &oauth2.Config{
			ClientID:     id,
			ClientSecret: secret,
			Endpoint:     endpoint,
			RedirectURL:  redirect,
			Scopes:       scopes,
		}
	}

	add(domain.PlatformDropbox, "DROPBOX", endpoints.Dropbox, nil)
	add(domain.PlatformGoogle, "GOOGLE", endpoints.Google,
		[]string{drive.DriveReadonlyScope})
	add(domain.PlatformGitHub, "GITHUB", endpoints.GitHub, []string{"repo"})
	add(domain.PlatformMicrosoft, "MICROSOFT", endpoints.AzureAD("common"),
		[]string{"Files.Read", "offline_access"})

	return configs
}

// defaultRedirectURL derives the callback URL from the listen address so a
// local setup works without extra configuration.
func defaultRedirectURL(addr string) string {
	host := addr
	if strings.HasPrefix(addr, ":") {
		host = "localhost" + addr
	}
	return "http://" + host + "/api/oauth/callback"
}

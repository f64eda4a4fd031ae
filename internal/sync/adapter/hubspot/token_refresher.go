package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "hubsync/internal/shared/errors"
	"hubsync/internal/shared/logger"
	"hubsync/internal/sync/config"
	"hubsync/internal/sync/domain/repository"

	"go.uber.org/zap"
)

const oauthTokenPath = "/oauth/v1/token"

// OAuthTokenRefresher exchanges an account's refresh token for a new
// access token and persists the result. It implements
// repository.TokenRefresher. Refreshing is idempotent: a repeated
// exchange simply yields another valid access token.
type OAuthTokenRefresher struct {
	client     *Client
	accounts   repository.AccountRepository
	cfg        *config.HubSpotConfig
	httpClient *http.Client
	log        logger.Logger
}

// NewOAuthTokenRefresher creates a token refresher bound to the given
// CRM client. Refreshed tokens are installed on the client and written
// through the account repository.
func NewOAuthTokenRefresher(client *Client, accounts repository.AccountRepository, cfg *config.HubSpotConfig, log logger.Logger) *OAuthTokenRefresher {
	return &OAuthTokenRefresher{
		client:     client,
		accounts:   accounts,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		log:        log.WithComponent("token_refresher"),
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// RefreshAccessToken exchanges the stored refresh token, installs the
// new access token on the CRM client and persists it for the account.
func (r *OAuthTokenRefresher) RefreshAccessToken(ctx context.Context, hubID string) (time.Time, error) {
	account, err := r.accounts.GetAccountByHubID(ctx, hubID)
	if err != nil {
		return time.Time{}, err
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", r.cfg.ClientID)
	form.Set("client_secret", r.cfg.ClientSecret)
	form.Set("refresh_token", account.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+oauthTokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return time.Time{}, apperrors.NewInternalError("failed to build token refresh request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return time.Time{}, apperrors.NewInfrastructureError("token refresh request failed").WithCause(err).WithComponent("token_refresher")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, apperrors.NewAuthenticationError(fmt.Sprintf("token refresh returned status %d", resp.StatusCode)).
			WithComponent("token_refresher").
			WithDetail("hub_id", hubID)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return time.Time{}, apperrors.NewInfrastructureError("failed to decode token response").WithCause(err).WithComponent("token_refresher")
	}

	expiresAt := time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	if err := r.accounts.UpdateCredentials(ctx, hubID, tok.AccessToken, expiresAt); err != nil {
		return time.Time{}, err
	}
	r.client.SetAccessToken(tok.AccessToken)

	r.log.WithFields(map[string]interface{}{
		"hub_id":     hubID,
		"expires_at": expiresAt,
	}).Info("Access token refreshed")

	// The wire logger only sees the fact, never the token.
	r.client.log.Debug("credentials rotated", zap.String("hub_id", hubID))

	return expiresAt, nil
}

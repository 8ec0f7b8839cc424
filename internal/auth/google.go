package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleProfile is the provider-attested identity returned from Google's
// userinfo endpoint.
type GoogleProfile struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleVerifier abstracts the federated identity provider round trip so
// handlers can be tested without Google.
type GoogleVerifier interface {
	// AuthURL generates the authorization URL for the consent redirect.
	AuthURL(state string) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// Profile fetches the attested user profile.
	Profile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error)
}

type googleVerifier struct {
	config      oauth2.Config
	userInfoURL string
}

// NewGoogleVerifier creates the Google OAuth verifier.
func NewGoogleVerifier(clientID, clientSecret, callbackURL string) GoogleVerifier {
	return &googleVerifier{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

func (v *googleVerifier) AuthURL(state string) string {
	return v.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (v *googleVerifier) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return v.config.Exchange(ctx, code)
}

func (v *googleVerifier) Profile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error) {
	client := v.config.Client(ctx, token)

	resp, err := client.Get(v.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &profile, nil
}

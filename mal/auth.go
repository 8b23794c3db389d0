// Package mal provides a client for the MyAnimeList REST API.
package mal

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mangasan-cli/mangasan/auth"
	"github.com/mangasan-cli/mangasan/key"
	"github.com/mangasan-cli/mangasan/network"
	"github.com/spf13/viper"
)

const (
	tokenName = "mal"
	// defaultClientID is the bundled public API client. Users can override it
	// through the config when they registered their own application.
	defaultClientID = "8cdf92d70fbd7228dab4098523f6be68"
	authEndpoint    = "https://myanimelist.net/v1/oauth2/authorize"
	tokenEndpoint   = "https://myanimelist.net/v1/oauth2/token"
	redirectURI     = "http://localhost:8080/callback"
)

// Token encapsulates the OAuth2 access and refresh tokens retrieved from MyAnimeList.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// clientID resolves the effective API client ID: the configured one when set,
// the bundled one otherwise.
func clientID() string {
	if id := viper.GetString(key.MALClientID); id != "" {
		return id
	}
	return defaultClientID
}

// GenerateCodeVerifier generates a cryptographically secure random string for the PKCE challenge.
func GenerateCodeVerifier() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GetAuthURL constructs the authorization URI for the OAuth2 PKCE flow.
// MyAnimeList only supports the plain challenge method, so the challenge
// equals the verifier.
func GetAuthURL(codeVerifier string) string {
	v := url.Values{}
	v.Set("response_type", "code")
	v.Set("client_id", clientID())
	v.Set("code_challenge", codeVerifier)
	v.Set("code_challenge_method", "plain")
	v.Set("redirect_uri", redirectURI)

	return authEndpoint + "?" + v.Encode()
}

// ExchangeCode trades the authorization code for a set of OAuth2 tokens.
func ExchangeCode(code string, codeVerifier string) (*Token, error) {
	values := url.Values{}
	values.Set("client_id", clientID())
	values.Set("code", code)
	values.Set("code_verifier", codeVerifier)
	values.Set("grant_type", "authorization_code")
	values.Set("redirect_uri", redirectURI)

	return requestToken(values)
}

// RefreshToken renews an expired access token using the stored refresh token
// and persists the replacement.
func RefreshToken() error {
	token, err := LoadToken()
	if err != nil {
		return err
	}

	values := url.Values{}
	values.Set("client_id", clientID())
	values.Set("grant_type", "refresh_token")
	values.Set("refresh_token", token.RefreshToken)

	newToken, err := requestToken(values)
	if err != nil {
		return err
	}

	return SaveToken(newToken)
}

func requestToken(values url.Values) (*Token, error) {
	req, err := http.NewRequest(http.MethodPost, tokenEndpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := network.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mal authentication failed: %s", string(body))
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

// SaveToken serializes and persists the OAuth2 token to the system keyring.
func SaveToken(token *Token) error {
	bytes, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return auth.SetToken(tokenName, string(bytes))
}

// LoadToken retrieves and deserializes the OAuth2 token from the system keyring.
func LoadToken() (*Token, error) {
	str, err := auth.GetToken(tokenName)
	if err != nil {
		return nil, err
	}

	var token Token
	if err := json.Unmarshal([]byte(str), &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteToken permanently removes the MyAnimeList token from the system keyring.
func DeleteToken() error {
	return auth.DeleteToken(tokenName)
}

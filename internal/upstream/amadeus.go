package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"tripcraft/internal/auth"
)

const amadeusTokenKey = "amadeus"

// ErrMissingCredentials is returned when the hotel search API is not configured.
var ErrMissingCredentials = errors.New("amadeus: client credentials are not configured")

// AmadeusClient searches hotel offers using a client-credentials token.
type AmadeusClient struct {
	baseURL string
	http    *http.Client
	creds   clientcredentials.Config
	tokens  auth.TokenStoreInterface
}

// NewAmadeusClient creates a hotel search client. tokens may cache access tokens between calls.
func NewAmadeusClient(baseURL, clientID, clientSecret string, httpClient *http.Client, tokens auth.TokenStoreInterface) *AmadeusClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &AmadeusClient{
		baseURL: baseURL,
		http:    httpClient,
		creds: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     baseURL + "/v1/security/oauth2/token",
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		tokens: tokens,
	}
}

func (c *AmadeusClient) token(ctx context.Context) (*oauth2.Token, error) {
	if c.creds.ClientID == "" || c.creds.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if c.tokens != nil {
		if tok, ok := c.tokens.GetUpstreamToken(ctx, amadeusTokenKey); ok {
			return tok, nil
		}
	}

	tok, err := c.creds.Token(context.WithValue(ctx, oauth2.HTTPClient, c.http))
	if err != nil {
		return nil, fmt.Errorf("amadeus: fetch token: %w", err)
	}
	if c.tokens != nil {
		_ = c.tokens.StoreUpstreamToken(ctx, amadeusTokenKey, tok)
	}
	return tok, nil
}

// HotelOffers returns the raw hotel offers document for a city and stay.
func (c *AmadeusClient) HotelOffers(ctx context.Context, cityCode, checkIn, checkOut string) (json.RawMessage, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("cityCode", cityCode)
	params.Set("checkInDate", checkIn)
	params.Set("checkOutDate", checkOut)
	params.Set("adults", "1")
	params.Set("roomQuantity", "1")
	params.Set("currency", "USD")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v3/shopping/hotel-offers?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus: build request: %w", err)
	}
	tok.SetAuthHeader(req)

	var out json.RawMessage
	if err := doJSON(ctx, c.http, "amadeus", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

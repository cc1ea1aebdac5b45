package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// UnsplashClient searches photos.
type UnsplashClient struct {
	baseURL   string
	accessKey string
	http      *http.Client
}

// NewUnsplashClient creates a photo search client.
func NewUnsplashClient(baseURL, accessKey string, httpClient *http.Client) *UnsplashClient {
	return &UnsplashClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		http:      httpClient,
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchPhoto returns the regular size URL of the best match for query.
// found is false when the search has no results.
func (c *UnsplashClient) SearchPhoto(ctx context.Context, query string) (photoURL string, found bool, err error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return "", false, fmt.Errorf("unsplash: build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	var out unsplashSearchResponse
	if err := doJSON(ctx, c.http, "unsplash", req, &out); err != nil {
		return "", false, err
	}
	if len(out.Results) == 0 {
		return "", false, nil
	}
	if out.Results[0].URLs.Regular == "" {
		return "", false, errors.New("unsplash: result has no regular url")
	}
	return out.Results[0].URLs.Regular, true, nil
}

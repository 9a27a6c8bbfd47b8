package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/seventour/seventour/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the backend. Safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   CredentialProvider
}

// NewHTTPClient builds a client for the given base URL (e.g.
// "http://localhost:8000/api/v1"). Timeouts are owned by the transport layer;
// callers do not enforce their own.
func NewHTTPClient(baseURL string, timeout time.Duration, creds CredentialProvider) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Credential is re-resolved per request; there is no cached header state.
	if token := c.creds.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// parseAPIError normalizes the backend's field-keyed error body. Values may
// be a single string or an array of strings; anything unparseable collapses
// into a bare status error.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Fields: map[string][]string{}}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}
	for key, val := range raw {
		switch v := val.(type) {
		case string:
			apiErr.Fields[key] = []string{v}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					apiErr.Fields[key] = append(apiErr.Fields[key], s)
				}
			}
		}
	}
	return apiErr
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	payload := &AuthPayload{}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login/", nil, body, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthPayload, error) {
	payload := &AuthPayload{}
	if err := c.do(ctx, http.MethodPost, "/auth/registration/", nil, req, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GoogleLogin exchanges a Google ID token for a backend session. The backend
// expects the ID token in the access_token field.
func (c *HTTPClient) GoogleLogin(ctx context.Context, idToken string) (*AuthPayload, error) {
	payload := &AuthPayload{}
	body := map[string]string{"access_token": idToken}
	if err := c.do(ctx, http.MethodPost, "/auth/google/", nil, body, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	user := &models.User{}
	if err := c.do(ctx, http.MethodGet, "/auth/user/", nil, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil, nil)
}

func (c *HTTPClient) RefreshToken(ctx context.Context, refresh string) (string, error) {
	var resp struct {
		Access string `json:"access"`
	}
	body := map[string]string{"refresh": refresh}
	if err := c.do(ctx, http.MethodPost, "/auth/token/refresh/", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

func (c *HTTPClient) TourPackages(ctx context.Context, q PackageQuery) (*models.TourPackagePage, error) {
	query := url.Values{}
	if q.CountryID > 0 {
		query.Set("country_id", strconv.FormatInt(q.CountryID, 10))
	}
	if q.VisaType != "" {
		query.Set("visa_type", q.VisaType)
	}
	if q.PriceMin != "" {
		query.Set("price_min", q.PriceMin)
	}
	if q.PriceMax != "" {
		query.Set("price_max", q.PriceMax)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Ordering != "" {
		query.Set("ordering", q.Ordering)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(q.PageSize))
	}

	page := &models.TourPackagePage{}
	if err := c.do(ctx, http.MethodGet, "/tours/packages/", query, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *HTTPClient) TourPackage(ctx context.Context, id int64) (*models.TourPackage, error) {
	pkg := &models.TourPackage{}
	path := fmt.Sprintf("/tours/packages/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (c *HTTPClient) Countries(ctx context.Context, search string) (*models.CountryPage, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	page := &models.CountryPage{}
	if err := c.do(ctx, http.MethodGet, "/tours/countries/", query, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *HTTPClient) Destinations(ctx context.Context, countryID int64) (*models.DestinationPage, error) {
	query := url.Values{}
	if countryID > 0 {
		query.Set("country_id", strconv.FormatInt(countryID, 10))
	}
	page := &models.DestinationPage{}
	if err := c.do(ctx, http.MethodGet, "/tours/destinations/", query, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *HTTPClient) ProfilePhotoUpload(ctx context.Context) (*PhotoUpload, error) {
	upload := &PhotoUpload{}
	if err := c.do(ctx, http.MethodPost, "/auth/user/photo/", nil, nil, upload); err != nil {
		return nil, err
	}
	return upload, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health/", nil, nil, nil)
}

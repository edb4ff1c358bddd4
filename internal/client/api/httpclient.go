package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/dmitrijs2005/umsclient/internal/client/models"
	"github.com/dmitrijs2005/umsclient/internal/common"
	"github.com/dmitrijs2005/umsclient/internal/logging"
)

// HTTPClient talks JSON over HTTP to the UMS backend. Authentication rides
// on a cookie jar: the signin response sets the access-token cookie and the
// jar replays it on every later request, the same way a browser would.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	jar     *cookiejar.Jar
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Jar: jar, Timeout: timeout},
		jar:     jar,
		log:     log,
	}, nil
}

func (c *HTTPClient) do(ctx context.Context, method string, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// decodeError turns a non-2xx response into a *MutationError carrying the
// server's message. Bodies that are not the expected {message} shape fall
// back to the standard status text.
func (c *HTTPClient) decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}
	return &MutationError{StatusCode: resp.StatusCode, Message: body.Message}
}

func (c *HTTPClient) SignIn(ctx context.Context, email string, password string) (models.UserRecord, error) {
	in := map[string]string{"email": email, "password": password}
	var rec models.UserRecord
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", in, &rec); err != nil {
		return models.UserRecord{}, err
	}
	return rec, nil
}

// SignOut hits the signout route. The server clears its session on any
// response, so only transport-level failures are reported.
func (c *HTTPClient) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/auth/signout", nil, nil)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, userID string, patch models.UserPatch) (models.UserRecord, error) {
	var rec models.UserRecord
	if err := c.do(ctx, http.MethodPost, "/api/user/update/"+url.PathEscape(userID), patch, &rec); err != nil {
		return models.UserRecord{}, err
	}
	return rec, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	var out struct {
		Users []models.UserRecord `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/get-users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/delete-user/"+url.PathEscape(userID), nil, nil)
}

func (c *HTTPClient) CreateUser(ctx context.Context, patch models.UserPatch) (models.UserRecord, error) {
	var rec models.UserRecord
	if err := c.do(ctx, http.MethodPost, "/api/admin/add-user", patch, &rec); err != nil {
		return models.UserRecord{}, err
	}
	return rec, nil
}

// AccessToken returns the current value of the access-token cookie, or ""
// when the jar has none. Used to persist the session between runs.
func (c *HTTPClient) AccessToken() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, ck := range c.jar.Cookies(u) {
		if ck.Name == common.AccessTokenCookieName {
			return ck.Value
		}
	}
	return ""
}

// SetAccessToken seeds the cookie jar with a previously persisted token so a
// restored session is authenticated without a fresh sign-in.
func (c *HTTPClient) SetAccessToken(token string) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	c.jar.SetCookies(u, []*http.Cookie{{
		Name:  common.AccessTokenCookieName,
		Value: token,
		Path:  "/",
	}})
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

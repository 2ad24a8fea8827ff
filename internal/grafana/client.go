package grafana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// API defines the Grafana operations Boardwalk relies on.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	Search(ctx context.Context, query SearchQuery) ([]Hit, error)
	DashboardTags(ctx context.Context) ([]TagTerm, error)
	GetFolderByUID(ctx context.Context, uid string) (Folder, error)
	Folders(ctx context.Context) ([]Folder, error)
	DeleteFoldersAndDashboards(ctx context.Context, folderUIDs, dashboardUIDs []string) error
	MoveDashboards(ctx context.Context, dashboardUIDs []string, folderID int64) (MoveResult, error)
	Permissions(ctx context.Context) (Permissions, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

var (
	// ErrNotFound is matched by API errors carrying a 404 status.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is matched by API errors carrying a 401 or 403 status.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is returned for any response with a 4xx/5xx status.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
}

// Is maps HTTP statuses onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// ClientOptions configure a Client.
type ClientOptions struct {
	BaseURL     string
	Token       string
	OrgID       int64
	Timeout     time.Duration
	Concurrency int
	// Transport overrides the retrying transport; mostly useful in tests.
	Transport http.RoundTripper
}

// Client talks to the Grafana HTTP API.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	token       string
	orgID       int64
	concurrency int
	userAgent   string
}

const (
	defaultBaseURL     = "http://127.0.0.1:3000"
	defaultUserAgent   = "boardwalk/0.1"
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 4
	searchLimit        = 5000
)

// NewClient builds a Client for the Grafana instance at opts.BaseURL.
func NewClient(opts ClientOptions) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	transport := opts.Transport
	if transport == nil {
		transport = NewRetryTransport(RetryOptions{})
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		token:       strings.TrimSpace(opts.Token),
		orgID:       opts.OrgID,
		concurrency: concurrency,
		userAgent:   defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized Grafana root URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Search runs /api/search.
func (c *Client) Search(ctx context.Context, query SearchQuery) ([]Hit, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if q := strings.TrimSpace(query.Query); q != "" {
		values.Set("query", q)
	}
	for _, tag := range query.Tags {
		values.Add("tag", tag)
	}
	if query.Starred {
		values.Set("starred", "true")
	}
	for _, id := range query.FolderIDs {
		values.Add("folderIds", strconv.FormatInt(id, 10))
	}
	if t := strings.TrimSpace(query.Type); t != "" {
		values.Set("type", t)
	}
	limit := query.Limit
	if limit <= 0 {
		limit = searchLimit
	}
	values.Set("limit", strconv.Itoa(limit))

	rel := &url.URL{Path: "/api/search", RawQuery: values.Encode()}
	var hits []Hit
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

// DashboardTags lists every tag known to the instance.
func (c *Client) DashboardTags(ctx context.Context) ([]TagTerm, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var terms []TagTerm
	if err := c.do(ctx, http.MethodGet, "/api/dashboards/tags", nil, &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// GetFolderByUID fetches a folder including the caller's permissions on it.
func (c *Client) GetFolderByUID(ctx context.Context, uid string) (Folder, error) {
	if c == nil {
		return Folder{}, fmt.Errorf("client is nil")
	}
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return Folder{}, fmt.Errorf("folder uid required")
	}
	var folder Folder
	if err := c.do(ctx, http.MethodGet, "/api/folders/"+uid, nil, &folder); err != nil {
		return Folder{}, err
	}
	return folder, nil
}

// Folders lists the folders visible to the caller.
func (c *Client) Folders(ctx context.Context) ([]Folder, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/api/folders", RawQuery: url.Values{"limit": {"1000"}}.Encode()}
	var folders []Folder
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// DeleteFolder removes a folder and every dashboard in it.
func (c *Client) DeleteFolder(ctx context.Context, uid string) error {
	return c.do(ctx, http.MethodDelete, "/api/folders/"+uid, nil, nil)
}

// DeleteDashboard removes a single dashboard.
func (c *Client) DeleteDashboard(ctx context.Context, uid string) error {
	return c.do(ctx, http.MethodDelete, "/api/dashboards/uid/"+uid, nil, nil)
}

// DeleteFoldersAndDashboards deletes the folders first, then the dashboards.
// Deletes within a phase run concurrently up to the client's concurrency limit.
func (c *Client) DeleteFoldersAndDashboards(ctx context.Context, folderUIDs, dashboardUIDs []string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if err := c.each(ctx, folderUIDs, c.DeleteFolder); err != nil {
		return fmt.Errorf("delete folders: %w", err)
	}
	if err := c.each(ctx, dashboardUIDs, c.DeleteDashboard); err != nil {
		return fmt.Errorf("delete dashboards: %w", err)
	}
	return nil
}

// DashboardByUID fetches the dashboard model and its metadata.
func (c *Client) DashboardByUID(ctx context.Context, uid string) (DashboardWithMeta, error) {
	var payload DashboardWithMeta
	if err := c.do(ctx, http.MethodGet, "/api/dashboards/uid/"+uid, nil, &payload); err != nil {
		return DashboardWithMeta{}, err
	}
	return payload, nil
}

// SaveDashboard stores the dashboard model in the given folder.
func (c *Client) SaveDashboard(ctx context.Context, dashboard json.RawMessage, folderID int64, overwrite bool) error {
	body := saveDashboardRequest{
		Dashboard: dashboard,
		FolderID:  folderID,
		Overwrite: overwrite,
		Message:   "moved by boardwalk",
	}
	return c.do(ctx, http.MethodPost, "/api/dashboards/db", body, nil)
}

// MoveDashboards moves each dashboard into folderID. Dashboards already in the
// target folder are counted but left untouched.
func (c *Client) MoveDashboards(ctx context.Context, dashboardUIDs []string, folderID int64) (MoveResult, error) {
	if c == nil {
		return MoveResult{}, fmt.Errorf("client is nil")
	}
	result := MoveResult{Total: len(dashboardUIDs)}
	var mu sync.Mutex
	err := c.each(ctx, dashboardUIDs, func(ctx context.Context, uid string) error {
		dash, err := c.DashboardByUID(ctx, uid)
		if err != nil {
			return fmt.Errorf("load dashboard %s: %w", uid, err)
		}
		if dash.Meta.FolderID == folderID {
			mu.Lock()
			result.AlreadyInFolder++
			mu.Unlock()
			return nil
		}
		if err := c.SaveDashboard(ctx, dash.Dashboard, folderID, true); err != nil {
			return fmt.Errorf("save dashboard %s: %w", uid, err)
		}
		mu.Lock()
		result.Moved++
		mu.Unlock()
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("move dashboards: %w", err)
	}
	return result, nil
}

// SignedInUser fetches the user the token belongs to.
func (c *Client) SignedInUser(ctx context.Context) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UserOrgs lists the organisations of the signed-in user with their roles.
func (c *Client) UserOrgs(ctx context.Context) ([]UserOrg, error) {
	var orgs []UserOrg
	if err := c.do(ctx, http.MethodGet, "/api/user/orgs", nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Permissions resolves the signed-in user's editor rights.
func (c *Client) Permissions(ctx context.Context) (Permissions, error) {
	if c == nil {
		return Permissions{}, fmt.Errorf("client is nil")
	}
	user, err := c.SignedInUser(ctx)
	if err != nil {
		return Permissions{}, fmt.Errorf("fetch user: %w", err)
	}
	orgs, err := c.UserOrgs(ctx)
	if err != nil {
		return Permissions{}, fmt.Errorf("fetch user orgs: %w", err)
	}
	if c.orgID > 0 {
		user.OrgID = c.orgID
	}
	return permissionsFor(user, orgs), nil
}

func (c *Client) each(ctx context.Context, uids []string, fn func(context.Context, string) error) error {
	if len(uids) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, uid := range uids {
		g.Go(func() error {
			return fn(gctx, uid)
		})
	}
	return g.Wait()
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	if c.baseURL.Path != "" {
		// Grafana served from a sub path: keep the prefix.
		reqURL.Path = strings.TrimSuffix(c.baseURL.Path, "/") + rel.Path
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.orgID > 0 {
		req.Header.Set("X-Grafana-Org-Id", strconv.FormatInt(c.orgID, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Method: method, Path: rel.Path, Status: resp.StatusCode}
		var msg apiMessage
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil && json.Unmarshal(raw, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse grafana url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Package grafana provides an HTTP client for the Grafana dashboard API.
//
// # Overview
//
// The client covers the endpoints Boardwalk needs to browse and reorganise
// dashboards: search, tags, folders, dashboard load/save, deletes and the
// signed-in user's roles.
//
// # Architecture
//
//   - client.go: Client, the API interface and error types
//   - transport.go: retrying http.RoundTripper
//   - types.go: data structures mirroring the Grafana API schema
//
// # Client Usage
//
//	client, err := grafana.NewClient(grafana.ClientOptions{
//		BaseURL: "https://grafana.example.com",
//		Token:   os.Getenv("GRAFANA_TOKEN"),
//	})
//	if err != nil {
//		return err
//	}
//	hits, err := client.Search(ctx, grafana.SearchQuery{Query: "cpu"})
//
// # API Endpoints
//
//   - GET /api/search
//   - GET /api/dashboards/tags
//   - GET /api/folders and GET /api/folders/:uid
//   - DELETE /api/folders/:uid and DELETE /api/dashboards/uid/:uid
//   - GET /api/dashboards/uid/:uid and POST /api/dashboards/db
//   - GET /api/user and GET /api/user/orgs
//
// # Request Handling
//
// All requests carry Accept: application/json, User-Agent: boardwalk/0.1 and,
// when configured, a bearer token and X-Grafana-Org-Id. A base URL with a
// path prefix (Grafana behind a sub path) keeps that prefix.
//
// Bulk deletes and moves fan out through an errgroup bounded by
// ClientOptions.Concurrency. The first failure cancels the rest.
//
// # Retries
//
// RetryTransport retries GET, HEAD, DELETE and OPTIONS on 429, 502, 503 and
// 504 and on network timeouts. Retry-After is honoured; otherwise delays
// double from BackoffBase up to BackoffCap. POST requests are sent once.
//
// # Error Handling
//
// Responses with status >= 400 become *APIError, which matches ErrNotFound
// (404) and ErrUnauthorized (401, 403) via errors.Is:
//
//	if errors.Is(err, grafana.ErrUnauthorized) {
//		// token missing or lacking permissions
//	}
//
// # Thread Safety
//
// Client is safe for concurrent use.
package grafana

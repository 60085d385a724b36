// Package gateway is the stateless proxy in front of the upstream movie API.
// It attaches the server-held API key and relays the upstream status and
// JSON body unchanged.
package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Route is where the gateway is mounted
const Route = "/api/tmdb"

// Gateway forwards GET requests to the upstream API
type Gateway struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a Gateway. A nil httpClient gets an instrumented client
// without timeout.
func New(apiKey, baseURL string, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Gateway{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Register mounts the gateway on r with all origins allowed for GET and
// preflight OPTIONS.
func (g *Gateway) Register(r gin.IRouter) {
	group := r.Group(Route)
	group.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},

		OptionsResponseStatusCode: http.StatusOK,
	}))
	group.Any("", g.Proxy)
}

// Proxy handles one gateway request
func (g *Gateway) Proxy(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)
		return
	case http.MethodGet:
	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	query := c.Request.URL.Query()
	endpoint := query.Get("endpoint")
	if endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Endpoint is required"})
		return
	}

	target := g.upstreamURL(endpoint, query)
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target, nil)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to build upstream request", "endpoint", endpoint, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "upstream call failed", "endpoint", endpoint, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || !json.Valid(body) {
		slog.ErrorContext(c.Request.Context(), "unreadable upstream body", "endpoint", endpoint, "status", resp.StatusCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.WarnContext(c.Request.Context(), "upstream returned error status", "endpoint", endpoint, "status", resp.StatusCode)
		c.Data(resp.StatusCode, "application/json", body)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// upstreamURL joins the base URL and endpoint and copies every pass-through
// parameter. The API key is set last so callers cannot replace it.
func (g *Gateway) upstreamURL(endpoint string, query url.Values) string {
	params := url.Values{}
	for k, vs := range query {
		if k == "endpoint" || k == "api_key" {
			continue
		}
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	params.Set("api_key", g.apiKey)
	return g.baseURL + "/" + strings.TrimLeft(endpoint, "/") + "?" + params.Encode()
}

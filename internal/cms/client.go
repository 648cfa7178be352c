package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"blogfront/internal/config"
	"blogfront/internal/models"
)

// Client talks to the content store's REST API. It is safe for
// concurrent use; all state is set at construction time.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient builds a client from the given configuration. Recovery
// from a failed request is left to the caller (a page reload); the
// client itself does not retry.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.CMSBaseURL,
		http: resty.New().
			SetBaseURL(cfg.CMSBaseURL).
			SetTimeout(cfg.HTTPTimeout).
			SetAuthToken(cfg.CMSToken).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
	}
}

// BaseURL returns the configured content store base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListArticles fetches all published articles with their relations
// expanded. Items are returned in the order the store provides them;
// no re-sorting happens on this side.
func (c *Client) ListArticles(ctx context.Context) ([]models.Article, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("populate", "*").
		Get("/api/articles")
	if err != nil {
		return nil, &ConnectionError{BaseURL: c.baseURL, Err: err}
	}

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	var envelope models.ListEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, &RequestError{Status: resp.StatusCode(), Message: "invalid JSON in response body"}
	}

	return envelope.Data, nil
}

// GetArticleByID fetches a single article by its documentId. The
// populate parameters must stay exhaustive: the store silently returns
// null for any relation that is not explicitly requested, so the
// nested forms for blocks and the author avatar are load-bearing.
func (c *Client) GetArticleByID(ctx context.Context, documentID string) (*models.Article, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("populate[blocks][populate]", "*").
		SetQueryParam("populate[cover]", "*").
		SetQueryParam("populate[category]", "*").
		SetQueryParam("populate[author][populate][avatar]", "*").
		SetPathParam("documentId", documentID).
		Get("/api/articles/{documentId}")
	if err != nil {
		return nil, &ConnectionError{BaseURL: c.baseURL, Err: err}
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, &NotFoundError{DocumentID: documentID}
	}

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	var envelope models.SingleEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, &RequestError{Status: resp.StatusCode(), Message: "invalid JSON in response body"}
	}

	return &envelope.Data, nil
}

// ResolveMediaURL completes a media URL: absolute URLs pass through
// unchanged, relative ones are prefixed with the store's base URL.
func (c *Client) ResolveMediaURL(mediaURL string) string {
	if mediaURL == "" {
		return ""
	}
	if parsed, err := url.Parse(mediaURL); err == nil && parsed.Scheme != "" {
		return mediaURL
	}
	if !strings.HasPrefix(mediaURL, "/") {
		return c.baseURL + "/" + mediaURL
	}
	return c.baseURL + mediaURL
}

// checkResponse classifies a completed response before any decoding.
// A misconfigured deployment can answer 200 with an HTML page, so the
// content type is checked even on success.
func (c *Client) checkResponse(resp *resty.Response) error {
	status := resp.StatusCode()
	contentType := resp.Header().Get("Content-Type")

	if !resp.IsSuccess() {
		// Prefer the store's own error message when the body is its
		// JSON error envelope; an HTML error page is not surfaced raw.
		var envelope models.ErrorEnvelope
		if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Error.Message != "" {
			return &RequestError{Status: status, Message: envelope.Error.Message}
		}
		return &RequestError{
			Status:  status,
			Message: fmt.Sprintf("store returned a non-JSON error body (Content-Type %q)", contentType),
		}
	}

	if !strings.Contains(contentType, "application/json") {
		return &RequestError{
			Status:  status,
			Message: fmt.Sprintf("non-JSON response (Content-Type %q)", contentType),
		}
	}

	return nil
}

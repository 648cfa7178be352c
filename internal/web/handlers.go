package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"blogfront/internal/cms"
	"blogfront/internal/config"
	"blogfront/internal/logger"
	"blogfront/internal/models"
	"blogfront/internal/render"
)

// ContentSource is the slice of the content client the page handlers
// depend on
type ContentSource interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	GetArticleByID(ctx context.Context, documentID string) (*models.Article, error)
	ResolveMediaURL(url string) string
}

type Handlers struct {
	config *config.Config
	cms    ContentSource
	tpl    *template.Template
}

func NewHandlers(cfg *config.Config, source ContentSource) (*Handlers, error) {
	tpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Handlers{
		config: cfg,
		cms:    source,
		tpl:    tpl,
	}, nil
}

// page is the data every template's layout partials need
type page struct {
	SiteTitle string
	Title     string
}

func (h *Handlers) page(title string) page {
	return page{SiteTitle: h.config.SiteTitle, Title: title}
}

type articleCard struct {
	DocumentID  string
	Title       string
	Description string
	Category    string
	Date        string
	CoverURL    string
	CoverAlt    string
}

type blogIndexPage struct {
	page
	Articles []articleCard
}

type blogDetailPage struct {
	page
	DocumentID  string
	Description string
	Category    string
	Author      string
	Date        string
	Updated     string
	CoverURL    string
	CoverAlt    string
	Nodes       []render.Node
}

type errorPage struct {
	page
	Heading   string
	Message   string
	RetryPath string
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Home handles GET /
func (h *Handlers) Home(c *fiber.Ctx) error {
	return h.renderPage(c, fiber.StatusOK, "home.html", h.page("Home"))
}

// About handles GET /about
func (h *Handlers) About(c *fiber.Ctx) error {
	return h.renderPage(c, fiber.StatusOK, "about.html", h.page("About"))
}

// Contact handles GET /contact
func (h *Handlers) Contact(c *fiber.Ctx) error {
	return h.renderPage(c, fiber.StatusOK, "contact.html", h.page("Contact"))
}

// BlogIndex handles GET /blog and lists all articles in store order
func (h *Handlers) BlogIndex(c *fiber.Ctx) error {
	articles, err := h.cms.ListArticles(c.Context())
	if err != nil {
		return h.renderFetchError(c, err, "/blog")
	}

	cards := make([]articleCard, 0, len(articles))
	for i := range articles {
		cards = append(cards, h.cardFor(&articles[i]))
	}

	return h.renderPage(c, fiber.StatusOK, "blog_index.html", blogIndexPage{
		page:     h.page("Blog"),
		Articles: cards,
	})
}

// BlogDetail handles GET /blog/:id where :id is the article's documentId
func (h *Handlers) BlogDetail(c *fiber.Ctx) error {
	documentID := c.Params("id")
	if documentID == "" {
		return c.Redirect("/blog")
	}

	article, err := h.cms.GetArticleByID(c.Context(), documentID)
	if err != nil {
		return h.renderFetchError(c, err, c.Path())
	}

	data := blogDetailPage{
		page:        h.page(article.Title),
		DocumentID:  article.DocumentID,
		Description: article.Description,
		Date:        formatDate(article.DisplayDate()),
		Nodes:       render.Content(article, h.cms.ResolveMediaURL),
	}
	if article.Category != nil {
		data.Category = article.Category.Name
	}
	if article.Author != nil {
		data.Author = article.Author.Name
	}
	if !article.UpdatedAt.Equal(article.CreatedAt) && !article.UpdatedAt.IsZero() {
		data.Updated = formatDate(article.UpdatedAt)
	}
	if article.Cover != nil {
		data.CoverURL = h.cms.ResolveMediaURL(article.Cover.URL)
		data.CoverAlt = altText(article.Cover, article.Title)
	}

	return h.renderPage(c, fiber.StatusOK, "blog_detail.html", data)
}

// NotFound is the fallback handler for unknown routes
func (h *Handlers) NotFound(c *fiber.Ctx) error {
	return h.renderPage(c, fiber.StatusNotFound, "error.html", errorPage{
		page:    h.page("Not found"),
		Heading: "Page not found",
		Message: "The page you were looking for does not exist.",
	})
}

// Style serves the embedded stylesheet
func (h *Handlers) Style(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	return c.Send(styleCSS)
}

func (h *Handlers) cardFor(article *models.Article) articleCard {
	card := articleCard{
		DocumentID:  article.DocumentID,
		Title:       article.Title,
		Description: article.Description,
		Date:        formatDate(article.DisplayDate()),
	}
	if article.Category != nil {
		card.Category = article.Category.Name
	}
	if article.Cover != nil {
		card.CoverURL = h.cms.ResolveMediaURL(article.Cover.URL)
		card.CoverAlt = altText(article.Cover, article.Title)
	}
	return card
}

// renderFetchError maps a content client failure to the matching error
// page: "article not found" for a 404, a retryable store-error page
// for everything else.
func (h *Handlers) renderFetchError(c *fiber.Ctx, err error, retryPath string) error {
	var notFound *cms.NotFoundError
	var connErr *cms.ConnectionError
	var reqErr *cms.RequestError

	switch {
	case errors.As(err, &notFound):
		logger.Get().Warn().Str("document_id", notFound.DocumentID).Msg("Article not found")
		return h.renderPage(c, fiber.StatusNotFound, "error.html", errorPage{
			page:    h.page("Article not found"),
			Heading: "Article not found",
			Message: fmt.Sprintf("No article exists with ID %q.", notFound.DocumentID),
		})

	case errors.As(err, &connErr):
		logger.Get().Error().Err(err).Str("base_url", connErr.BaseURL).Msg("Content store unreachable")
		return h.renderPage(c, fiber.StatusBadGateway, "error.html", errorPage{
			page:      h.page("Store unreachable"),
			Heading:   "Content temporarily unavailable",
			Message:   "The content store could not be reached. Please try again in a moment.",
			RetryPath: retryPath,
		})

	case errors.As(err, &reqErr):
		logger.Get().Error().Err(err).Int("status", reqErr.Status).Msg("Content store request failed")
		return h.renderPage(c, fiber.StatusBadGateway, "error.html", errorPage{
			page:      h.page("Error"),
			Heading:   "Something went wrong",
			Message:   "The content store responded with an error: " + reqErr.Message,
			RetryPath: retryPath,
		})

	default:
		logger.Get().Error().Err(err).Msg("Unexpected error while fetching content")
		return h.renderPage(c, fiber.StatusInternalServerError, "error.html", errorPage{
			page:      h.page("Error"),
			Heading:   "Something went wrong",
			Message:   "An unexpected error occurred. Please try again.",
			RetryPath: retryPath,
		})
	}
}

func (h *Handlers) renderPage(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := h.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Get().Error().Err(err).Str("template", name).Msg("Template execution failed")
		return c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func altText(media *models.Media, articleTitle string) string {
	if media.AlternativeText != "" {
		return media.AlternativeText
	}
	return articleTitle
}

// Package render converts an article's content representation into an
// ordered sequence of display-ready nodes. It never fails: malformed
// or unrecognized input degrades to visible placeholders so a single
// corrupt block cannot take down the rest of the article.
package render

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"blogfront/internal/models"
)

// Node kinds, one per renderable construct
const (
	NodeRichText = "rich-text"
	NodeQuote    = "quote"
	NodeImage    = "image"
	NodeGallery  = "gallery"
	NodeLegacy   = "legacy"
	NodeUnknown  = "unknown"
	NodeEmpty    = "empty"
)

// Node is one display-ready unit of article content
type Node struct {
	Kind string
	HTML template.HTML
}

// URLResolver completes a possibly relative media URL
type URLResolver func(string) string

// Content renders an article's content to an ordered node sequence.
// The dynamic blocks are the primary path, one node per block in
// document order; the legacy single HTML string is the fallback; with
// neither present a single "no content" placeholder is emitted.
// Pure function of its input: same article, same output.
func Content(article *models.Article, resolve URLResolver) []Node {
	if resolve == nil {
		resolve = func(u string) string { return u }
	}

	if len(article.Blocks) > 0 {
		nodes := make([]Node, 0, len(article.Blocks))
		for _, block := range article.Blocks {
			nodes = append(nodes, renderBlock(block, article.Title, resolve))
		}
		return nodes
	}

	if strings.TrimSpace(article.Content) != "" {
		return []Node{{Kind: NodeLegacy, HTML: template.HTML(article.Content)}}
	}

	return []Node{{
		Kind: NodeEmpty,
		HTML: `<p class="no-content">No content available.</p>`,
	}}
}

func renderBlock(block models.Block, articleTitle string, resolve URLResolver) Node {
	switch b := block.(type) {
	case models.RichTextBlock:
		return Node{Kind: NodeRichText, HTML: renderRichText(b.Body)}
	case models.QuoteBlock:
		return Node{Kind: NodeQuote, HTML: renderQuote(b)}
	case models.MediaBlock:
		if b.File == nil {
			return Node{Kind: NodeImage}
		}
		return Node{Kind: NodeImage, HTML: renderImage(*b.File, articleTitle, resolve)}
	case models.SliderBlock:
		return Node{Kind: NodeGallery, HTML: renderSlider(b, articleTitle, resolve)}
	default:
		return Node{Kind: NodeUnknown, HTML: renderUnknown(block.Component())}
	}
}

func renderRichText(body models.RichTextBody) template.HTML {
	// A string body is markup the store's editor already rendered
	if body.IsHTML() {
		return template.HTML(body.HTML)
	}

	var sb strings.Builder
	for _, node := range body.Nodes {
		renderRichNode(&sb, node)
	}
	return template.HTML(sb.String())
}

func renderRichNode(sb *strings.Builder, node models.RichTextNode) {
	switch node.Type {
	case "paragraph":
		sb.WriteString("<p>")
		sb.WriteString(inlineText(node))
		sb.WriteString("</p>")
	case "heading":
		level := node.Level
		if level < 1 || level > 6 {
			level = 2
		}
		fmt.Fprintf(sb, "<h%d>%s</h%d>", level, inlineText(node), level)
	case "list":
		tag := "ul"
		if node.Format == "ordered" {
			tag = "ol"
		}
		sb.WriteString("<" + tag + ">")
		for _, item := range node.Children {
			sb.WriteString("<li>")
			sb.WriteString(inlineText(item))
			sb.WriteString("</li>")
		}
		sb.WriteString("</" + tag + ">")
	case "quote":
		sb.WriteString("<blockquote><p>")
		sb.WriteString(inlineText(node))
		sb.WriteString("</p></blockquote>")
	case "code":
		sb.WriteString("<pre><code>")
		sb.WriteString(inlineText(node))
		sb.WriteString("</code></pre>")
	default:
		// Unrecognized node shape contributes nothing; the rest of the
		// document still renders.
	}
}

// inlineText flattens a node's inline fragments to escaped text in
// fragment order
func inlineText(node models.RichTextNode) string {
	var sb strings.Builder
	collectText(&sb, node)
	return sb.String()
}

func collectText(sb *strings.Builder, node models.RichTextNode) {
	if node.Text != "" {
		sb.WriteString(html.EscapeString(node.Text))
	}
	for _, child := range node.Children {
		collectText(sb, child)
	}
}

func renderQuote(b models.QuoteBlock) template.HTML {
	var sb strings.Builder
	sb.WriteString("<blockquote><p>")
	sb.WriteString(html.EscapeString(b.Body))
	sb.WriteString("</p>")
	if b.Author != "" {
		sb.WriteString("<cite>")
		sb.WriteString(html.EscapeString(b.Author))
		sb.WriteString("</cite>")
	}
	sb.WriteString("</blockquote>")
	return template.HTML(sb.String())
}

func renderImage(media models.Media, articleTitle string, resolve URLResolver) template.HTML {
	alt := media.AlternativeText
	if alt == "" {
		alt = articleTitle
	}
	if alt == "" {
		alt = "Article image"
	}
	return template.HTML(fmt.Sprintf(
		`<img src="%s" alt="%s">`,
		html.EscapeString(resolve(media.URL)),
		html.EscapeString(alt),
	))
}

func renderSlider(b models.SliderBlock, articleTitle string, resolve URLResolver) template.HTML {
	if len(b.Files) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<div class="slider">`)
	for _, file := range b.Files {
		sb.WriteString(string(renderImage(file, articleTitle, resolve)))
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

// renderUnknown makes a skipped block visible on the page, raw
// discriminator included, so missing content is distinguishable from
// absent content.
func renderUnknown(kind string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<div class="unknown-block">unrecognized content type: %s</div>`,
		html.EscapeString(kind),
	))
}

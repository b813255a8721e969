package analyzer

import (
	"log/slog"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	readability "github.com/go-shiori/go-readability"

	"github.com/RickBillie-pixel/scraper/models"
)

// minMainContentChars is the minimum TextContent length for a readability
// result to count as found main content.
const minMainContentChars = 50

// newMarkdownConverter creates the reusable, goroutine-safe converter for
// the main-content rendition: the base plugin strips script/style/head
// noise, commonmark renders standard Markdown, and the table plugin keeps
// tabular structure with minimal cell padding.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// mainContent runs the Mozilla Readability algorithm over the raw HTML
// and renders the extracted article as Markdown. Returns nil when the
// page has no identifiable main content; the report field is optional.
func (a *Analyzer) mainContent(p *page) *models.MainContent {
	article, err := readability.FromReader(strings.NewReader(p.snap.HTML), p.base)
	if err != nil {
		slog.Debug("readability extraction failed", "url", p.snap.FinalURL, "error", err)
		return nil
	}
	if runeLen(strings.TrimSpace(article.TextContent)) < minMainContentChars {
		return nil
	}

	md, err := a.markdown.ConvertString(article.Content, converter.WithDomain(p.snap.FinalURL))
	if err != nil {
		slog.Warn("markdown conversion failed", "url", p.snap.FinalURL, "error", err)
		return nil
	}

	return &models.MainContent{
		Title:           article.Title,
		Excerpt:         article.Excerpt,
		Markdown:        md,
		EstimatedTokens: estimateTokens(md),
	}
}

// estimateTokens approximates the LLM token count of text as rune count
// divided by 3, a middle ground between ~4 chars/token English text and
// ~1.5 chars/token CJK text.
func estimateTokens(text string) int {
	n := runeLen(text)
	if n == 0 {
		return 0
	}
	if est := n / 3; est >= 1 {
		return est
	}
	return 1
}

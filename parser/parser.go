package parser

import (
	"errors"
	"strings"

	"github.com/advancedlogic/GoOse/pkg/goose"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ParsedArticle is the structured representation of a fetched document.
type ParsedArticle struct {
	Title            string
	PlainTextContent string
	TopImage         string
}

// ErrNoContent is returned when no extractor produced text content.
var ErrNoContent = errors.New("parser: no extractor produced text content")

// ParseArticle extracts title and plain text from raw HTML. Extractors
// are tried in order — readability, trafilatura, goose — and the first
// one that yields non-empty text wins.
func ParseArticle(htmlStr string) (*ParsedArticle, error) {
	if strings.TrimSpace(htmlStr) == "" {
		return nil, errors.New("parser: empty HTML input")
	}

	if a, err := parseWithReadability(htmlStr); err == nil && a.PlainTextContent != "" {
		return a, nil
	}
	if a, err := parseWithTrafilatura(htmlStr); err == nil && a.PlainTextContent != "" {
		return a, nil
	}
	if a, err := parseWithGoose(htmlStr); err == nil && a.PlainTextContent != "" {
		return a, nil
	}

	return nil, ErrNoContent
}

// main parser
func parseWithReadability(htmlStr string) (*ParsedArticle, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return nil, err
	}

	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return nil, err
	}
	return &ParsedArticle{
		Title:            article.Title,
		PlainTextContent: strings.TrimSpace(article.TextContent),
		TopImage:         article.Image,
	}, nil
}

func parseWithTrafilatura(htmlStr string) (*ParsedArticle, error) {
	opts := trafilatura.Options{
		IncludeImages: true,
	}

	article, err := trafilatura.Extract(strings.NewReader(htmlStr), opts)
	if err != nil {
		return nil, err
	}

	return &ParsedArticle{
		Title:            article.Metadata.Title,
		PlainTextContent: strings.TrimSpace(article.ContentText),
		TopImage:         article.Metadata.Image,
	}, nil
}

func parseWithGoose(htmlStr string) (*ParsedArticle, error) {
	g := goose.New()
	article, err := g.ExtractFromRawHTML(htmlStr, "")
	if err != nil {
		return nil, err
	}
	return &ParsedArticle{
		Title:            article.Title,
		PlainTextContent: strings.TrimSpace(article.CleanedText),
		TopImage:         article.TopImage,
	}, nil
}

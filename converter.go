package mdbadge

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/alnah/go-mdbadge/internal/assets"
	"github.com/alnah/go-mdbadge/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ HTMLConverter                 = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader            = (*assets.AssetResolver)(nil)
)

// HTMLConverter renders markdown into a standalone HTML document.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content, title string) (string, error)
}

// Input is one page to convert.
type Input struct {
	Markdown string
	Page     Page
	Tree     FileTree
	HTML     bool   // also render an HTML preview
	Title    string // HTML title; defaults to the page file name
}

// Result holds the outputs for one page.
type Result struct {
	Markdown string
	HTML     string // empty unless Input.HTML was set
	Report   *Report
}

// Converter runs the badge transform and, on request, the HTML preview pipeline.
// Create with NewConverter and share across goroutines.
type Converter struct {
	transformerOpts []TransformerOption
	transformer     *Transformer

	style         string
	assetPath     string
	css           string
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter HTMLConverter
	cssInjector   pipeline.CSSInjector
}

// Option configures a Converter.
type Option func(*Converter)

// WithTransformerOptions forwards options to the underlying Transformer.
func WithTransformerOptions(opts ...TransformerOption) Option {
	return func(c *Converter) {
		c.transformerOpts = append(c.transformerOpts, opts...)
	}
}

// WithHTMLConverter replaces the goldmark renderer.
func WithHTMLConverter(conv HTMLConverter) Option {
	return func(c *Converter) {
		if conv != nil {
			c.htmlConverter = conv
		}
	}
}

// WithStyle selects the badge stylesheet injected into HTML previews.
// An empty name disables CSS injection.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.style = name
	}
}

// WithAssetPath adds a directory searched for styles/{name}.css before the
// embedded stylesheets.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.assetPath = dir
	}
}

// NewConverter creates a Converter using the default style.
// Returns an error for invalid transformer options, an unreadable asset path,
// or an unknown style.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		style:         assets.DefaultStyleName,
		assetLoader:   assets.NewEmbeddedLoader(),
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
	}
	for _, opt := range opts {
		opt(c)
	}

	t, err := NewTransformer(c.transformerOpts...)
	if err != nil {
		return nil, err
	}
	c.transformer = t

	if c.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if c.style != "" {
		css, err := c.assetLoader.LoadStyle(c.style)
		if err != nil {
			if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
				return nil, fmt.Errorf("%w: %q", ErrStyleNotFound, c.style)
			}
			return nil, fmt.Errorf("loading style %q: %w", c.style, err)
		}
		c.css = css
	}

	return c, nil
}

// Transformer returns the transformer used for the markdown pass.
func (c *Converter) Transformer() *Transformer {
	return c.transformer
}

// Convert rewrites the page markers and, when input.HTML is set, renders the
// result to HTML with the badge stylesheet injected.
// Recovers from internal panics so one bad page cannot crash a batch.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md, report := c.transformer.TransformWithReport(input.Markdown, input.Page, input.Tree)
	res := &Result{Markdown: md, Report: report}
	if !input.HTML {
		return res, nil
	}

	content := c.preprocessor.PreprocessMarkdown(ctx, md)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = pageTitle(input.Page)
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, content, title)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	if c.css != "" {
		htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, c.css)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	res.HTML = htmlContent
	return res, nil
}

// StyleNames lists the embedded badge stylesheets.
func StyleNames() []string {
	return assets.NewEmbeddedLoader().StyleNames()
}

// pageTitle derives a title from the page file name without its extension.
func pageTitle(page Page) string {
	base := path.Base(normalizeSourcePath(page.SourcePath))
	if base == "." || base == "/" || base == "" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

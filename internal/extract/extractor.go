// Package extract turns files into best-effort plain text. Plain-text formats
// are read natively (markdown is stripped through goldmark); everything else,
// such as images needing OCR, PDFs, and Office documents, is delegated to the
// local extraction sidecar. Extraction never fails a file: any error degrades
// to empty text.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"findmyfile/internal/contextutil"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_extractor.go -package=mocks findmyfile/internal/extract Extractor

// nativeReadLimit bounds how much of a plain-text file is read. Callers cap the
// stored text much lower; this only protects against pathological files.
const nativeReadLimit = 256 * 1024

// Extractor returns best-effort plain text for a file. Empty string means
// extraction failed or the format is unsupported; it is never an error.
type Extractor interface {
	Extract(ctx context.Context, path string) string
}

// SidecarExtractor extracts text natively where possible and falls back to the
// OCR/parsing sidecar for binary formats.
type SidecarExtractor struct {
	BaseURL string
	APIKey  string
	client  *http.Client
	md      goldmark.Markdown
}

// NewSidecarExtractor creates an extractor backed by the extraction sidecar.
func NewSidecarExtractor(baseURL, apiKey string) *SidecarExtractor {
	return &SidecarExtractor{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  http.DefaultClient,
		md:      goldmark.New(),
	}
}

// Extract returns plain text for the file at path, or "" on any failure.
func (e *SidecarExtractor) Extract(ctx context.Context, path string) string {
	logger := contextutil.LoggerFromContext(ctx)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".csv":
		return e.readPlain(path)
	case ".md":
		return e.readMarkdown(path)
	default:
		extracted, err := e.callSidecar(ctx, path)
		if err != nil {
			logger.DebugContext(ctx, "sidecar extraction failed", "path", path, "error", err)
			return ""
		}
		return extracted
	}
}

func (e *SidecarExtractor) readPlain(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(f, nativeReadLimit))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readMarkdown parses markdown and collects the text nodes, so headings and
// formatting markers don't pollute keyword matching.
func (e *SidecarExtractor) readMarkdown(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	src, err := io.ReadAll(io.LimitReader(f, nativeReadLimit))
	if err != nil || len(src) == 0 {
		return ""
	}

	doc := e.md.Parser().Parse(text.NewReader(src))

	var builder strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			builder.Write(t.Segment.Value(src))
			builder.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(builder.String())
}

type extractRequest struct {
	Path string `json:"path"`
}

type extractResponse struct {
	Text string `json:"text"`
}

func (e *SidecarExtractor) callSidecar(ctx context.Context, path string) (string, error) {
	body, err := json.Marshal(extractRequest{Path: path})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.BaseURL+"/v1/extract", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", e.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}

// Package ai contains HTTP clients for the local inference sidecars: the joint
// visual/text embedding provider and the face detection/embedding provider.
// Providers are external collaborators with fixed contracts; every call is a
// batch call, and each client validates vector dimensionality on the way in.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ClipClient talks to the visual/text joint embedding sidecar. Images and text
// queries land in one similarity space, which is what makes unified semantic
// search across images and documents possible.
type ClipClient struct {
	BaseURL      string
	APIKey       string
	ExpectedSize int // Declared provider dimensionality, validated per response
	client       *http.Client
}

// NewClipClient creates a new client for the visual/text embedding provider.
// expectedSize is the provider's declared dimensionality; all returned vectors
// are validated against it.
func NewClipClient(baseURL, apiKey string, expectedSize int) *ClipClient {
	return &ClipClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		ExpectedSize: expectedSize,
		client:       http.DefaultClient,
	}
}

type embedImagesRequest struct {
	Images []string `json:"images"` // base64-encoded raw file bytes
}

type embedTextsRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// EmbedImages generates unit vectors for a batch of encoded images in one call.
// A failure fails the whole batch; callers must not retry per item.
func (c *ClipClient) EmbedImages(ctx context.Context, images [][]byte) ([][]float32, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	encoded := make([]string, len(images))
	for i, img := range images {
		encoded[i] = base64.StdEncoding.EncodeToString(img)
	}

	var resp embedResponse
	if err := c.post(ctx, "/v1/embed/images", embedImagesRequest{Images: encoded}, &resp); err != nil {
		return nil, err
	}
	return c.validate(resp.Embeddings, len(images))
}

// EmbedTexts generates unit vectors for a batch of texts in one call.
func (c *ClipClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	var resp embedResponse
	if err := c.post(ctx, "/v1/embed/texts", embedTextsRequest{Texts: texts}, &resp); err != nil {
		return nil, err
	}
	return c.validate(resp.Embeddings, len(texts))
}

// EmbedText generates a unit vector for a single text query.
func (c *ClipClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (c *ClipClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *ClipClient) validate(embeddings [][]float64, want int) ([][]float32, error) {
	if len(embeddings) != want {
		return nil, fmt.Errorf("expected %d embeddings, got %d", want, len(embeddings))
	}

	result := make([][]float32, len(embeddings))
	for i, emb := range embeddings {
		if len(emb) != c.ExpectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(emb), c.ExpectedSize)
		}
		vec := make([]float32, len(emb))
		for j, v := range emb {
			vec[j] = float32(v)
		}
		result[i] = vec
	}
	return result, nil
}

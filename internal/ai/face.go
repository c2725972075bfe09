package ai

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_providers.go -package=mocks -source=providers.go

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DetectedFace is one face found in an image: an L2-normalized embedding, a
// bounding box in source-image pixel space, and the detector's confidence.
// The sidecar applies its own confidence and box-size thresholds, so faces
// below them are never reported.
type DetectedFace struct {
	Embedding  []float64 `json:"embedding"`
	Box        [4]int    `json:"box"`
	Confidence float64   `json:"confidence"`
}

// FaceClient talks to the face detection/embedding sidecar.
type FaceClient struct {
	BaseURL      string
	APIKey       string
	ExpectedSize int
	client       *http.Client
}

// NewFaceClient creates a new client for the face embedding provider.
func NewFaceClient(baseURL, apiKey string, expectedSize int) *FaceClient {
	return &FaceClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		ExpectedSize: expectedSize,
		client:       http.DefaultClient,
	}
}

type detectRequest struct {
	Image string `json:"image"` // base64-encoded raw file bytes
}

type detectResponse struct {
	Faces []DetectedFace `json:"faces"`
}

// DetectFaces finds all faces in one encoded image. An empty slice means no
// faces; it is not an error.
func (c *FaceClient) DetectFaces(ctx context.Context, image []byte) ([]DetectedFace, error) {
	var resp detectResponse
	if err := c.post(ctx, "/v1/faces/detect", detectRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	}, &resp); err != nil {
		return nil, err
	}

	for i, face := range resp.Faces {
		if len(face.Embedding) != c.ExpectedSize {
			return nil, fmt.Errorf("face %d has embedding size %d, expected %d", i, len(face.Embedding), c.ExpectedSize)
		}
	}
	return resp.Faces, nil
}

// EmbedReferenceFace embeds the most prominent face in a reference image.
// Returns nil (no error) when the image contains no detectable face.
func (c *FaceClient) EmbedReferenceFace(ctx context.Context, image []byte) ([]float32, error) {
	faces, err := c.DetectFaces(ctx, image)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, nil
	}

	best := faces[0]
	for _, face := range faces[1:] {
		if face.Confidence > best.Confidence {
			best = face
		}
	}
	return Float32Vector(best.Embedding), nil
}

// Float32Vector narrows a provider float64 vector for vector-store storage.
func Float32Vector(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

func (c *FaceClient) post(ctx context.Context, path string, payload any, out any) error {
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

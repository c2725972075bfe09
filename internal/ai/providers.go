package ai

import "context"

// VisualEmbedder is the joint visual/text embedding contract consumed by the
// indexing pipeline and search engine.
type VisualEmbedder interface {
	EmbedImages(ctx context.Context, images [][]byte) ([][]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// FaceProvider is the face detection/embedding contract.
type FaceProvider interface {
	DetectFaces(ctx context.Context, image []byte) ([]DetectedFace, error)
	EmbedReferenceFace(ctx context.Context, image []byte) ([]float32, error)
}

package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"findmyfile/internal/ai"
	"findmyfile/internal/service"
	"findmyfile/internal/vectorstore"
)

const (
	// faceOverfetchFactor widens the fetch because many hits may be faces
	// from the same source file.
	faceOverfetchFactor = 5

	// defaultMinFaceSimilarity filters weak matches, on the internal 0-1 scale.
	defaultMinFaceSimilarity = 0.50
)

// FaceSearcher matches a reference face image against the indexed faces,
// collapsing hits to the single best face per source file.
type FaceSearcher struct {
	faces    vectorstore.FaceIndex
	provider ai.FaceProvider
}

// NewFaceSearcher creates a face searcher.
func NewFaceSearcher(faces vectorstore.FaceIndex, provider ai.FaceProvider) *FaceSearcher {
	return &FaceSearcher{faces: faces, provider: provider}
}

// Search embeds the reference image's face and returns the best-matching
// source files, one result per file, ordered by similarity.
// Returns service.ErrNoFaceFound when the reference image contains no
// detectable face.
func (s *FaceSearcher) Search(ctx context.Context, imageData []byte, req FaceRequest) ([]FaceResult, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	embedding, err := s.provider.EmbedReferenceFace(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("%w: face embedding: %v", service.ErrExternalService, err)
	}
	if embedding == nil {
		return nil, service.ErrNoFaceFound
	}

	hits, err := s.faces.QueryFaces(ctx, embedding, faceOverfetchFactor*limit)
	if err != nil {
		return nil, err
	}

	// An explicit zero disables the floor; only an absent value gets the default
	minSim := defaultMinFaceSimilarity
	if req.MinSimilarity != nil {
		minSim = *req.MinSimilarity / 100
	}

	// Best face per source file, preserving first-hit order for stable ties
	type group struct {
		rec vectorstore.FaceRecord
		sim float64
	}
	best := make(map[string]*group)
	var ordered []*group

	for _, hit := range hits {
		rec := hit.Record
		if req.FolderPath != "" && !strings.Contains(rec.Filepath, req.FolderPath) {
			continue
		}

		sim := similarityFromDistance(hit.Distance)
		if g, ok := best[rec.SourceFileID]; ok {
			if sim > g.sim {
				g.sim = sim
				g.rec = rec
			}
			continue
		}
		g := &group{rec: rec, sim: sim}
		best[rec.SourceFileID] = g
		ordered = append(ordered, g)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].sim > ordered[j].sim
	})

	results := make([]FaceResult, 0, limit)
	for _, g := range ordered {
		if g.sim < minSim {
			continue
		}
		results = append(results, FaceResult{
			FileID:     g.rec.SourceFileID,
			Filepath:   g.rec.Filepath,
			Filename:   g.rec.Filename,
			Similarity: round1(math.Min(g.sim, 1.0) * 100),
			Confidence: g.rec.Confidence,
			Box:        [4]int{g.rec.Box.X1, g.rec.Box.Y1, g.rec.Box.X2, g.rec.Box.Y2},
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

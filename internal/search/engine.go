// Package search ranks indexed files against free-text and reference-image
// queries by fusing vector similarity with keyword and filename signals.
package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"findmyfile/internal/ai"
	"findmyfile/internal/contextutil"
	"findmyfile/internal/service"
	"findmyfile/internal/vectorstore"
)

// Fusion constants. Empirically tuned; kept named rather than inlined so they
// can be recalibrated against a labeled relevance set.
const (
	// overfetchFactor widens the nearest-neighbor fetch so keyword boosting
	// has room to reorder before truncation.
	overfetchFactor = 3

	// Convexity boost applied to already-high vector similarities.
	highSimThreshold = 0.8
	highSimGain      = 1.5

	// Strong keyword hits override the vector score; weak ones only nudge it.
	strongKeywordThreshold = 0.5
	combinedBonus          = 0.20
	weakKeywordWeight      = 0.15
	filenameFloorBonus     = 0.10

	// Keyword-only hits land in the 70-95 range on the output scale.
	keywordOnlyBase  = 0.70
	keywordOnlyRange = 0.25

	defaultLimit = 20
	maxLimit     = 100
)

// Engine fuses vector-similarity and keyword signals into one ranked list.
type Engine struct {
	files    vectorstore.FileIndex
	faces    vectorstore.FaceIndex
	embedder ai.VisualEmbedder
}

// NewEngine creates a search engine over the given store and embedder.
func NewEngine(files vectorstore.FileIndex, faces vectorstore.FaceIndex, embedder ai.VisualEmbedder) *Engine {
	return &Engine{files: files, faces: faces, embedder: embedder}
}

// candidate carries one file through scoring. The ordered slice preserves
// store return order, so the stable sort breaks ties deterministically.
type candidate struct {
	rec       vectorstore.FileRecord
	score     float64
	matchType string
}

// Search ranks files against a free-text query.
//
// The vector pass fetches over-provisioned nearest neighbors and fuses each
// candidate's similarity with keyword scores over its extracted text and
// filename. A separate keyword-only pass over the whole store recovers text
// hits whose vector similarity was too low to surface. Either pass failing
// degrades to the other's results rather than failing the query.
func (e *Engine) Search(ctx context.Context, req Request) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", service.ErrInvalidInput)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	byID := make(map[string]*candidate)
	var ordered []*candidate

	add := func(rec vectorstore.FileRecord) *candidate {
		c := &candidate{rec: rec}
		byID[rec.FileID] = c
		ordered = append(ordered, c)
		return c
	}

	// Vector pass
	vector, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		logger.WarnContext(ctx, "query embedding failed, falling back to keyword-only search", "error", err)
	} else {
		filter := vectorstore.Filter{
			FileType:   req.FileType,
			Extension:  req.Extension,
			FolderPath: req.FolderPath,
		}
		hits, err := e.files.Query(ctx, vector, overfetchFactor*limit, filter)
		if err != nil {
			logger.WarnContext(ctx, "vector query failed", "error", err)
		} else {
			for _, hit := range hits {
				c := add(hit.Record)
				e.fuse(c, query, similarityFromDistance(hit.Distance))
			}
		}
	}

	// Keyword-only pass over the whole store
	all, err := e.files.GetAll(ctx)
	if err != nil {
		logger.WarnContext(ctx, "keyword pass failed", "error", err)
	} else {
		lowered := strings.ToLower(query)
		for _, rec := range all {
			if rec.OCRText == "" || !strings.Contains(strings.ToLower(rec.OCRText), lowered) {
				continue
			}
			if !matchesFilters(rec, req) {
				continue
			}

			floor := keywordOnlyBase + keywordOnlyRange*keywordScore(query, rec.OCRText)
			if c, ok := byID[rec.FileID]; ok {
				if floor > c.score {
					c.score = floor
				}
				c.addTextSignal()
			} else {
				c := add(rec)
				c.score = floor
				c.matchType = MatchText
			}
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].score > ordered[j].score
	})

	results := make([]Result, 0, limit)
	for _, c := range ordered {
		score := round1(math.Min(c.score, 1.0) * 100)
		if score < req.MinScore {
			continue
		}
		results = append(results, resultFromCandidate(c, score))
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// fuse combines a candidate's vector similarity with keyword scores over its
// extracted text and filename.
func (e *Engine) fuse(c *candidate, query string, sim float64) {
	c.score = sim
	c.matchType = MatchVisual

	textScore := keywordScore(query, c.rec.OCRText)
	switch {
	case textScore > strongKeywordThreshold:
		c.score = math.Max(sim, textScore) + combinedBonus
		c.addTextSignal()
	case textScore > 0:
		c.score += weakKeywordWeight * textScore
		c.addTextSignal()
	}

	nameScore := keywordScore(query, c.rec.Filename)
	if nameScore > strongKeywordThreshold {
		if floor := nameScore + filenameFloorBonus; floor > c.score {
			c.score = floor
		}
		c.addTextSignal()
	}
}

func (c *candidate) addTextSignal() {
	if c.matchType == MatchVisual {
		c.matchType = MatchVisualText
	}
}

// similarityFromDistance maps cosine distance in [0,2] to similarity in [0,1]
// and stretches the top of the distribution away from the middle.
func similarityFromDistance(distance float64) float64 {
	sim := math.Max(0, 1-distance/2)
	if sim > highSimThreshold {
		sim = math.Min(1.0, highSimThreshold+(sim-highSimThreshold)*highSimGain)
	}
	return sim
}

func matchesFilters(rec vectorstore.FileRecord, req Request) bool {
	if req.FileType != "" && string(rec.FileType) != req.FileType {
		return false
	}
	if req.Extension != "" && !strings.EqualFold(rec.Extension, req.Extension) {
		return false
	}
	if req.FolderPath != "" && !strings.Contains(rec.Folder, req.FolderPath) {
		return false
	}
	return true
}

func resultFromCandidate(c *candidate, score float64) Result {
	return Result{
		FileID:         c.rec.FileID,
		Filepath:       c.rec.Filepath,
		Filename:       c.rec.Filename,
		Folder:         c.rec.Folder,
		Extension:      c.rec.Extension,
		FileType:       string(c.rec.FileType),
		SizeMB:         c.rec.SizeMB,
		Modified:       c.rec.Modified,
		OCRText:        c.rec.OCRText,
		RelevanceScore: score,
		MatchType:      c.matchType,
	}
}

// Folders returns the distinct folder paths currently in the index, sorted.
func (e *Engine) Folders(ctx context.Context) ([]string, error) {
	all, err := e.files.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var folders []string
	for _, rec := range all {
		if rec.Folder == "" || seen[rec.Folder] {
			continue
		}
		seen[rec.Folder] = true
		folders = append(folders, rec.Folder)
	}
	sort.Strings(folders)
	return folders, nil
}

// Stats summarizes index contents.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	all, err := e.files.GetAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	faceCount, err := e.faces.CountFaces(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalFiles: len(all), Faces: int(faceCount)}
	for _, rec := range all {
		switch rec.FileType {
		case vectorstore.FileTypeImage:
			stats.Images++
		case vectorstore.FileTypeDocument:
			stats.Documents++
		}
	}
	return stats, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

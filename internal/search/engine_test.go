package search

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	aimocks "findmyfile/internal/ai/mocks"
	"findmyfile/internal/service"
	"findmyfile/internal/vectorstore"
	vsmocks "findmyfile/internal/vectorstore/mocks"
)

func fileRec(id, filename, ocr string) vectorstore.FileRecord {
	return vectorstore.FileRecord{
		FileID:   id,
		Filepath: "/photos/" + filename,
		Filename: filename,
		Folder:   "/photos",
		FileType: vectorstore.FileTypeImage,
	}
}

func newEngineMocks(t *testing.T) (*Engine, *vsmocks.MockFileIndex, *vsmocks.MockFaceIndex, *aimocks.MockVisualEmbedder) {
	ctrl := gomock.NewController(t)
	files := vsmocks.NewMockFileIndex(ctrl)
	faces := vsmocks.NewMockFaceIndex(ctrl)
	embedder := aimocks.NewMockVisualEmbedder(ctrl)
	return NewEngine(files, faces, embedder), files, faces, embedder
}

func TestEngine_Search_FusesSignals(t *testing.T) {
	engine, files, _, embedder := newEngineMocks(t)
	ctx := context.Background()

	combined := fileRec("id-1", "sunset.jpg", "")
	combined.OCRText = "A beautiful beach sunset photo"
	visualOnly := fileRec("id-2", "mountains.jpg", "")
	textOnly := fileRec("id-3", "trip.txt", "")
	textOnly.OCRText = "notes about the beach sunset trip"
	textOnly.FileType = vectorstore.FileTypeDocument

	embedder.EXPECT().EmbedText(gomock.Any(), "beach sunset").Return([]float32{0.1, 0.2}, nil)
	files.EXPECT().Query(gomock.Any(), gomock.Any(), 3*defaultLimit, gomock.Any()).Return([]vectorstore.Candidate{
		{FileID: "id-1", Distance: 0.8, Record: combined},  // sim 0.6
		{FileID: "id-2", Distance: 0.4, Record: visualOnly}, // sim 0.8
	}, nil)
	files.EXPECT().GetAll(gomock.Any()).Return([]vectorstore.FileRecord{combined, visualOnly, textOnly}, nil)

	results, err := engine.Search(ctx, Request{Query: "beach sunset"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Search() returned %d results, want 3", len(results))
	}

	// Strong text hit overrides toward max(sim, kw) + bonus, clamped to 100
	if results[0].FileID != "id-1" || results[0].RelevanceScore != 100.0 {
		t.Errorf("results[0] = %s/%v, want id-1/100.0", results[0].FileID, results[0].RelevanceScore)
	}
	if results[0].MatchType != MatchVisualText {
		t.Errorf("results[0].MatchType = %q, want %q", results[0].MatchType, MatchVisualText)
	}

	// Keyword-only pass recovers the text hit at the phrase floor
	if results[1].FileID != "id-3" || results[1].RelevanceScore != 95.0 {
		t.Errorf("results[1] = %s/%v, want id-3/95.0", results[1].FileID, results[1].RelevanceScore)
	}
	if results[1].MatchType != MatchText {
		t.Errorf("results[1].MatchType = %q, want %q", results[1].MatchType, MatchText)
	}

	// Pure vector hit keeps its similarity
	if results[2].FileID != "id-2" || results[2].RelevanceScore != 80.0 {
		t.Errorf("results[2] = %s/%v, want id-2/80.0", results[2].FileID, results[2].RelevanceScore)
	}
	if results[2].MatchType != MatchVisual {
		t.Errorf("results[2].MatchType = %q, want %q", results[2].MatchType, MatchVisual)
	}
}

func TestEngine_Search_HighSimilarityBoost(t *testing.T) {
	engine, files, _, embedder := newEngineMocks(t)

	rec := fileRec("id-1", "dog.jpg", "")

	embedder.EXPECT().EmbedText(gomock.Any(), gomock.Any()).Return([]float32{0.5}, nil)
	files.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]vectorstore.Candidate{
		{FileID: "id-1", Distance: 0.2, Record: rec}, // sim 0.9 -> boosted 0.95
	}, nil)
	files.EXPECT().GetAll(gomock.Any()).Return(nil, nil)

	results, err := engine.Search(context.Background(), Request{Query: "puppy"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].RelevanceScore != 95.0 {
		t.Errorf("results = %+v, want one hit at 95.0", results)
	}
}

func TestEngine_Search_MinScoreFilter(t *testing.T) {
	engine, files, _, embedder := newEngineMocks(t)

	strong := fileRec("id-1", "a.jpg", "")
	weak := fileRec("id-2", "b.jpg", "")

	embedder.EXPECT().EmbedText(gomock.Any(), gomock.Any()).Return([]float32{0.5}, nil)
	files.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]vectorstore.Candidate{
		{FileID: "id-1", Distance: 0.4, Record: strong}, // 80
		{FileID: "id-2", Distance: 1.2, Record: weak},   // 40
	}, nil)
	files.EXPECT().GetAll(gomock.Any()).Return(nil, nil)

	results, err := engine.Search(context.Background(), Request{Query: "anything", MinScore: 50})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].FileID != "id-1" {
		t.Errorf("results = %+v, want only the strong hit", results)
	}
}

func TestEngine_Search_StableTieOrder(t *testing.T) {
	engine, files, _, embedder := newEngineMocks(t)

	first := fileRec("id-1", "a.jpg", "")
	second := fileRec("id-2", "b.jpg", "")

	embedder.EXPECT().EmbedText(gomock.Any(), gomock.Any()).Return([]float32{0.5}, nil)
	files.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]vectorstore.Candidate{
		{FileID: "id-1", Distance: 0.6, Record: first},
		{FileID: "id-2", Distance: 0.6, Record: second},
	}, nil)
	files.EXPECT().GetAll(gomock.Any()).Return(nil, nil)

	results, err := engine.Search(context.Background(), Request{Query: "tie"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 || results[0].FileID != "id-1" || results[1].FileID != "id-2" {
		t.Errorf("tie order = %v, want store return order preserved", []string{results[0].FileID, results[1].FileID})
	}
}

func TestEngine_Search_EmptyQuery(t *testing.T) {
	engine, _, _, _ := newEngineMocks(t)

	_, err := engine.Search(context.Background(), Request{Query: "   "})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("Search() error = %v, want ErrInvalidInput", err)
	}
}

func TestEngine_Search_EmbedFailureDegradesToKeywordOnly(t *testing.T) {
	engine, files, _, embedder := newEngineMocks(t)

	textHit := fileRec("id-3", "trip.txt", "")
	textHit.OCRText = "hiking in the alps"

	embedder.EXPECT().EmbedText(gomock.Any(), gomock.Any()).Return(nil, errors.New("provider down"))
	files.EXPECT().GetAll(gomock.Any()).Return([]vectorstore.FileRecord{textHit}, nil)

	results, err := engine.Search(context.Background(), Request{Query: "alps"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].FileID != "id-3" {
		t.Errorf("results = %+v, want the keyword-only hit", results)
	}
	if results[0].MatchType != MatchText {
		t.Errorf("MatchType = %q, want %q", results[0].MatchType, MatchText)
	}
}

func TestEngine_Search_KeywordPassHonorsFilters(t *testing.T) {
	engine, files, _, embedder := newEngineMocks(t)

	doc := fileRec("id-1", "budget.txt", "")
	doc.OCRText = "budget spreadsheet"
	doc.FileType = vectorstore.FileTypeDocument
	img := fileRec("id-2", "budget.jpg", "")
	img.OCRText = "budget whiteboard photo"

	embedder.EXPECT().EmbedText(gomock.Any(), gomock.Any()).Return([]float32{0.5}, nil)
	files.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	files.EXPECT().GetAll(gomock.Any()).Return([]vectorstore.FileRecord{doc, img}, nil)

	results, err := engine.Search(context.Background(), Request{Query: "budget", FileType: "document"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].FileID != "id-1" {
		t.Errorf("results = %+v, want only the document", results)
	}
}

func TestEngine_Folders(t *testing.T) {
	engine, files, _, _ := newEngineMocks(t)

	files.EXPECT().GetAll(gomock.Any()).Return([]vectorstore.FileRecord{
		{FileID: "1", Folder: "/photos/2024"},
		{FileID: "2", Folder: "/docs"},
		{FileID: "3", Folder: "/photos/2024"},
	}, nil)

	folders, err := engine.Folders(context.Background())
	if err != nil {
		t.Fatalf("Folders() error = %v", err)
	}
	want := []string{"/docs", "/photos/2024"}
	if len(folders) != 2 || folders[0] != want[0] || folders[1] != want[1] {
		t.Errorf("Folders() = %v, want %v", folders, want)
	}
}

func TestEngine_Stats(t *testing.T) {
	engine, files, faces, _ := newEngineMocks(t)

	files.EXPECT().GetAll(gomock.Any()).Return([]vectorstore.FileRecord{
		{FileID: "1", FileType: vectorstore.FileTypeImage},
		{FileID: "2", FileType: vectorstore.FileTypeImage},
		{FileID: "3", FileType: vectorstore.FileTypeDocument},
	}, nil)
	faces.EXPECT().CountFaces(gomock.Any()).Return(uint64(4), nil)

	stats, err := engine.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalFiles != 3 || stats.Images != 2 || stats.Documents != 1 || stats.Faces != 4 {
		t.Errorf("Stats() = %+v, want 3/2/1/4", stats)
	}
}

func TestFuse_MonotonicInKeywordScore(t *testing.T) {
	query := "beach sunset"
	// Texts in ascending keyword tiers; the middle pair straddles the
	// strong-keyword threshold, so the sweep crosses both fusion branches.
	texts := []string{
		"",
		"a beach day",
		"sunsets at the beach",
		"sunset on the beach today",
		"the beach sunset shot",
	}
	if kw := keywordScore(query, texts[1]); kw <= 0 || kw > strongKeywordThreshold {
		t.Fatalf("keywordScore(%q) = %v, want weak tier", texts[1], kw)
	}
	if kw := keywordScore(query, texts[2]); kw <= strongKeywordThreshold {
		t.Fatalf("keywordScore(%q) = %v, want strong tier", texts[2], kw)
	}

	e := &Engine{}
	for _, sim := range []float64{0, 0.3, 0.6, 0.9} {
		prevKw, prevScore := -1.0, -1.0
		for _, text := range texts {
			kw := keywordScore(query, text)
			if kw < prevKw {
				t.Fatalf("keywordScore(%q) = %v, texts not in ascending order", text, kw)
			}
			c := &candidate{rec: vectorstore.FileRecord{Filename: "img_001.jpg", OCRText: text}}
			e.fuse(c, query, sim)
			if c.score < prevScore {
				t.Errorf("fuse(sim=%v, kw=%v) = %v, below %v at lower keyword score", sim, kw, c.score, prevScore)
			}
			prevKw, prevScore = kw, c.score
		}
	}
}

func TestFuse_MonotonicInSimilarity(t *testing.T) {
	query := "beach sunset"
	e := &Engine{}
	for _, text := range []string{"", "a beach day", "the beach sunset shot"} {
		prev := -1.0
		for sim := 0.0; sim <= 1.0; sim += 0.05 {
			c := &candidate{rec: vectorstore.FileRecord{Filename: "img_001.jpg", OCRText: text}}
			e.fuse(c, query, sim)
			if c.score < prev {
				t.Errorf("fuse(sim=%v, text=%q) = %v, below %v at lower similarity", sim, text, c.score, prev)
			}
			prev = c.score
		}
	}
}

func TestEngine_Search_RaisingMinScoreOnlyShrinks(t *testing.T) {
	engine, files, _, embedder := newEngineMocks(t)
	ctx := context.Background()

	combined := fileRec("id-1", "sunset.jpg", "")
	combined.OCRText = "A beautiful beach sunset photo"
	visualOnly := fileRec("id-2", "mountains.jpg", "")
	textOnly := fileRec("id-3", "trip.txt", "")
	textOnly.OCRText = "notes about the beach sunset trip"
	textOnly.FileType = vectorstore.FileTypeDocument

	embedder.EXPECT().EmbedText(gomock.Any(), gomock.Any()).Return([]float32{0.1, 0.2}, nil).AnyTimes()
	files.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]vectorstore.Candidate{
		{FileID: "id-1", Distance: 0.8, Record: combined},   // fused 100
		{FileID: "id-2", Distance: 0.4, Record: visualOnly}, // fused 80
	}, nil).AnyTimes()
	files.EXPECT().GetAll(gomock.Any()).Return([]vectorstore.FileRecord{combined, visualOnly, textOnly}, nil).AnyTimes()

	var prev []Result
	for i, minScore := range []float64{0, 90, 101} {
		results, err := engine.Search(ctx, Request{Query: "beach sunset", MinScore: minScore})
		if err != nil {
			t.Fatalf("Search(min_score=%v) error = %v", minScore, err)
		}
		for _, r := range results {
			if r.RelevanceScore < minScore {
				t.Errorf("min_score=%v returned %s at %v", minScore, r.FileID, r.RelevanceScore)
			}
		}
		if i > 0 {
			if len(results) > len(prev) {
				t.Errorf("min_score=%v returned %d results, more than %d at the lower threshold", minScore, len(results), len(prev))
			}
			for _, r := range results {
				found := false
				for _, p := range prev {
					if p.FileID == r.FileID {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("min_score=%v returned %s absent at the lower threshold", minScore, r.FileID)
				}
			}
		}
		prev = results
	}
}

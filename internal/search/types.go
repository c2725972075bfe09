package search

// Match type tags reported per result, reflecting which signals contributed.
const (
	MatchVisual     = "visual"
	MatchText       = "text"
	MatchVisualText = "visual+text"
)

// Request is a ranked text search request.
type Request struct {
	Query      string  `json:"query"`
	FileType   string  `json:"file_type,omitempty"`
	Extension  string  `json:"extension,omitempty"`
	FolderPath string  `json:"folder_path,omitempty"`
	MinScore   float64 `json:"min_score,omitempty"` // 0-100 scale
	Limit      int     `json:"limit,omitempty"`
}

// Result is one ranked search hit. RelevanceScore is on a 0-100 scale with
// one decimal place.
type Result struct {
	FileID         string  `json:"file_id"`
	Filepath       string  `json:"filepath"`
	Filename       string  `json:"filename"`
	Folder         string  `json:"folder"`
	Extension      string  `json:"extension"`
	FileType       string  `json:"file_type"`
	SizeMB         float64 `json:"size_mb"`
	Modified       string  `json:"modified,omitempty"`
	OCRText        string  `json:"ocr_text,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
	MatchType      string  `json:"match_type"`
}

// FaceRequest is a reference-image face search request. MinSimilarity is on
// the 0-100 output scale; nil means the default floor, an explicit zero
// disables filtering entirely.
type FaceRequest struct {
	FolderPath    string   `json:"folder_path,omitempty"`
	MinSimilarity *float64 `json:"min_similarity,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

// FaceResult is one face search hit, collapsed to the best face per source
// file. Similarity is on a 0-100 scale with one decimal place.
type FaceResult struct {
	FileID     string  `json:"file_id"`
	Filepath   string  `json:"filepath"`
	Filename   string  `json:"filename"`
	Similarity float64 `json:"similarity"`
	Confidence float64 `json:"confidence"`
	Box        [4]int  `json:"box"`
}

// Stats summarizes the current index contents.
type Stats struct {
	TotalFiles int `json:"total_files"`
	Images     int `json:"images"`
	Documents  int `json:"documents"`
	Faces      int `json:"faces"`
}

package engine

// --- Request types ---

// VideoRequest is the body shared by all three video endpoints and MCP tools.
type VideoRequest struct {
	VideoID  string `json:"video_id" binding:"required" jsonschema:"YouTube video ID or watch URL"`
	Language string `json:"language,omitempty" jsonschema:"Caption language code (default: es). English is tried when it is unavailable"`
}

// --- Output types (JSON responses) ---

// TranscriptResponse carries the compacted transcript.
type TranscriptResponse struct {
	ConvertedText string `json:"converted_text"`
}

// VideoMetadata is the normalized metadata shape. LikeCount and CommentCount
// are nil when the source did not report them.
type VideoMetadata struct {
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	Duration     string `json:"duration"`
	ViewCount    int64  `json:"view_count"`
	Description  string `json:"description"`
	UploadDate   string `json:"upload_date"`
	Thumbnail    string `json:"thumbnail"`
	LikeCount    *int64 `json:"like_count"`
	CommentCount *int64 `json:"comment_count"`
}

// FullVideoInfo is the combined response: metadata plus transcript,
// flattened into one JSON object.
type FullVideoInfo struct {
	VideoMetadata
	ConvertedText string `json:"converted_text"`
}

// --- Metadata collaborator types ---

// ExtractOptions controls the metadata extractor. Media is never downloaded.
type ExtractOptions struct {
	Quiet      bool
	NoWarnings bool
}

// RawVideoInfo is the subset of the extractor's info dict we read.
// Pointer fields stay nil when the key is absent (or null).
type RawVideoInfo struct {
	ID           *string  `json:"id"`
	Title        *string  `json:"title"`
	Uploader     *string  `json:"uploader"`
	Duration     *float64 `json:"duration"`
	ViewCount    *int64   `json:"view_count"`
	Description  *string  `json:"description"`
	UploadDate   *string  `json:"upload_date"`
	Thumbnail    *string  `json:"thumbnail"`
	LikeCount    *int64   `json:"like_count"`
	CommentCount *int64   `json:"comment_count"`
}

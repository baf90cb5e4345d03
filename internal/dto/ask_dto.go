package dto

type AskRequest struct {
	Question string `json:"question" validate:"required"`
	Mode     string `json:"mode" validate:"omitempty,oneof=keyword vector hybrid"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

// SourceRef points the client at one passage the answer was grounded on
type SourceRef struct {
	DocumentId string  `json:"document_id"`
	Header     string  `json:"header,omitempty"`
	FolderPath string  `json:"folder_path,omitempty"`
	Relevance  float64 `json:"relevance"`
}

type AskResponse struct {
	Question     string      `json:"question"`
	Answer       string      `json:"answer"`
	Sources      []SourceRef `json:"sources"`
	ModeUsed     string      `json:"mode_used"`
	AiUsed       bool        `json:"ai_used"`
	Cached       bool        `json:"cached"`
	SearchTimeMs int64       `json:"search_time_ms"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	Mode  string `json:"mode" validate:"omitempty,oneof=keyword vector hybrid"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

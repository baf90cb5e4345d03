package dto

import "time"

type StatusResponse struct {
	DocumentCount   int       `json:"document_count"`
	CorpusVersion   uint64    `json:"corpus_version"`
	LoadedAt        time.Time `json:"loaded_at"`
	IndexedSections int64     `json:"indexed_sections"`
	CacheEntries    int       `json:"cache_entries"`
}

type ReloadResponse struct {
	DocumentCount int    `json:"document_count"`
	CorpusVersion uint64 `json:"corpus_version"`
}

type DocumentSection struct {
	Header  string `json:"header"`
	Content string `json:"content"`
}

type DocumentListItem struct {
	Id         string `json:"id"`
	FolderPath string `json:"folder_path"`
}

type ShowDocumentResponse struct {
	Id         string            `json:"id"`
	Filename   string            `json:"filename"`
	FolderPath string            `json:"folder_path"`
	Content    string            `json:"content"`
	Sections   []DocumentSection `json:"sections"`
}

// PublishIndexDocumentMessage asks the indexer to (re)embed one document
type PublishIndexDocumentMessage struct {
	DocumentId string `json:"document_id"`
}

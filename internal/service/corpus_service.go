package service

import (
	"context"
	"encoding/json"

	"kb-assist-be/internal/dto"
	"kb-assist-be/internal/pkg/logger"
	"kb-assist-be/internal/pkg/serverutils"
	"kb-assist-be/internal/repository/unitofwork"
	"kb-assist-be/pkg/cache"
	"kb-assist-be/pkg/corpus"
	"kb-assist-be/pkg/markdown"
)

type ICorpusService interface {
	Status(ctx context.Context) (*dto.StatusResponse, error)
	Reload(ctx context.Context) (*dto.ReloadResponse, error)
	ListDocuments(ctx context.Context) ([]dto.DocumentListItem, error)
	ShowDocument(ctx context.Context, documentId string) (*dto.ShowDocumentResponse, error)
}

type corpusService struct {
	loader           *corpus.Loader
	holder           *corpus.Holder
	responseCache    *cache.ResponseCache
	publisherService IPublisherService
	uowFactory       unitofwork.RepositoryFactory
	logger           logger.ILogger
}

func NewCorpusService(
	loader *corpus.Loader,
	holder *corpus.Holder,
	responseCache *cache.ResponseCache,
	publisherService IPublisherService,
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
) ICorpusService {
	return &corpusService{
		loader:           loader,
		holder:           holder,
		responseCache:    responseCache,
		publisherService: publisherService,
		uowFactory:       uowFactory,
		logger:           sysLogger,
	}
}

func (s *corpusService) Status(ctx context.Context) (*dto.StatusResponse, error) {
	snapshot := s.holder.Current()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	indexed, err := uow.SectionEmbeddingRepository().Count(ctx)
	if err != nil {
		// The corpus status is still useful when the index store is down.
		s.logger.Warn("CorpusService", "Failed to count indexed sections", map[string]interface{}{
			"error": err.Error(),
		})
		indexed = 0
	}

	return &dto.StatusResponse{
		DocumentCount:   snapshot.Len(),
		CorpusVersion:   snapshot.Version,
		LoadedAt:        snapshot.LoadedAt,
		IndexedSections: indexed,
		CacheEntries:    s.responseCache.Count(),
	}, nil
}

// Reload re-reads the corpus from disk, swaps it in atomically, drops
// the response cache, and queues every document for re-indexing.
// In-flight queries keep the snapshot they started with.
func (s *corpusService) Reload(ctx context.Context) (*dto.ReloadResponse, error) {
	documents, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	snapshot := s.holder.Swap(documents)
	s.responseCache.Flush()

	// Full reindex: drop the whole vector index so documents removed
	// from disk do not leave stale embeddings behind. The per-document
	// messages below rebuild it.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SectionEmbeddingRepository().DeleteAll(ctx); err != nil {
		s.logger.Warn("CorpusService", "Failed to clear vector index before reindexing", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.logger.Info("CorpusService", "Corpus reloaded", map[string]interface{}{
		"document_count": snapshot.Len(),
		"version":        snapshot.Version,
	})

	for _, doc := range snapshot.Documents {
		payload, err := json.Marshal(dto.PublishIndexDocumentMessage{DocumentId: doc.ID})
		if err != nil {
			continue
		}
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Warn("CorpusService", "Failed to queue document for indexing", map[string]interface{}{
				"document_id": doc.ID,
				"error":       err.Error(),
			})
		}
	}

	return &dto.ReloadResponse{
		DocumentCount: snapshot.Len(),
		CorpusVersion: snapshot.Version,
	}, nil
}

func (s *corpusService) ListDocuments(ctx context.Context) ([]dto.DocumentListItem, error) {
	snapshot := s.holder.Current()
	items := make([]dto.DocumentListItem, len(snapshot.Documents))
	for i, doc := range snapshot.Documents {
		items[i] = dto.DocumentListItem{
			Id:         doc.ID,
			FolderPath: doc.FolderPath,
		}
	}
	return items, nil
}

func (s *corpusService) ShowDocument(ctx context.Context, documentId string) (*dto.ShowDocumentResponse, error) {
	snapshot := s.holder.Current()
	doc, ok := snapshot.FindByID(documentId)
	if !ok {
		return nil, serverutils.NotFound("document not found: " + documentId)
	}

	sections := markdown.SplitSections(doc.Content)
	dtoSections := make([]dto.DocumentSection, len(sections))
	for i, sec := range sections {
		dtoSections[i] = dto.DocumentSection{
			Header:  sec.Header,
			Content: sec.Content,
		}
	}

	return &dto.ShowDocumentResponse{
		Id:         doc.ID,
		Filename:   doc.Filename,
		FolderPath: doc.FolderPath,
		Content:    doc.Content,
		Sections:   dtoSections,
	}, nil
}

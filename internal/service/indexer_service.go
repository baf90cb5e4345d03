package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"kb-assist-be/internal/dto"
	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/repository/unitofwork"
	"kb-assist-be/pkg/corpus"
	"kb-assist-be/pkg/embedding"
	"kb-assist-be/pkg/markdown"
	"kb-assist-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Chunking parameters for sections too long to embed whole.
const (
	indexChunkSize    = 1500
	indexChunkOverlap = 200
)

type IIndexerService interface {
	Consume(ctx context.Context) error
}

// indexerService consumes index messages and keeps section embeddings
// in sync with the corpus: each message re-embeds one document's
// sections, replacing whatever was stored for it before.
type indexerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	holder            *corpus.Holder
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	holder *corpus.Holder,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IIndexerService {
	return &indexerService{
		pubSub:            pubSub,
		topicName:         topicName,
		holder:            holder,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	snapshot := s.holder.Current()
	doc, ok := snapshot.FindByID(payload.DocumentId)
	if !ok {
		// Document vanished between reload and processing; drop its
		// stale embeddings and move on.
		log.Printf("[INFO] Document no longer in corpus, removing embeddings: %s", payload.DocumentId)
		if err := uow.SectionEmbeddingRepository().DeleteByDocumentId(ctx, payload.DocumentId); err != nil {
			log.Printf("[ERROR] Failed to delete stale embeddings for %s: %v", payload.DocumentId, err)
			msg.Nack()
			return
		}
		msg.Ack()
		return
	}

	log.Printf("[INFO] Indexing document %s (content length: %d)", doc.ID, len(doc.Content))

	var newEmbeddings []*entity.SectionEmbedding
	chunkIndex := 0

	for _, section := range markdown.SplitSections(doc.Content) {
		text := section.Content
		if section.Header != "" {
			text = section.Header + "\n" + section.Content
		}

		for _, chunk := range utils.SplitText(text, indexChunkSize, indexChunkOverlap) {
			res, err := s.embeddingProvider.Generate(chunk, embedding.TaskDocument)
			if err != nil {
				log.Printf("[ERROR] Failed to embed chunk %d of %s: %v", chunkIndex, doc.ID, err)
				msg.Nack() // Nack for retriable errors
				return
			}

			newEmbeddings = append(newEmbeddings, &entity.SectionEmbedding{
				Id:             uuid.New(),
				DocumentId:     doc.ID,
				Header:         section.Header,
				FolderPath:     doc.FolderPath,
				Document:       chunk,
				EmbeddingValue: res.Embedding.Values,
				ChunkIndex:     chunkIndex,
				CreatedAt:      time.Now(),
			})
			chunkIndex++
		}
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.SectionEmbeddingRepository().DeleteByDocumentId(ctx, doc.ID); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings for %s: %v", doc.ID, err)
		msg.Nack()
		return
	}

	if len(newEmbeddings) > 0 {
		if err := uow.SectionEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to create embeddings for %s: %v", doc.ID, err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Indexed %d chunks for document %s", len(newEmbeddings), doc.ID)
	msg.Ack()
}

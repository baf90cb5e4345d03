package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kb-assist-be/internal/dto"
	"kb-assist-be/internal/pkg/logger"
	"kb-assist-be/pkg/cache"
	"kb-assist-be/pkg/corpus"
	"kb-assist-be/pkg/llm"
	"kb-assist-be/pkg/rag/prompt"
	"kb-assist-be/pkg/retrieval"
)

type IAskService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	Search(ctx context.Context, req *dto.SearchRequest) (*retrieval.ResultSet, error)
}

type askService struct {
	orchestrator  *retrieval.Orchestrator
	holder        *corpus.Holder
	responseCache *cache.ResponseCache
	llmProvider   llm.LLMProvider
	defaults      retrieval.Options
	logger        logger.ILogger
}

func NewAskService(
	orchestrator *retrieval.Orchestrator,
	holder *corpus.Holder,
	responseCache *cache.ResponseCache,
	llmProvider llm.LLMProvider,
	defaults retrieval.Options,
	sysLogger logger.ILogger,
) IAskService {
	return &askService{
		orchestrator:  orchestrator,
		holder:        holder,
		responseCache: responseCache,
		llmProvider:   llmProvider,
		defaults:      defaults,
		logger:        sysLogger,
	}
}

func (s *askService) options(mode string, limit int) retrieval.Options {
	opts := s.defaults
	if mode != "" {
		opts.Mode = retrieval.Mode(mode)
	}
	if limit > 0 {
		opts.Limit = limit
	}
	return opts
}

func (s *askService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	opts := s.options(req.Mode, req.Limit)
	cacheKey := cache.Key("ask", string(opts.Mode), strconv.Itoa(opts.Limit), req.Question)

	if cached, ok := s.responseCache.Get(cacheKey); ok {
		if response, ok := cached.(*dto.AskResponse); ok {
			copied := *response
			copied.Cached = true
			return &copied, nil
		}
		// Wrong type means a corrupted entry; treat as a miss.
		s.responseCache.Delete(cacheKey)
	}

	snapshot := s.holder.Current()
	result := s.orchestrator.Retrieve(ctx, req.Question, snapshot.Documents, opts)

	response := &dto.AskResponse{
		Question:     req.Question,
		ModeUsed:     string(result.ModeUsed),
		Sources:      sourceRefs(result.Candidates),
		SearchTimeMs: result.SearchTimeMs,
	}

	if len(result.Candidates) == 0 {
		if result.EmptyCorpus {
			response.Answer = "The knowledge base is empty. Add documents and reload the corpus first."
		} else {
			response.Answer = "I couldn't find anything relevant to that question in the knowledge base."
		}
		s.responseCache.Set(cacheKey, response)
		return response, nil
	}

	response.Answer, response.AiUsed = s.synthesize(ctx, req.Question, result.Candidates)
	s.responseCache.Set(cacheKey, response)
	return response, nil
}

// synthesize asks the LLM to answer from the retrieved passages. When
// every model in the chain fails, the passages themselves are the
// answer: retrieval results must not be lost to a dead LLM backend.
func (s *askService) synthesize(ctx context.Context, question string, candidates []retrieval.Candidate) (string, bool) {
	builder := prompt.NewGroundedBuilder(question, candidates)
	answer, err := s.llmProvider.Generate(ctx, builder.Build())
	if err == nil && strings.TrimSpace(answer) != "" {
		return answer, true
	}

	if err != nil {
		s.logger.Warn("AskService", "LLM synthesis failed, returning verbatim sections", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return verbatimAnswer(candidates), false
}

// verbatimAnswer formats the top passages directly
func verbatimAnswer(candidates []retrieval.Candidate) string {
	var b strings.Builder
	b.WriteString("Here is what I found in the knowledge base:\n")
	for i, c := range candidates {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, c.DocumentID))
		if c.Header != "" {
			b.WriteString(" - " + c.Header)
		}
		b.WriteString("\n")
		b.WriteString(c.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func sourceRefs(candidates []retrieval.Candidate) []dto.SourceRef {
	refs := make([]dto.SourceRef, len(candidates))
	for i, c := range candidates {
		refs[i] = dto.SourceRef{
			DocumentId: c.DocumentID,
			Header:     c.Header,
			FolderPath: c.FolderPath,
			Relevance:  c.Relevance,
		}
	}
	return refs
}

func (s *askService) Search(ctx context.Context, req *dto.SearchRequest) (*retrieval.ResultSet, error) {
	opts := s.options(req.Mode, req.Limit)
	cacheKey := cache.Key("search", string(opts.Mode), strconv.Itoa(opts.Limit), req.Query)

	if cached, ok := s.responseCache.Get(cacheKey); ok {
		if result, ok := cached.(*retrieval.ResultSet); ok {
			return result, nil
		}
		s.responseCache.Delete(cacheKey)
	}

	snapshot := s.holder.Current()
	result := s.orchestrator.Retrieve(ctx, req.Query, snapshot.Documents, opts)

	s.responseCache.Set(cacheKey, &result)
	return &result, nil
}

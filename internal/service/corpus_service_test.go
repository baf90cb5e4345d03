package service

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-assist-be/pkg/cache"
	"kb-assist-be/pkg/corpus"
)

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func writeDoc(t *testing.T, root, relPath, content string) {
	t.Helper()
	full := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestCorpusReloadRebuildsIndexFromScratch(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "a.md", "# A\nalpha notes")
	writeDoc(t, root, "ops/b.md", "# B\nbeta notes")

	holder := corpus.NewHolder()
	responseCache := cache.NewDefault()
	responseCache.Set("stale", 1)
	publisher := &recordingPublisher{}
	factory, _, sectionRepo := newFakeUowFactory()
	loader := corpus.NewLoader(root, log.New(io.Discard, "", 0))

	svc := NewCorpusService(loader, holder, responseCache, publisher, factory, nopLogger{})

	res, err := svc.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.DocumentCount)
	assert.Equal(t, 2, holder.Current().Len())
	assert.Equal(t, 1, sectionRepo.deleteAllCalls, "reload must clear the vector index before reindexing")
	assert.Len(t, publisher.payloads, 2, "every document gets queued for indexing")

	_, ok := responseCache.Get("stale")
	assert.False(t, ok, "reload must flush cached answers")
}

func TestCorpusStatusToleratesIndexStoreFailure(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "a.md", "# A\nalpha")

	holder := corpus.NewHolder()
	holder.Swap([]corpus.Document{{ID: "a.md"}})
	factory, _, sectionRepo := newFakeUowFactory()
	sectionRepo.countErr = errors.New("index store down")
	loader := corpus.NewLoader(root, log.New(io.Discard, "", 0))

	svc := NewCorpusService(loader, holder, cache.NewDefault(), &recordingPublisher{}, factory, nopLogger{})

	res, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.DocumentCount)
	assert.Equal(t, int64(0), res.IndexedSections)
}

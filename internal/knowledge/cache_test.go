package knowledge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_PopulatesOnFirstGet(t *testing.T) {
	docSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Programs: mentorship, tutoring."))
	}))
	defer docSrv.Close()
	siteSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Founded in 1965.</p></body></html>"))
	}))
	defer siteSrv.Close()

	f := NewFetcher(time.Second, WithDocExportBase(docSrv.URL))
	c := NewCache(f, []string{"doc-1"}, siteSrv.URL)

	blob, ok := c.Get(context.Background())
	require.True(t, ok)
	require.NotNil(t, blob)
	require.Len(t, blob.Sections, 2)

	assert.Equal(t, "OFFICIAL DOCUMENT", blob.Sections[0].Label)
	assert.Contains(t, blob.Text, "=== OFFICIAL DOCUMENT ===")
	assert.Contains(t, blob.Text, "Programs: mentorship, tutoring.")
	assert.Contains(t, blob.Text, "Founded in 1965.")
}

func TestCache_PartialFailureTolerated(t *testing.T) {
	docSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer docSrv.Close()
	siteSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>Site text only.</body></html>"))
	}))
	defer siteSrv.Close()

	f := NewFetcher(time.Second, WithDocExportBase(docSrv.URL))
	c := NewCache(f, []string{"doc-1"}, siteSrv.URL)

	blob, ok := c.Get(context.Background())
	require.True(t, ok)
	require.Len(t, blob.Sections, 1)
	assert.Contains(t, blob.Text, "Site text only.")
}

func TestCache_AbsentWhenEverySourceFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, WithDocExportBase(srv.URL))
	c := NewCache(f, []string{"doc-1"}, srv.URL)

	blob, ok := c.Get(context.Background())
	assert.False(t, ok)
	assert.Nil(t, blob)
}

func TestCache_RetriesAfterTotalFailure(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("recovered content"))
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, WithDocExportBase(srv.URL))
	c := NewCache(f, []string{"doc-1"}, "")

	_, ok := c.Get(context.Background())
	require.False(t, ok)

	healthy.Store(true)
	blob, ok := c.Get(context.Background())
	require.True(t, ok)
	assert.Contains(t, blob.Text, "recovered content")
}

func TestCache_NeverRefreshesOncePopulated(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte("first version"))
			return
		}
		_, _ = w.Write([]byte("second version"))
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, WithDocExportBase(srv.URL))
	c := NewCache(f, []string{"doc-1"}, "")

	first, ok := c.Get(context.Background())
	require.True(t, ok)

	second, ok := c.Get(context.Background())
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Contains(t, second.Text, "first version")
	assert.Equal(t, int64(1), calls.Load())
}

func TestCache_ConcurrentFirstCallersFetchOnce(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte("shared content"))
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, WithDocExportBase(srv.URL))
	c := NewCache(f, []string{"doc-1"}, "")

	var wg sync.WaitGroup
	blobs := make([]*Blob, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, ok := c.Get(context.Background())
			assert.True(t, ok)
			blobs[i] = b
		}(i)
	}
	wg.Wait()

	// Exactly one winning fetch sequence
	assert.Equal(t, int64(1), calls.Load())
	for _, b := range blobs {
		assert.Same(t, blobs[0], b)
	}
}

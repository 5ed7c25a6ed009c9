package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	snap Snapshot
	err  error
}

func (s stubFetcher) ModelsStatus(context.Context) (Snapshot, error) {
	return s.snap, s.err
}

func int64p(v int64) *int64 { return &v }

func TestRefreshReplacesState(t *testing.T) {
	sync := New(stubFetcher{snap: Snapshot{
		SelectedID: "base",
		Available: []Entry{
			{ID: "base", Name: "Base", Installed: true},
			{ID: "small", Name: "Small", Installed: false},
		},
	}})

	st, err := sync.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "base", st.SelectedID)
	require.Len(t, st.Entries, 2)
	assert.True(t, st.Entries[0].Installed)
	assert.Equal(t, "Small", st.Entries[1].Name)
}

func TestRefreshClearsDanglingSelection(t *testing.T) {
	sync := New(stubFetcher{snap: Snapshot{
		SelectedID: "gone",
		Available:  []Entry{{ID: "base", Name: "Base"}},
	}})

	st, err := sync.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, st.SelectedID, "selection must match an entry or be cleared")
}

func TestRefreshErrorKeepsPriorState(t *testing.T) {
	good := stubFetcher{snap: Snapshot{
		SelectedID: "base",
		Available:  []Entry{{ID: "base", Name: "Base", Installed: true}},
	}}
	sync := New(good)
	_, err := sync.Refresh(context.Background())
	require.NoError(t, err)

	sync.fetch = stubFetcher{err: errors.New("backend unreachable")}
	st, err := sync.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "base", st.SelectedID, "failed refresh must leave prior state intact")
}

func TestDownloadLifecycle(t *testing.T) {
	sync := New(stubFetcher{})

	st := sync.DownloadStart("large-v3-turbo", int64p(1<<30))
	require.NotNil(t, st.Download)
	assert.Equal(t, "large-v3-turbo", st.Download.ID)

	st = sync.DownloadProgress("large-v3-turbo", 512<<20, int64p(1<<30))
	require.NotNil(t, st.Download)
	assert.Equal(t, "512.0 MB / 1.0 GB (50%)", st.Download.Line())

	st = sync.DownloadComplete()
	assert.Nil(t, st.Download)
	assert.Empty(t, st.DownloadErr)
}

func TestDownloadErrorVerbatim(t *testing.T) {
	sync := New(stubFetcher{})
	sync.DownloadStart("x", nil)

	st := sync.DownloadError("connection reset by peer")
	assert.Nil(t, st.Download)
	assert.Equal(t, "connection reset by peer", st.DownloadErr)
}

// A second start overwrites the first: at most one in-flight download is
// modeled at this layer.
func TestSecondDownloadOverwrites(t *testing.T) {
	sync := New(stubFetcher{})
	sync.DownloadStart("a", nil)
	sync.DownloadProgress("a", 100, nil)

	st := sync.DownloadStart("b", nil)
	assert.Equal(t, "b", st.Download.ID)
	assert.Zero(t, st.Download.ReceivedBytes)
}

func TestProgressLineUnknownTotal(t *testing.T) {
	p := Progress{ID: "x", ReceivedBytes: 1536}
	assert.Equal(t, "1.5 KB", p.Line())
}

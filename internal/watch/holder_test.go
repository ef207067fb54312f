package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/optable/internal/catalog"
)

const oneView = "V:\n  fields: { name: true }\n"

const viewAndTable = `
V:
  fields: { name: true }
T:
  item: row
  view: V
`

func writeCatalog(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func newHolder(t *testing.T, body string) (*Holder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.yml")
	writeCatalog(t, path, body)

	h, err := NewHolder(path, nil)
	require.NoError(t, err)
	t.Cleanup(h.Stop)
	return h, path
}

func TestHolderGet(t *testing.T) {
	h, path := newHolder(t, oneView)

	assert.Equal(t, 1, h.Get().Len())
	assert.Equal(t, path, h.Path())
}

func TestHolderResolvesBarePath(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, filepath.Join(dir, "ops.yml"), oneView)

	h, err := NewHolder("ops", nil, catalog.WithSearchPaths(dir))
	require.NoError(t, err)
	defer h.Stop()

	assert.Equal(t, filepath.Join(dir, "ops.yml"), h.Path())
}

func TestHolderRejectsBrokenInitialCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.yml")
	writeCatalog(t, path, "T:\n  view: Missing\n  item: row\n")

	_, err := NewHolder(path, nil)
	var missing *catalog.MissingReferenceError
	assert.ErrorAs(t, err, &missing)
}

func TestHolderReload(t *testing.T) {
	h, path := newHolder(t, oneView)

	writeCatalog(t, path, viewAndTable)
	require.NoError(t, h.Reload())

	cat := h.Get()
	assert.Equal(t, 2, cat.Len())
	tbl, ok := cat.Table("T")
	require.True(t, ok)
	v, _ := cat.View("V")
	assert.Same(t, v, tbl.View)
}

func TestHolderFailedReloadKeepsCatalog(t *testing.T) {
	h, path := newHolder(t, oneView)
	before := h.Get()

	writeCatalog(t, path, "T:\n  view: Missing\n  item: row\n")
	err := h.Reload()

	require.Error(t, err)
	assert.Same(t, before, h.Get())
}

func TestHolderOnFailure(t *testing.T) {
	h, path := newHolder(t, oneView)

	var failures []error
	h.OnFailure(func(err error) { failures = append(failures, err) })
	h.OnChange(func(*catalog.Catalog) { t.Error("OnChange called for a failed reload") })

	writeCatalog(t, path, "T:\n  view: Missing\n  item: row\n")
	require.Error(t, h.Reload())

	require.Len(t, failures, 1)
	var missing *catalog.MissingReferenceError
	assert.ErrorAs(t, failures[0], &missing)
}

func TestHolderOnChange(t *testing.T) {
	h, path := newHolder(t, oneView)

	var got []*catalog.Catalog
	h.OnChange(func(c *catalog.Catalog) { got = append(got, c) })

	writeCatalog(t, path, viewAndTable)
	require.NoError(t, h.Reload())

	require.Len(t, got, 1)
	assert.Same(t, h.Get(), got[0])
}

func TestHolderWatchReloadsOnWrite(t *testing.T) {
	h, path := newHolder(t, oneView)

	var mu sync.Mutex
	reloads := 0
	h.OnChange(func(*catalog.Catalog) {
		mu.Lock()
		reloads++
		mu.Unlock()
	})

	require.NoError(t, h.Watch())

	// Unrelated files in the same directory are ignored
	writeCatalog(t, filepath.Join(filepath.Dir(path), "other.yml"), oneView)
	writeCatalog(t, path, viewAndTable)

	assert.Eventually(t, func() bool {
		return h.Get().Len() == 2
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, reloads, 1)
}

func TestHolderStopIsIdempotent(t *testing.T) {
	h, _ := newHolder(t, oneView)
	require.NoError(t, h.Watch())

	h.Stop()
	assert.NotPanics(t, h.Stop)
}

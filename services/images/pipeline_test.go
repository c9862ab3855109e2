package images

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeConverter writes the source bytes to the destination, failing for
// any source whose contents appear in failOn.
type fakeConverter struct {
	mu     sync.Mutex
	failOn map[string]bool
	calls  int
}

func (f *fakeConverter) Convert(ctx context.Context, src, dst string, quality, maxSize int) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if f.failOn[string(data)] {
		return errors.New("conversion failed")
	}
	return os.WriteFile(dst, data, 0o644)
}

type fakeStore struct {
	mu        sync.Mutex
	calls     int
	urls      []string
	thumbnail string
	err       error
}

func (f *fakeStore) AppendImages(ctx context.Context, productID, vendorID primitive.ObjectID, urls []string, thumbnail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.urls = urls
	f.thumbnail = thumbnail
	return f.err
}

func newTestPipeline(t *testing.T, conv Converter, store Store) (*Pipeline, string) {
	t.Helper()
	root := t.TempDir() + "/"
	p := NewPipeline(conv, store)
	p.Root = func() (string, error) { return root, nil }
	p.TempDir = t.TempDir()
	return p, root
}

func testBatch(files map[string]string, thumbnail string) Batch {
	b := Batch{
		VendorID:  primitive.NewObjectID(),
		ProductID: primitive.NewObjectID(),
		Thumbnail: thumbnail,
	}
	for id, data := range files {
		b.Files = append(b.Files, File{Data: []byte(data), ID: id})
	}
	return b
}

func TestRunCommitsBatchWithThumbnail(t *testing.T) {
	conv := &fakeConverter{}
	store := &fakeStore{}
	p, root := newTestPipeline(t, conv, store)

	b := testBatch(map[string]string{"a": "aaa", "b": "bbb", "c": "ccc"}, "b")
	p.Run(context.Background(), b)

	require.Equal(t, 1, store.calls)
	assert.ElementsMatch(t, []string{
		TargetURL(b.VendorID, b.ProductID, "a"),
		TargetURL(b.VendorID, b.ProductID, "b"),
		TargetURL(b.VendorID, b.ProductID, "c"),
	}, store.urls)
	assert.Equal(t, TargetURL(b.VendorID, b.ProductID, "b"), store.thumbnail)

	for _, url := range store.urls {
		assert.FileExists(t, root+"srv"+url)
	}
}

func TestRunSkipsFailedFilesAndKeepsSiblings(t *testing.T) {
	conv := &fakeConverter{failOn: map[string]bool{"ccc": true}}
	store := &fakeStore{}
	p, root := newTestPipeline(t, conv, store)

	b := testBatch(map[string]string{"a": "aaa", "b": "bbb", "c": "ccc"}, "")
	p.Run(context.Background(), b)

	require.Equal(t, 1, store.calls)
	assert.ElementsMatch(t, []string{
		TargetURL(b.VendorID, b.ProductID, "a"),
		TargetURL(b.VendorID, b.ProductID, "b"),
	}, store.urls)
	assert.Empty(t, store.thumbnail)
	assert.NoFileExists(t, root+"srv"+TargetURL(b.VendorID, b.ProductID, "c"))
}

func TestRunOmitsThumbnailWhenItsConversionFails(t *testing.T) {
	conv := &fakeConverter{failOn: map[string]bool{"bbb": true}}
	store := &fakeStore{}
	p, _ := newTestPipeline(t, conv, store)

	b := testBatch(map[string]string{"a": "aaa", "b": "bbb"}, "b")
	p.Run(context.Background(), b)

	require.Equal(t, 1, store.calls)
	assert.ElementsMatch(t, []string{TargetURL(b.VendorID, b.ProductID, "a")}, store.urls)
	assert.Empty(t, store.thumbnail)
}

func TestRunEmptyBatchDoesNothing(t *testing.T) {
	conv := &fakeConverter{}
	store := &fakeStore{}
	p, _ := newTestPipeline(t, conv, store)

	p.Run(context.Background(), testBatch(nil, ""))

	assert.Zero(t, conv.calls)
	assert.Zero(t, store.calls)
}

func TestRunAllConversionsFailSkipsUpdate(t *testing.T) {
	conv := &fakeConverter{failOn: map[string]bool{"aaa": true, "bbb": true}}
	store := &fakeStore{}
	p, _ := newTestPipeline(t, conv, store)

	p.Run(context.Background(), testBatch(map[string]string{"a": "aaa", "b": "bbb"}, "a"))

	assert.Zero(t, store.calls)
}

func TestRunRollsBackFilesOnStoreFailure(t *testing.T) {
	conv := &fakeConverter{}
	store := &fakeStore{err: errors.New("update failed")}
	p, root := newTestPipeline(t, conv, store)

	b := testBatch(map[string]string{"a": "aaa", "b": "bbb"}, "")
	p.Run(context.Background(), b)

	require.Equal(t, 1, store.calls)
	assert.NoFileExists(t, root+"srv"+TargetURL(b.VendorID, b.ProductID, "a"))
	assert.NoFileExists(t, root+"srv"+TargetURL(b.VendorID, b.ProductID, "b"))
}

func TestRunCleansUpTempFiles(t *testing.T) {
	conv := &fakeConverter{failOn: map[string]bool{"ccc": true}}
	store := &fakeStore{}
	p, _ := newTestPipeline(t, conv, store)

	p.Run(context.Background(), testBatch(map[string]string{"a": "aaa", "b": "bbb", "c": "ccc"}, ""))

	entries, err := os.ReadDir(p.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunAbortsWhenRootUnavailable(t *testing.T) {
	conv := &fakeConverter{}
	store := &fakeStore{}
	p, _ := newTestPipeline(t, conv, store)
	p.Root = func() (string, error) { return "", errors.New("HOME_DIR not set") }

	p.Run(context.Background(), testBatch(map[string]string{"a": "aaa"}, ""))

	assert.Zero(t, conv.calls)
	assert.Zero(t, store.calls)
}

func TestTargetURL(t *testing.T) {
	vendorID, err := primitive.ObjectIDFromHex("64a000000000000000000001")
	require.NoError(t, err)
	productID, err := primitive.ObjectIDFromHex("64a000000000000000000002")
	require.NoError(t, err)

	url := TargetURL(vendorID, productID, "front")
	assert.Equal(t, "/vendor-64a000000000000000000001/product-64a000000000000000000002/front.avif", url)
}

func TestStageFileCreatesTargetDirectories(t *testing.T) {
	tempDir := t.TempDir()
	root := t.TempDir() + "/"

	staged, err := stageFile(tempDir, root, primitive.NewObjectID(), primitive.NewObjectID(), File{Data: []byte("img"), ID: "a"})
	require.NoError(t, err)

	assert.FileExists(t, staged.TempPath)
	assert.DirExists(t, filepath.Dir(staged.TargetPath()))

	data, err := os.ReadFile(staged.TempPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)
}

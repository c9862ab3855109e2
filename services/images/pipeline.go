package images

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	convertQuality = 50
	convertMaxSize = 1000
	convertTimeout = 2 * time.Minute
	maxConversions = 4
	storageRootVar = "HOME_DIR"
)

// Store commits one image batch to the product record. The update must be
// a single conditional write filtered on both product and owning vendor.
type Store interface {
	AppendImages(ctx context.Context, productID, vendorID primitive.ObjectID, urls []string, thumbnail string) error
}

// Batch is an accepted upload: the ordered files, the owner, and an
// optional thumbnail referencing one of the client identifiers.
type Batch struct {
	VendorID  primitive.ObjectID
	ProductID primitive.ObjectID
	Files     []File
	Thumbnail string
}

type outcome struct {
	clientID string
	url      string
	path     string
	ok       bool
}

// Pipeline converts accepted upload batches in the background and commits
// each batch with a single conditional database update. Conversions are
// blocking subprocess calls, so they run on a bounded pool sized
// independently of HTTP concurrency.
type Pipeline struct {
	conv  Converter
	store Store
	sem   *semaphore.Weighted

	// Root returns the storage root for a batch. It is consulted fresh
	// per batch; absence is fatal to that batch only.
	Root func() (string, error)

	// TempDir is where uploads are staged. Defaults to the OS temp dir.
	TempDir string

	timeout time.Duration
}

func NewPipeline(conv Converter, store Store) *Pipeline {
	return &Pipeline{
		conv:    conv,
		store:   store,
		sem:     semaphore.NewWeighted(maxConversions),
		Root:    envRoot,
		TempDir: os.TempDir(),
		timeout: convertTimeout,
	}
}

func envRoot() (string, error) {
	root := os.Getenv(storageRootVar)
	if root == "" {
		return "", errors.New(storageRootVar + " not set")
	}
	return root, nil
}

// Run processes one batch to a terminal state: committed (database
// updated, converted files in place) or rolled back (database unchanged,
// converted files deleted). It is called on a detached goroutine; the
// client already received its 202 and is never told the outcome.
func (p *Pipeline) Run(ctx context.Context, b Batch) {
	if len(b.Files) == 0 {
		return
	}

	root, err := p.Root()
	if err != nil {
		zap.L().Error("Image batch aborted",
			zap.String("product", b.ProductID.Hex()),
			zap.Error(err),
		)
		return
	}

	outcomes := make(chan outcome, len(b.Files))
	var wg sync.WaitGroup

	for _, f := range b.Files {
		staged, err := stageFile(p.TempDir, root, b.VendorID, b.ProductID, f)
		if err != nil {
			// Fatal for this file only; siblings proceed.
			zap.L().Warn("Failed to stage upload",
				zap.String("product", b.ProductID.Hex()),
				zap.String("id", f.ID),
				zap.Error(err),
			)
			outcomes <- outcome{clientID: f.ID}
			continue
		}

		wg.Add(1)
		go func(staged StagedFile) {
			defer wg.Done()
			// The temp copy is deleted only once this file's own
			// conversion has finished with it.
			defer os.Remove(staged.TempPath)

			outcomes <- p.convert(ctx, staged)
		}(staged)
	}

	wg.Wait()
	close(outcomes)

	urls, paths, succeeded := collect(outcomes)
	if len(urls) == 0 {
		return
	}

	thumbnail := ""
	if b.Thumbnail != "" && succeeded[b.Thumbnail] {
		thumbnail = TargetURL(b.VendorID, b.ProductID, b.Thumbnail)
	}

	if err := p.store.AppendImages(ctx, b.ProductID, b.VendorID, urls, thumbnail); err != nil {
		zap.L().Error("Image batch rolled back",
			zap.String("product", b.ProductID.Hex()),
			zap.Int("converted", len(paths)),
			zap.Error(err),
		)
		DeleteFiles(paths)
		return
	}

	zap.L().Info("Image batch committed",
		zap.String("product", b.ProductID.Hex()),
		zap.Int("images", len(urls)),
		zap.Bool("thumbnail", thumbnail != ""),
	)
}

func (p *Pipeline) convert(ctx context.Context, staged StagedFile) outcome {
	failed := outcome{clientID: staged.ClientID}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return failed
	}
	defer p.sem.Release(1)

	convertCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.conv.Convert(convertCtx, staged.TempPath, staged.TargetPath(), convertQuality, convertMaxSize); err != nil {
		zap.L().Warn("Image conversion failed",
			zap.String("url", staged.URL),
			zap.Error(err),
		)
		return failed
	}

	return outcome{
		clientID: staged.ClientID,
		url:      staged.URL,
		path:     staged.TargetPath(),
		ok:       true,
	}
}

// collect joins all per-file outcomes, keeping only the successes.
// Failures are dropped here; they were already logged and the client has
// no channel to hear about them.
func collect(outcomes <-chan outcome) (urls, paths []string, succeeded map[string]bool) {
	succeeded = make(map[string]bool)
	for o := range outcomes {
		if !o.ok {
			continue
		}
		urls = append(urls, o.url)
		paths = append(paths, o.path)
		succeeded[o.clientID] = true
	}
	return urls, paths, succeeded
}

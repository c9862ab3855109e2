package images

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File is one uploaded image paired with its client-supplied identifier.
// Identifiers are not required to be unique or non-empty; a duplicate
// simply produces a colliding target path.
type File struct {
	Data []byte
	ID   string
}

// StagedFile holds an upload persisted to a temporary path together with
// its derived destination. The temp copy lives only until this file's
// conversion finishes.
type StagedFile struct {
	TempPath string
	BaseDir  string
	URL      string
	ClientID string
}

// TargetPath is the absolute destination of the converted file.
func (s StagedFile) TargetPath() string {
	return s.BaseDir + s.URL
}

// TargetURL derives the stable root-relative URL for an image of the
// given product.
func TargetURL(vendorID, productID primitive.ObjectID, clientID string) string {
	return fmt.Sprintf("/vendor-%s/product-%s/%s.avif", vendorID.Hex(), productID.Hex(), clientID)
}

// stageFile writes the upload to a collision-free temp path and eagerly
// creates the destination's parent directories so the converter can write
// straight to the final location.
func stageFile(tempDir, root string, vendorID, productID primitive.ObjectID, f File) (StagedFile, error) {
	staged := StagedFile{
		TempPath: filepath.Join(tempDir, uuid.New().String()+".upload"),
		BaseDir:  root + "srv",
		URL:      TargetURL(vendorID, productID, f.ID),
		ClientID: f.ID,
	}

	if err := os.WriteFile(staged.TempPath, f.Data, 0o644); err != nil {
		return StagedFile{}, fmt.Errorf("persist upload: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(staged.TargetPath()), 0o755); err != nil {
		os.Remove(staged.TempPath)
		return StagedFile{}, fmt.Errorf("create directory tree: %w", err)
	}

	return staged, nil
}

package imageprocessor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/internal/pkg/constants"
)

const (
	ThumbnailWidth = 400
	MaxImageWidth  = 1920
)

// Process normalizes an uploaded organization image on disk and fills the
// dimension and thumbnail fields on the model. The original is downscaled
// when wider than MaxImageWidth so gallery uploads stay bounded.
func Process(image *models.Image) error {
	img, err := imaging.Open(image.FilePath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open image %s: %w", image.FilePath, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxImageWidth {
		img = imaging.Resize(img, MaxImageWidth, 0, imaging.Lanczos)
		if err := imaging.Save(img, image.FilePath); err != nil {
			return fmt.Errorf("save resized image: %w", err)
		}
		bounds = img.Bounds()
	}
	image.Width = bounds.Dx()
	image.Height = bounds.Dy()

	thumb := imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	thumbPath := thumbnailPath(image.FilePath)
	if err := os.MkdirAll(filepath.Dir(thumbPath), 0o755); err != nil {
		return fmt.Errorf("create thumbnail dir: %w", err)
	}
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return fmt.Errorf("save thumbnail: %w", err)
	}
	image.ThumbnailPath = thumbPath

	if info, err := os.Stat(image.FilePath); err == nil {
		image.FileSize = info.Size()
	}
	return nil
}

// UploadDir returns the on-disk directory for an organization's images.
func UploadDir(organizationID uint) string {
	return filepath.Join(constants.UploadsPath, "organizations", fmt.Sprint(organizationID))
}

func thumbnailPath(originalPath string) string {
	dir := filepath.Join(filepath.Dir(originalPath), "thumbs")
	name := filepath.Base(originalPath)
	ext := filepath.Ext(name)
	return filepath.Join(dir, strings.TrimSuffix(name, ext)+"_thumb"+ext)
}

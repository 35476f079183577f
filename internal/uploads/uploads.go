package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
var videoExts = map[string]bool{".mp4": true, ".webm": true, ".mov": true}

// SaveImage stores the multipart file from field under dir and returns the
// path clients use to fetch it (relative to the server root). Returns
// ("", nil) when the field is absent: images are optional on most forms.
func SaveImage(c *fiber.Ctx, field, dir string) (string, error) {
	return save(c, field, dir, imageExts, "image")
}

// SaveVideo is SaveImage for project videos.
func SaveVideo(c *fiber.Ctx, field, dir string) (string, error) {
	return save(c, field, dir, videoExts, "video")
}

func save(c *fiber.Ctx, field, dir string, allowed map[string]bool, kind string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Missing file field, leave the path empty
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowed[ext] {
		return "", fmt.Errorf("unsupported %s type: %s", kind, ext)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create upload directory: %w", err)
	}

	name := uuid.NewString() + ext
	if err := c.SaveFile(fileHeader, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("could not save %s: %w", kind, err)
	}

	return "uploads/" + name, nil
}

// Delete removes a previously stored file. Missing files are not an error;
// records may outlive their assets.
func Delete(storedPath, dir string) {
	if storedPath == "" {
		return
	}
	name := filepath.Base(storedPath)
	_ = os.Remove(filepath.Join(dir, name))
}

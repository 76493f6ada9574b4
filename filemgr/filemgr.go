package filemgr

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"riviera/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// Folder names the static subdirectory a picture lands in.
type Folder string

const (
	FolderAvatars  Folder = "avatars"
	FolderBranding Folder = "branding"
	FolderMenu     Folder = "menupic"
	FolderEvents   Folder = "eventpic"
	FolderSections Folder = "sectionpic"
)

const (
	staticRoot  = "./static"
	maxWidth    = 1600
	maxHeight   = 1200
	jpegQuality = 82
	maxFormSize = 10 << 20 // 10MB
)

// SaveImageForm reads the named multipart field, validates it, re-encodes it
// (fit within maxWidth x maxHeight, JPEG) and writes it under the folder.
// Returns the public URL and the generated id.
func SaveImageForm(r *http.Request, field string, folder Folder) (url string, id string, err error) {
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		return "", "", fmt.Errorf("invalid form data")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", fmt.Errorf("%s file missing", field)
	}
	defer file.Close()

	return SaveImage(file, header, folder)
}

// SaveImage re-encodes and stores an already-opened upload.
func SaveImage(file multipart.File, header *multipart.FileHeader, folder Folder) (string, string, error) {
	if !utils.SupportedImageTypes[header.Header.Get("Content-Type")] {
		return "", "", fmt.Errorf("unsupported image type")
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("could not decode image")
	}

	// Downscale only; small images are stored as-is.
	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	dir := filepath.Join(staticRoot, string(folder))
	if err := utils.EnsureDir(dir); err != nil {
		return "", "", fmt.Errorf("could not create upload dir")
	}

	id := uuid.New().String()
	filename := id + ".jpg"
	path := filepath.Join(dir, filename)

	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", "", fmt.Errorf("could not save image")
	}

	return "/static/" + string(folder) + "/" + filename, id, nil
}

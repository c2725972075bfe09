package index

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Thumbnailer renders small JPEG previews into the data directory, named by
// file ID. Generation is best-effort; a failure never affects indexing.
type Thumbnailer struct {
	dir    string
	maxDim int
}

// NewThumbnailer creates a thumbnailer writing into dir.
func NewThumbnailer(dir string, maxDim int) *Thumbnailer {
	return &Thumbnailer{dir: dir, maxDim: maxDim}
}

// Generate writes a thumbnail for the decoded image and returns its path, or
// "" on failure. An existing thumbnail is reused.
func (t *Thumbnailer) Generate(fileID string, src image.Image) string {
	if t == nil || src == nil {
		return ""
	}

	thumbPath := filepath.Join(t.dir, fileID+".jpg")
	if _, err := os.Stat(thumbPath); err == nil {
		return thumbPath
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return ""
	}

	scale := 1.0
	if w > h {
		scale = float64(t.maxDim) / float64(w)
	} else {
		scale = float64(t.maxDim) / float64(h)
	}
	if scale > 1 {
		scale = 1
	}

	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	f, err := os.Create(thumbPath)
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	if err := jpeg.Encode(f, dst, &jpeg.Options{Quality: 80}); err != nil {
		_ = os.Remove(thumbPath)
		return ""
	}
	return thumbPath
}

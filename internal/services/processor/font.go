package processor

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontSource is one strategy in the fallback chain: it either yields a usable
// face at the requested size or a reason to try the next source.
type fontSource struct {
	name string
	load func(size int) (font.Face, error)
}

// FontResolver resolves faces through an ordered chain of sources: the
// configured face, common system faces, CJK-capable system faces, the
// embedded Go Regular, and finally the built-in bitmap face. Resolution
// never fails; the bitmap face ignores the size request.
type FontResolver struct {
	sources []fontSource
	logger  *zap.Logger

	mu    sync.Mutex
	faces map[int]font.Face
}

var systemFaces = []string{
	"arial.ttf",
	"/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
	"/usr/share/fonts/truetype/msttcorefonts/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

var cjkFaces = []string{
	"C:\\Windows\\Fonts\\simsun.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
}

func NewFontResolver(primaryPath, cjkPath string, logger *zap.Logger) *FontResolver {
	r := &FontResolver{logger: logger, faces: make(map[int]font.Face)}

	if primaryPath != "" {
		r.sources = append(r.sources, fileSource(primaryPath))
	}
	for _, p := range systemFaces {
		r.sources = append(r.sources, fileSource(p))
	}
	if cjkPath != "" {
		r.sources = append(r.sources, fileSource(cjkPath))
	}
	for _, p := range cjkFaces {
		r.sources = append(r.sources, fileSource(p))
	}
	r.sources = append(r.sources, fontSource{
		name: "go-regular",
		load: func(size int) (font.Face, error) {
			fnt, err := opentype.Parse(goregular.TTF)
			if err != nil {
				return nil, err
			}
			return newFace(fnt, size)
		},
	})

	return r
}

// Face returns a face for the requested size. Faces are cached per size;
// renders may run in parallel.
func (r *FontResolver) Face(size int) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.faces[size]; ok {
		return f
	}

	face := r.resolve(size)
	r.faces[size] = face
	return face
}

func (r *FontResolver) resolve(size int) font.Face {
	for _, src := range r.sources {
		face, err := src.load(size)
		if err == nil {
			return face
		}
		if !os.IsNotExist(err) {
			r.logger.Debug("font source unavailable",
				zap.String("source", src.name),
				zap.Error(err))
		}
	}
	r.logger.Warn("no scalable font available, using built-in bitmap face",
		zap.Int("requested_size", size))
	return basicfont.Face7x13
}

func fileSource(path string) fontSource {
	return fontSource{
		name: path,
		load: func(size int) (font.Face, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			fnt, err := opentype.Parse(data)
			if err != nil {
				// .ttc files parse as collections
				coll, cerr := opentype.ParseCollection(data)
				if cerr != nil {
					return nil, fmt.Errorf("parse %s: %w", path, err)
				}
				fnt, err = coll.Font(0)
				if err != nil {
					return nil, fmt.Errorf("collection %s: %w", path, err)
				}
			}
			return newFace(fnt, size)
		},
	}
}

func newFace(fnt *opentype.Font, size int) (font.Face, error) {
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

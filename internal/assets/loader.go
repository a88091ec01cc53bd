// Package assets loads named text-art images and spritesheets.
//
// Scenes queue assets by key during preload and call Start once; every
// queued file is read and sliced into frames, and all failures are
// reported together.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

//go:embed data/*.txt
var embedded embed.FS

// Embedded returns the built-in asset files rooted at the data directory.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory exists
	}
	return sub
}

// SpritesheetConfig describes how a sheet is cut into frames, in cells.
type SpritesheetConfig struct {
	FrameWidth  int
	FrameHeight int
}

// Texture is a loaded asset. Images have a single frame covering the whole image.
type Texture struct {
	Key    string
	Frames []Frame
}

// Frame returns frame i, or false when out of range.
func (t *Texture) Frame(i int) (Frame, bool) {
	if t == nil || i < 0 || i >= len(t.Frames) {
		return Frame{}, false
	}
	return t.Frames[i], true
}

type request struct {
	key   string
	path  string
	sheet *SpritesheetConfig
}

// Loader queues and loads assets from a file system. Textures are cached by
// key so a scene that is restarted does not read its files again.
type Loader struct {
	fsys     fs.FS
	mu       sync.RWMutex
	queue    []request
	textures map[string]*Texture
}

// NewLoader creates a loader reading from fsys. A nil fsys uses the embedded assets.
func NewLoader(fsys fs.FS) *Loader {
	if fsys == nil {
		fsys = Embedded()
	}
	return &Loader{
		fsys:     fsys,
		textures: make(map[string]*Texture),
	}
}

// Image queues a single-frame image.
func (l *Loader) Image(key, path string) {
	l.enqueue(request{key: key, path: path})
}

// Spritesheet queues an image cut into equally sized frames, row by row.
func (l *Loader) Spritesheet(key, path string, cfg SpritesheetConfig) {
	l.enqueue(request{key: key, path: path, sheet: &cfg})
}

func (l *Loader) enqueue(r request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, r)
}

// Start loads everything queued since the last call.
func (l *Loader) Start() error {
	l.mu.Lock()
	queue := l.queue
	l.queue = nil
	l.mu.Unlock()

	var errs []error
	for _, r := range queue {
		if l.Exists(r.key) {
			continue
		}
		tex, err := l.load(r)
		if err != nil {
			errs = append(errs, fmt.Errorf("assets: %s (%s): %w", r.key, r.path, err))
			continue
		}
		l.mu.Lock()
		l.textures[r.key] = tex
		l.mu.Unlock()
	}
	return errors.Join(errs...)
}

func (l *Loader) load(r request) (*Texture, error) {
	if r.key == "" {
		return nil, errors.New("empty key")
	}
	data, err := fs.ReadFile(l.fsys, r.path)
	if err != nil {
		return nil, err
	}
	img, err := parseImage(data)
	if err != nil {
		return nil, err
	}

	tex := &Texture{Key: r.key}
	if r.sheet == nil {
		tex.Frames = []Frame{{img: img, W: img.w, H: img.h}}
		return tex, nil
	}

	fw, fh := r.sheet.FrameWidth, r.sheet.FrameHeight
	if fw <= 0 || fh <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", fw, fh)
	}
	if img.w < fw || img.h < fh {
		return nil, fmt.Errorf("image %dx%d smaller than frame %dx%d", img.w, img.h, fw, fh)
	}
	for y := 0; y+fh <= img.h; y += fh {
		for x := 0; x+fw <= img.w; x += fw {
			tex.Frames = append(tex.Frames, Frame{img: img, X: x, Y: y, W: fw, H: fh})
		}
	}
	return tex, nil
}

// Exists reports whether key has been loaded.
func (l *Loader) Exists(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.textures[key]
	return ok
}

// Texture returns the loaded texture for key.
func (l *Loader) Texture(key string) (*Texture, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tex, ok := l.textures[key]
	if !ok {
		return nil, fmt.Errorf("assets: texture %q not loaded", key)
	}
	return tex, nil
}

// Frame returns frame i of texture key.
func (l *Loader) Frame(key string, i int) (Frame, error) {
	tex, err := l.Texture(key)
	if err != nil {
		return Frame{}, err
	}
	f, ok := tex.Frame(i)
	if !ok {
		return Frame{}, fmt.Errorf("assets: texture %q has no frame %d", key, i)
	}
	return f, nil
}

// Package assets owns the texture atlas and sound tables a game registers at
// startup. Registration is once-only per logical name; nothing is evicted.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // PNG decoder for texture files
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	xdraw "golang.org/x/image/draw"
)

// Atlas layout. Each bank is a square image; bank 0 packs 16x16 textures and
// bank 1 packs 8x8 textures.
const (
	AtlasSize = 256
	Bank16    = 0
	Bank8     = 1
	BankCount = 2
)

var (
	// ErrUnsupportedTextureSize is returned for texture sizes other than 8 and 16.
	// Callers treat it as a fatal configuration error.
	ErrUnsupportedTextureSize = errors.New("assets: unsupported texture size")

	// ErrAtlasFull is returned when a bank has no free slot left.
	ErrAtlasFull = errors.New("assets: texture bank is full")
)

// Slot is the packed location of a texture inside an atlas bank.
type Slot struct {
	Bank int
	U, V int // Pixel offset of the top-left corner inside the bank
	Size int // Edge length in pixels
}

// Rect returns the slot's pixel rectangle inside its bank.
func (s Slot) Rect() image.Rectangle {
	return image.Rect(s.U, s.V, s.U+s.Size, s.V+s.Size)
}

// TextureSpec describes one texture registration.
type TextureSpec struct {
	Name     string      // Logical name, unique per size
	Size     int         // 8 or 16
	Path     string      // Image file, relative to the registry dir unless absolute
	ColorKey color.Color // Pixels of this color become transparent; nil keeps all pixels
}

type textureKey struct {
	name string
	size int
}

// TextureRegistry packs textures into fixed-size atlas banks.
// It is not safe for concurrent use; games register from their own tick goroutine.
type TextureRegistry struct {
	dir      string
	logger   *log.Logger
	banks    [BankCount]*image.RGBA
	counts   [BankCount]int
	versions [BankCount]int
	slots    map[textureKey]Slot
}

// NewTextureRegistry creates an empty registry resolving relative paths against dir.
// A nil logger falls back to the default charmbracelet logger.
func NewTextureRegistry(dir string, logger *log.Logger) *TextureRegistry {
	if logger == nil {
		logger = log.Default()
	}
	r := &TextureRegistry{
		dir:    dir,
		logger: logger,
		slots:  make(map[textureKey]Slot),
	}
	for i := range r.banks {
		r.banks[i] = image.NewRGBA(image.Rect(0, 0, AtlasSize, AtlasSize))
	}
	return r
}

// BankForSize maps a texture size to its bank.
func BankForSize(size int) (int, error) {
	switch size {
	case 16:
		return Bank16, nil
	case 8:
		return Bank8, nil
	default:
		return 0, fmt.Errorf("%w: %d (want 8 or 16)", ErrUnsupportedTextureSize, size)
	}
}

// Register packs the texture into its bank and returns its slot. Registering a
// name that already exists at the same size returns the existing slot without
// loading anything. A missing or unreadable file is replaced by the placeholder.
func (r *TextureRegistry) Register(spec TextureSpec) (Slot, error) {
	bank, err := BankForSize(spec.Size)
	if err != nil {
		return Slot{}, err
	}

	key := textureKey{name: spec.Name, size: spec.Size}
	if slot, ok := r.slots[key]; ok {
		return slot, nil
	}

	perColumn := AtlasSize / spec.Size
	n := r.counts[bank]
	if n >= perColumn*perColumn {
		return Slot{}, fmt.Errorf("%w: bank %d holds %d textures", ErrAtlasFull, bank, n)
	}

	slot := Slot{
		Bank: bank,
		U:    n / perColumn * spec.Size,
		V:    n % perColumn * spec.Size,
		Size: spec.Size,
	}

	src := r.load(spec)
	r.pack(slot, src, spec.ColorKey)

	r.counts[bank]++
	r.versions[bank]++
	r.slots[key] = slot

	r.logger.Debug("texture registered", "name", spec.Name, "bank", slot.Bank, "u", slot.U, "v", slot.V)
	return slot, nil
}

// Lookup returns the slot of a registered texture.
func (r *TextureRegistry) Lookup(name string, size int) (Slot, bool) {
	slot, ok := r.slots[textureKey{name: name, size: size}]
	return slot, ok
}

// Count returns the number of textures packed into a bank.
func (r *TextureRegistry) Count(bank int) int {
	if bank < 0 || bank >= BankCount {
		return 0
	}
	return r.counts[bank]
}

// Bank returns the backing image of a bank. Callers must not modify it.
func (r *TextureRegistry) Bank(bank int) *image.RGBA {
	if bank < 0 || bank >= BankCount {
		return nil
	}
	return r.banks[bank]
}

// Version increases every time a bank's pixels change, so platforms can
// re-upload a bank only when needed.
func (r *TextureRegistry) Version(bank int) int {
	if bank < 0 || bank >= BankCount {
		return 0
	}
	return r.versions[bank]
}

// load decodes the texture file, or returns the placeholder when it cannot.
func (r *TextureRegistry) load(spec TextureSpec) image.Image {
	path := spec.Path
	if path == "" {
		r.logger.Warn("texture has no path, using placeholder", "name", spec.Name)
		return Placeholder(spec.Size)
	}
	if !filepath.IsAbs(path) && r.dir != "" {
		path = filepath.Join(r.dir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		r.logger.Warn("texture missing, using placeholder", "name", spec.Name, "path", path)
		return Placeholder(spec.Size)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		r.logger.Warn("texture unreadable, using placeholder", "name", spec.Name, "path", path, "error", err)
		return Placeholder(spec.Size)
	}
	return img
}

// pack copies src into the slot, scaling it when its size does not match.
func (r *TextureRegistry) pack(slot Slot, src image.Image, key color.Color) {
	dst := r.banks[slot.Bank]
	rect := slot.Rect()
	sb := src.Bounds()

	if sb.Dx() == slot.Size && sb.Dy() == slot.Size {
		xdraw.Draw(dst, rect, src, sb.Min, xdraw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(dst, rect, src, sb, xdraw.Src, nil)
	}

	if key == nil {
		return
	}
	kr, kg, kb, _ := key.RGBA()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			pr, pg, pb, _ := dst.At(x, y).RGBA()
			if pr == kr && pg == kg && pb == kb {
				dst.SetRGBA(x, y, color.RGBA{})
			}
		}
	}
}

// Placeholder returns the built-in texture used when a file cannot be loaded:
// a magenta and black checkerboard framed in white.
func Placeholder(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	magenta := color.RGBA{R: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	half := size / 2
	if half == 0 {
		half = 1
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			switch {
			case x == 0 || y == 0 || x == size-1 || y == size-1:
				img.SetRGBA(x, y, white)
			case (x/half+y/half)%2 == 0:
				img.SetRGBA(x, y, magenta)
			default:
				img.SetRGBA(x, y, black)
			}
		}
	}
	return img
}

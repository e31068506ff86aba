package texpack

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// Surface is the atlas pixel buffer owned by a TexturePacker.
//
// The Surface handle stays the same for the lifetime of its packer, but
// the underlying buffer is replaced when the atlas grows or shrinks. Do not
// cache Width, Height or the result of Image across Add calls.
//
// Surface implements gpucontext.Texture so it can be handed to code that
// only needs the dimensions.
type Surface struct {
	img    *image.RGBA
	smooth bool

	// dirty is the region written since the last upload.
	dirty image.Rectangle
	// resized is set when the buffer was replaced since the last upload.
	resized bool
}

var _ gpucontext.Texture = (*Surface)(nil)

func newSurface(size Size) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.img.Rect.Dx()
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.img.Rect.Dy()
}

// Size returns the surface dimensions.
func (s *Surface) Size() Size {
	return Size{Width: s.Width(), Height: s.Height()}
}

// Image returns the current pixel buffer. The buffer is replaced on growth.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Smooth returns the bilinear filtering hint.
func (s *Surface) Smooth() bool {
	return s.smooth
}

// SamplerDescriptor returns the sampler a renderer should use for this
// surface: linear filtering when smooth, nearest otherwise.
func (s *Surface) SamplerDescriptor() gputypes.SamplerDescriptor {
	if s.smooth {
		return gputypes.LinearSamplerDescriptor()
	}
	return gputypes.DefaultSamplerDescriptor()
}

// TextureDescriptor describes a GPU texture able to hold the surface.
func (s *Surface) TextureDescriptor(label string) gputypes.TextureDescriptor {
	return gputypes.TextureDescriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              uint32(s.Width()),
			Height:             uint32(s.Height()),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	}
}

// UV returns the normalized texture coordinates of r against the current
// surface dimensions.
func (s *Surface) UV(r Rect) (u0, v0, u1, v1 float32) {
	w, h := float32(s.Width()), float32(s.Height())
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}
	return float32(r.X) / w, float32(r.Y) / h,
		float32(r.X+r.Width) / w, float32(r.Y+r.Height) / h
}

// DirtyRect returns the region written since the last Upload or Flush.
func (s *Surface) DirtyRect() image.Rectangle {
	return s.dirty
}

// Upload creates a GPU texture holding the whole surface and clears the
// dirty state.
func (s *Surface) Upload(creator gpucontext.TextureCreator) (gpucontext.Texture, error) {
	if creator == nil {
		return nil, ErrNilCreator
	}
	tex, err := creator.NewTextureFromRGBA(s.Width(), s.Height(), s.img.Pix)
	if err != nil {
		return nil, fmt.Errorf("texpack: upload %dx%d surface: %w", s.Width(), s.Height(), err)
	}
	s.dirty = image.Rectangle{}
	s.resized = false
	return tex, nil
}

// Flush uploads the dirty region to a texture previously created by
// Upload. It returns ErrSurfaceResized if the atlas changed size in the
// meantime.
func (s *Surface) Flush(updater gpucontext.TextureRegionUpdater) error {
	if updater == nil {
		return ErrNilUpdater
	}
	if s.resized {
		return ErrSurfaceResized
	}
	if s.dirty.Empty() {
		return nil
	}

	r := s.dirty
	rowBytes := r.Dx() * 4
	data := make([]byte, 0, rowBytes*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := s.img.PixOffset(r.Min.X, y)
		data = append(data, s.img.Pix[off:off+rowBytes]...)
	}

	if err := updater.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), data); err != nil {
		return fmt.Errorf("texpack: flush region %v: %w", r, err)
	}
	s.dirty = image.Rectangle{}
	return nil
}

// EncodePNG writes the surface as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// SavePNG saves the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := s.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// blit copies img into the surface with its top-left corner at (x, y).
func (s *Surface) blit(img image.Image, x, y int) {
	b := img.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(s.img, r, img, b.Min, draw.Src)
	s.dirty = s.dirty.Union(r.Intersect(s.img.Rect))
}

// resize replaces the buffer with a zero-filled one of the given size and
// copies the old content anchored at (0, 0), cropping if it shrinks.
func (s *Surface) resize(size Size) {
	if size == s.Size() {
		return
	}
	next := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(next, next.Rect, s.img, image.Point{}, draw.Src)
	s.img = next
	s.dirty = next.Rect
	s.resized = true
}

// reset replaces the buffer with a blank one of the given size.
func (s *Surface) reset(size Size) {
	s.img = image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	s.dirty = image.Rectangle{}
	s.resized = true
}

// cloneRGBA copies img into a new RGBA buffer whose bounds start at (0, 0).
func cloneRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

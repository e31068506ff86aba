package texpack

import "image"

// NodeID identifies a packed image. IDs are dense and start at 0.
type NodeID int

// PackFailure is returned by Add and AddOwn when an image is rejected or
// does not fit.
const PackFailure NodeID = -1

// Packer places images into a shared atlas surface.
//
// TexturePacker and SortingTexturePacker both implement Packer and can be
// used interchangeably.
type Packer interface {
	// Add places a copy of img's pixels in the atlas and returns its id,
	// or PackFailure.
	Add(img image.Image) NodeID

	// AddOwn is like Add but takes ownership of img. The caller must not
	// modify img afterwards.
	AddOwn(img *image.RGBA) NodeID

	// Clear discards every packed image and resets ids to 0.
	Clear()

	// Empty reports whether nothing has been added since the last Clear.
	Empty() bool

	// ImageRect returns the rect of a packed image, or the zero Rect when
	// id is unknown.
	ImageRect(id NodeID) Rect

	// Texture returns the atlas surface. The handle is stable but its
	// dimensions change when the atlas grows.
	Texture() *Surface

	// SetSmooth sets the bilinear filtering hint of the surface.
	SetSmooth(smooth bool)

	// IsSmooth returns the bilinear filtering hint of the surface.
	IsSmooth() bool
}

var (
	_ Packer = (*TexturePacker)(nil)
	_ Packer = (*SortingTexturePacker)(nil)
)

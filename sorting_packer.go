package texpack

import "image"

// queuedImage is an image waiting for Pack.
type queuedImage struct {
	img   *image.RGBA
	local NodeID
}

// SortingTexturePacker buffers images and forwards them to an inner
// Packer in size order when Pack is called. Packing large images first
// usually gives a denser atlas.
//
// Add and AddOwn return local ids immediately. ImageRect resolves a local
// id to the inner packer's rect once the image has been packed; before
// that it returns the zero Rect.
//
// SortingTexturePacker is not safe for concurrent use.
type SortingTexturePacker struct {
	inner   Packer
	less    SortFunc
	queue   []queuedImage
	mapping []NodeID // local id -> inner id, PackFailure while unplaced
}

// NewSortingTexturePacker creates a sorting packer. Without options it
// wraps a new TexturePacker and sorts by ByPerimeter.
func NewSortingTexturePacker(opts ...SortingOption) *SortingTexturePacker {
	o := sortingOptions{less: ByPerimeter}
	for _, opt := range opts {
		opt(&o)
	}
	if o.inner == nil {
		o.inner = NewTexturePacker()
	}
	return &SortingTexturePacker{
		inner: o.inner,
		less:  o.less,
	}
}

// Add queues a copy of img and returns its local id.
func (p *SortingTexturePacker) Add(img image.Image) NodeID {
	if img == nil {
		return p.enqueue(&image.RGBA{})
	}
	return p.enqueue(cloneRGBA(img))
}

// AddOwn queues img without copying it and returns its local id.
func (p *SortingTexturePacker) AddOwn(img *image.RGBA) NodeID {
	if img == nil {
		img = &image.RGBA{}
	}
	return p.enqueue(img)
}

func (p *SortingTexturePacker) enqueue(img *image.RGBA) NodeID {
	local := NodeID(len(p.mapping))
	p.queue = append(p.queue, queuedImage{img: img, local: local})
	p.mapping = append(p.mapping, PackFailure)
	return local
}

// Pack sorts the images queued since the previous Pack and forwards them
// to the inner packer. It returns the number of images that could not be
// placed.
func (p *SortingTexturePacker) Pack() int {
	if len(p.queue) == 0 {
		return 0
	}

	stableSort(p.queue, p.less)

	failed := 0
	for _, q := range p.queue {
		id := p.inner.AddOwn(q.img)
		if id == PackFailure {
			failed++
		}
		p.mapping[q.local] = id
	}
	Logger().Debug("texpack: packed queued images",
		"count", len(p.queue), "failed", failed)

	clear(p.queue)
	p.queue = p.queue[:0]
	return failed
}

// ImageRect returns the rect of the image with the given local id, or the
// zero Rect if the id is unknown or not packed yet.
func (p *SortingTexturePacker) ImageRect(local NodeID) Rect {
	if local < 0 || int(local) >= len(p.mapping) {
		return Rect{}
	}
	id := p.mapping[local]
	if id == PackFailure {
		return Rect{}
	}
	return p.inner.ImageRect(id)
}

// Clear drops queued images, the id mapping and the inner packer content.
func (p *SortingTexturePacker) Clear() {
	p.queue = nil
	p.mapping = nil
	p.inner.Clear()
}

// Empty reports whether nothing is queued and the inner packer is empty.
func (p *SortingTexturePacker) Empty() bool {
	return len(p.queue) == 0 && p.inner.Empty()
}

// Pending returns the number of images waiting for Pack.
func (p *SortingTexturePacker) Pending() int {
	return len(p.queue)
}

// Inner returns the wrapped packer.
func (p *SortingTexturePacker) Inner() Packer {
	return p.inner
}

// Texture returns the inner packer's surface.
func (p *SortingTexturePacker) Texture() *Surface {
	return p.inner.Texture()
}

// SetSmooth sets the bilinear filtering hint of the inner packer.
func (p *SortingTexturePacker) SetSmooth(smooth bool) {
	p.inner.SetSmooth(smooth)
}

// IsSmooth returns the bilinear filtering hint of the inner packer.
func (p *SortingTexturePacker) IsSmooth() bool {
	return p.inner.IsSmooth()
}

package texpack

import "image"

// TexturePacker packs images into a single growable atlas surface using a
// guillotine-split binary tree.
//
// Each placement cuts a free region in two with one straight cut, leaving
// a 1px gutter between neighbors so that bilinear sampling does not bleed.
// When an image does not fit, both surface dimensions are doubled and the
// existing content is kept in place, so rects returned earlier remain
// valid.
//
// TexturePacker is not safe for concurrent use.
type TexturePacker struct {
	tree    *tree
	lookup  []int // NodeID -> tree node index
	surface *Surface
	minimum Size
	maximum Size
}

// NewTexturePacker creates a packer with a blank surface of the minimum
// size.
func NewTexturePacker(opts ...Option) *TexturePacker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	minimum := clampSize(o.minimum, o.maximum)
	p := &TexturePacker{
		tree:    newTree(),
		surface: newSurface(minimum),
		minimum: minimum,
		maximum: o.maximum,
	}
	p.surface.smooth = o.smooth
	return p
}

// Add places img in the atlas and returns its id. It returns PackFailure
// if img has no area or cannot fit even at the maximum surface size.
func (p *TexturePacker) Add(img image.Image) NodeID {
	size := sizeOf(img)
	if size.Width == 0 || size.Height == 0 {
		return PackFailure
	}

	for {
		n := p.tree.insert(0, size.Width, size.Height, p.surface.Size())
		if n != noNode {
			id := NodeID(len(p.lookup))
			p.tree.nodes[n].id = id
			p.lookup = append(p.lookup, n)
			p.surface.blit(img, p.tree.nodes[n].x, p.tree.nodes[n].y)
			return id
		}

		if !p.grow() {
			Logger().Warn("texpack: image does not fit in atlas",
				"size", size.String(), "max", p.maximum.String())
			p.ResizeToFit()
			return PackFailure
		}
	}
}

// AddOwn places img in the atlas. The pixels are copied into the surface
// immediately, so the buffer is not retained.
func (p *TexturePacker) AddOwn(img *image.RGBA) NodeID {
	if img == nil {
		return PackFailure
	}
	return p.Add(img)
}

// grow doubles both surface dimensions, clamped to the maximum. It returns
// false if the surface is already at the maximum.
func (p *TexturePacker) grow() bool {
	cur := p.surface.Size()
	if cur.Width >= p.maximum.Width && cur.Height >= p.maximum.Height {
		return false
	}
	next := Size{
		Width:  min(cur.Width*2, p.maximum.Width),
		Height: min(cur.Height*2, p.maximum.Height),
	}
	Logger().Debug("texpack: growing atlas", "from", cur.String(), "to", next.String())
	p.surface.resize(next)
	return true
}

// ImageRect returns the rect of the image with the given id, or the zero
// Rect if id is unknown.
func (p *TexturePacker) ImageRect(id NodeID) Rect {
	if id < 0 || int(id) >= len(p.lookup) {
		return Rect{}
	}
	return p.tree.rect(p.lookup[id])
}

// Texture returns the atlas surface.
func (p *TexturePacker) Texture() *Surface {
	return p.surface
}

// SetSmooth sets the bilinear filtering hint of the surface.
func (p *TexturePacker) SetSmooth(smooth bool) {
	p.surface.smooth = smooth
}

// IsSmooth returns the bilinear filtering hint of the surface.
func (p *TexturePacker) IsSmooth() bool {
	return p.surface.smooth
}

// Clear discards every packed image, resets ids to 0 and replaces the
// surface with a blank one of the minimum size.
func (p *TexturePacker) Clear() {
	p.tree = newTree()
	p.lookup = nil
	p.surface.reset(p.minimum)
}

// Empty reports whether no image has been packed since the last Clear.
func (p *TexturePacker) Empty() bool {
	return len(p.lookup) == 0
}

// Len returns the number of packed images.
func (p *TexturePacker) Len() int {
	return len(p.lookup)
}

// Size returns the current surface dimensions.
func (p *TexturePacker) Size() Size {
	return p.surface.Size()
}

// MinimumTextureSize returns the smallest surface size.
func (p *TexturePacker) MinimumTextureSize() Size {
	return p.minimum
}

// MaximumTextureSize returns the largest surface size.
func (p *TexturePacker) MaximumTextureSize() Size {
	return p.maximum
}

// SetMinimumTextureSize changes the smallest surface size. Each axis is
// clamped to [1, maximum]. An empty packer gets a blank surface of the new
// size; otherwise the surface is fitted with ResizeToFit.
func (p *TexturePacker) SetMinimumTextureSize(size Size) {
	p.minimum = clampSize(size, p.maximum)
	if p.Empty() {
		p.surface.reset(p.minimum)
		return
	}
	p.ResizeToFit()
}

// ResizeToFit shrinks or grows the surface to the smallest size, doubling
// from the minimum on each axis, that contains every packed image.
func (p *TexturePacker) ResizeToFit() {
	bound := p.tree.occupiedBound()
	next := Size{
		Width:  fitAxis(p.minimum.Width, bound.Width, p.maximum.Width),
		Height: fitAxis(p.minimum.Height, bound.Height, p.maximum.Height),
	}
	if next == p.surface.Size() {
		return
	}
	Logger().Debug("texpack: resizing atlas to fit",
		"from", p.surface.Size().String(), "to", next.String())
	p.surface.resize(next)
}

// fitAxis doubles from until it reaches need, without exceeding limit.
func fitAxis(from, need, limit int) int {
	n := from
	for n < need && n < limit {
		n *= 2
	}
	return min(n, limit)
}

// UsedArea returns the total area of packed images.
func (p *TexturePacker) UsedArea() int {
	area := 0
	for _, n := range p.lookup {
		r := p.tree.rect(n)
		area += r.Width * r.Height
	}
	return area
}

// Utilization returns the fraction of surface area covered by packed
// images (0.0 to 1.0).
func (p *TexturePacker) Utilization() float64 {
	total := p.surface.Size().Area()
	if total == 0 {
		return 0
	}
	return float64(p.UsedArea()) / float64(total)
}

package texpack

import "github.com/gogpu/gputypes"

// DefaultMinimumSize is the initial surface size of a TexturePacker.
var DefaultMinimumSize = Size{Width: 64, Height: 64}

// DefaultMaximumSize is the largest surface a TexturePacker grows to. It
// follows the WebGPU default 2D texture dimension limit.
var DefaultMaximumSize = Size{
	Width:  int(gputypes.DefaultLimits().MaxTextureDimension2D),
	Height: int(gputypes.DefaultLimits().MaxTextureDimension2D),
}

// Option configures a TexturePacker during creation.
//
// Example:
//
//	p := texpack.NewTexturePacker(
//	    texpack.WithMinimumSize(texpack.Size{Width: 256, Height: 256}),
//	    texpack.WithSmooth(true),
//	)
type Option func(*options)

type options struct {
	minimum Size
	maximum Size
	smooth  bool
}

func defaultOptions() options {
	return options{
		minimum: DefaultMinimumSize,
		maximum: DefaultMaximumSize,
	}
}

// WithMinimumSize sets the initial and smallest surface size. Each axis is
// clamped to [1, maximum].
func WithMinimumSize(size Size) Option {
	return func(o *options) {
		o.minimum = size
	}
}

// WithMaximumSize caps surface growth, for example at the limit reported
// by the GPU device:
//
//	limits := adapter.Limits()
//	p := texpack.NewTexturePacker(texpack.WithMaximumSize(texpack.Size{
//	    Width:  int(limits.MaxTextureDimension2D),
//	    Height: int(limits.MaxTextureDimension2D),
//	}))
//
// Non-positive axes keep the default.
func WithMaximumSize(size Size) Option {
	return func(o *options) {
		if size.Width > 0 {
			o.maximum.Width = size.Width
		}
		if size.Height > 0 {
			o.maximum.Height = size.Height
		}
	}
}

// WithSmooth sets the initial bilinear filtering hint.
func WithSmooth(smooth bool) Option {
	return func(o *options) {
		o.smooth = smooth
	}
}

// SortingOption configures a SortingTexturePacker during creation.
type SortingOption func(*sortingOptions)

type sortingOptions struct {
	inner Packer
	less  SortFunc
}

// WithInner sets the packer that receives images on Pack. By default a
// new TexturePacker with default options is used.
func WithInner(p Packer) SortingOption {
	return func(o *sortingOptions) {
		o.inner = p
	}
}

// WithSortFunc sets the order in which queued images are forwarded. A nil
// func keeps the default order, ByPerimeter.
func WithSortFunc(less SortFunc) SortingOption {
	return func(o *sortingOptions) {
		if less != nil {
			o.less = less
		}
	}
}

// clampSize clamps each axis of s to [1, limit].
func clampSize(s, limit Size) Size {
	return Size{
		Width:  clampInt(s.Width, 1, limit.Width),
		Height: clampInt(s.Height, 1, limit.Height),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

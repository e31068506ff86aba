package texpack

import (
	"slices"

	"github.com/gogpu/gpucontext"
)

// SortFunc reports whether an image of size a should be packed before an
// image of size b.
type SortFunc func(a, b Size) bool

// ByPerimeter packs images with the larger width+height first. It is the
// default order of SortingTexturePacker.
func ByPerimeter(a, b Size) bool {
	return a.Width+a.Height > b.Width+b.Height
}

// ByArea packs images with the larger area first.
func ByArea(a, b Size) bool {
	return a.Area() > b.Area()
}

// ByMaxSide packs images with the longer longest side first.
func ByMaxSide(a, b Size) bool {
	return max(a.Width, a.Height) > max(b.Width, b.Height)
}

// ByHeight packs taller images first.
func ByHeight(a, b Size) bool {
	return a.Height > b.Height
}

// ByWidth packs wider images first.
func ByWidth(a, b Size) bool {
	return a.Width > b.Width
}

// Unsorted keeps submission order.
func Unsorted(a, b Size) bool {
	return false
}

// sortFuncs holds the named sort orders used by tools and configuration.
var sortFuncs = gpucontext.NewRegistry[SortFunc](
	gpucontext.WithPriority("perimeter", "area", "maxside", "height", "width", "none"),
)

func init() {
	RegisterSortFunc("perimeter", ByPerimeter)
	RegisterSortFunc("area", ByArea)
	RegisterSortFunc("maxside", ByMaxSide)
	RegisterSortFunc("height", ByHeight)
	RegisterSortFunc("width", ByWidth)
	RegisterSortFunc("none", Unsorted)
}

// RegisterSortFunc makes a sort order available by name. Registering an
// existing name replaces it.
func RegisterSortFunc(name string, less SortFunc) {
	sortFuncs.Register(name, func() SortFunc { return less })
}

// LookupSortFunc returns the sort order registered under name.
func LookupSortFunc(name string) (SortFunc, bool) {
	if !sortFuncs.Has(name) {
		return nil, false
	}
	return sortFuncs.Get(name), true
}

// DefaultSortFunc returns the highest priority registered sort order.
func DefaultSortFunc() SortFunc {
	return sortFuncs.Best()
}

// SortFuncNames returns the names of the built-in sort orders that are
// still registered, in priority order.
func SortFuncNames() []string {
	names := make([]string, 0, 6)
	for _, name := range []string{"perimeter", "area", "maxside", "height", "width", "none"} {
		if sortFuncs.Has(name) {
			names = append(names, name)
		}
	}
	return names
}

// stableSort orders q by less, keeping submission order between equal
// sizes.
func stableSort(q []queuedImage, less SortFunc) {
	slices.SortStableFunc(q, func(a, b queuedImage) int {
		sa, sb := sizeOf(a.img), sizeOf(b.img)
		switch {
		case less(sa, sb):
			return -1
		case less(sb, sa):
			return 1
		default:
			return 0
		}
	})
}

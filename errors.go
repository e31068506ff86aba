package texpack

import "errors"

// Surface errors.
var (
	// ErrNilCreator is returned when Upload is called without a texture creator.
	ErrNilCreator = errors.New("texpack: nil texture creator")

	// ErrNilUpdater is returned when Flush is called without a texture updater.
	ErrNilUpdater = errors.New("texpack: nil texture updater")

	// ErrSurfaceResized is returned by Flush when the surface changed size
	// since the last upload. The texture must be recreated with Upload.
	ErrSurfaceResized = errors.New("texpack: surface resized since last upload")
)

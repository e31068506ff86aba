// Package texpack packs many small images into a shared texture atlas so
// that a renderer can batch draw calls instead of binding one texture per
// sprite, tile or glyph.
//
// # Overview
//
// Two packers implement the [Packer] interface:
//   - [TexturePacker] places each image immediately using a guillotine-split
//     binary tree and grows its [Surface] by doubling when it runs out of room.
//   - [SortingTexturePacker] queues images and forwards them to an inner
//     Packer in size order on [SortingTexturePacker.Pack], which usually
//     gives a denser atlas.
//
// # Quick Start
//
//	p := texpack.NewSortingTexturePacker()
//	hero := p.Add(heroImage)
//	coin := p.Add(coinImage)
//	p.Pack()
//
//	r := p.ImageRect(hero)
//	u0, v0, u1, v1 := p.Texture().UV(r)
//
// # Failures
//
// Packers never panic on bad input. Add returns [PackFailure] for images
// with no area and for images that do not fit at the maximum surface size.
// ImageRect returns the zero [Rect] for unknown ids.
//
// # Coordinate System
//
// Rects are integer pixels with the origin at the top-left corner of the
// surface. Growth never moves a packed image, but it changes the surface
// dimensions used to compute UVs, so query them again after adding images.
//
// # GPU Upload
//
// A [Surface] is a CPU pixel buffer. [Surface.Upload] creates a GPU texture
// through a gpucontext.TextureCreator and [Surface.Flush] uploads only the
// region written since then.
package texpack

// Package manifest writes and reads atlas descriptions in the
// TexturePacker JSON format, so atlases built with texpack can be loaded by
// engines that understand that format.
//
// Both the hash format (a single "frames" object) and the multi-page array
// format ("textures" list) are decoded. Encode always writes the hash
// format.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/gogpu/texpack"
)

// Sentinel errors for manifest package.
var (
	// ErrNoFrames is returned when a manifest has neither "frames" nor
	// "textures".
	ErrNoFrames = errors.New("manifest: JSON has neither \"frames\" nor \"textures\" key")

	// ErrDuplicateName is returned by Build when two entries share a name.
	ErrDuplicateName = errors.New("manifest: duplicate frame name")
)

// App identifies the writer in the meta section.
const App = "github.com/gogpu/texpack"

// Rect is a rectangle in manifest JSON form.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Size is a size in manifest JSON form.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Frame is one packed image.
type Frame struct {
	Frame            Rect `json:"frame"`
	Rotated          bool `json:"rotated"`
	Trimmed          bool `json:"trimmed"`
	SpriteSourceSize Rect `json:"spriteSourceSize"`
	SourceSize       Size `json:"sourceSize"`
}

// Meta describes the atlas image.
type Meta struct {
	App    string `json:"app,omitempty"`
	Image  string `json:"image"`
	Format string `json:"format,omitempty"`
	Size   Size   `json:"size"`
	Scale  string `json:"scale,omitempty"`
	Smooth bool   `json:"smooth"`
}

// Manifest is a decoded atlas description.
type Manifest struct {
	Frames map[string]Frame `json:"frames"`
	Meta   Meta             `json:"meta"`
}

// Entry names an image added to a packer.
type Entry struct {
	Name string
	ID   texpack.NodeID
}

// Build describes the images of p. Entries whose image was not packed are
// skipped and returned in missing.
func Build(p texpack.Packer, entries []Entry, image string) (m *Manifest, missing []Entry, err error) {
	surf := p.Texture()
	m = &Manifest{
		Frames: make(map[string]Frame, len(entries)),
		Meta: Meta{
			App:    App,
			Image:  image,
			Format: "RGBA8888",
			Size:   Size{W: surf.Width(), H: surf.Height()},
			Scale:  "1",
			Smooth: p.IsSmooth(),
		},
	}

	for _, e := range entries {
		if _, ok := m.Frames[e.Name]; ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		r := p.ImageRect(e.ID)
		if r.IsEmpty() {
			missing = append(missing, e)
			continue
		}
		m.Frames[e.Name] = Frame{
			Frame:            Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height},
			SpriteSourceSize: Rect{W: r.Width, H: r.Height},
			SourceSize:       Size{W: r.Width, H: r.Height},
		}
	}
	return m, missing, nil
}

// Names returns the frame names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Frames))
	for name := range m.Frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rect returns the frame of name as a texpack.Rect.
func (m *Manifest) Rect(name string) (texpack.Rect, bool) {
	f, ok := m.Frames[name]
	if !ok {
		return texpack.Rect{}, false
	}
	return texpack.Rect{X: f.Frame.X, Y: f.Frame.Y, Width: f.Frame.W, Height: f.Frame.H}, true
}

// Encode writes m as indented JSON.
func (m *Manifest) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("manifest: failed to encode: %w", err)
	}
	return nil
}

// --- decoding ---

type jsonTexturePage struct {
	Image  string           `json:"image"`
	Format string           `json:"format"`
	Size   Size             `json:"size"`
	Scale  json.Number      `json:"scale"`
	Frames map[string]Frame `json:"frames"`
}

// Decode parses a manifest. For the array format, the first page becomes
// the meta section and frames of all pages are merged.
func Decode(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to read: %w", err)
	}

	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
		Meta     json.RawMessage `json:"meta"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("manifest: failed to parse JSON: %w", err)
	}

	m := &Manifest{Frames: make(map[string]Frame)}
	switch {
	case probe.Textures != nil:
		if err := parseArrayFormat(probe.Textures, m); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		if err := json.Unmarshal(probe.Frames, &m.Frames); err != nil {
			return nil, fmt.Errorf("manifest: failed to parse frames: %w", err)
		}
	default:
		return nil, ErrNoFrames
	}

	if probe.Meta != nil {
		if err := json.Unmarshal(probe.Meta, &m.Meta); err != nil {
			return nil, fmt.Errorf("manifest: failed to parse meta: %w", err)
		}
	}
	return m, nil
}

func parseArrayFormat(raw json.RawMessage, m *Manifest) error {
	var pages []jsonTexturePage
	if err := json.Unmarshal(raw, &pages); err != nil {
		return fmt.Errorf("manifest: failed to parse textures array: %w", err)
	}
	for i, page := range pages {
		if i == 0 {
			m.Meta.Image = page.Image
			m.Meta.Format = page.Format
			m.Meta.Size = page.Size
			m.Meta.Scale = page.Scale.String()
		}
		for name, f := range page.Frames {
			m.Frames[name] = f
		}
	}
	return nil
}

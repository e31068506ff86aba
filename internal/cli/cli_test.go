package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/texpack"
	"github.com/gogpu/texpack/manifest"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, LogDebug)
	t.Cleanup(func() { texpack.SetLogger(nil) })

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	if testing.Verbose() {
		t.Log(logs.String())
	}
	return out.String(), err
}

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func readManifest(t *testing.T, path string) *manifest.Manifest {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	m, err := manifest.Decode(f)
	if err != nil {
		t.Fatalf("Decode(%s) error = %v", path, err)
	}
	return m
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestPackCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sprites")
	red := color.RGBA{255, 0, 0, 255}
	writePNG(t, filepath.Join(src, "hero.png"), 4, 4, red)
	writePNG(t, filepath.Join(src, "ui", "button.png"), 8, 2, color.RGBA{0, 0, 255, 255})
	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("skip me"), 0o600); err != nil {
		t.Fatal(err)
	}

	atlasPath := filepath.Join(dir, "out", "atlas.png")
	manifestPath := filepath.Join(dir, "out", "atlas.json")
	if _, err := execute(t, "pack", src, "--min-size", "16", "-o", atlasPath, "-m", manifestPath); err != nil {
		t.Fatalf("pack error = %v", err)
	}

	m := readManifest(t, manifestPath)
	if names := m.Names(); len(names) != 2 || names[0] != "hero" || names[1] != "ui/button" {
		t.Fatalf("Names() = %v, want [hero ui/button]", names)
	}
	if m.Meta.Image != "atlas.png" {
		t.Errorf("Meta.Image = %q, want atlas.png", m.Meta.Image)
	}

	atlas := readPNG(t, atlasPath)
	if got := atlas.Bounds().Size(); got != image.Pt(m.Meta.Size.W, m.Meta.Size.H) {
		t.Errorf("atlas size = %v, manifest says %+v", got, m.Meta.Size)
	}
	hero, _ := m.Rect("hero")
	if hero.Width != 4 || hero.Height != 4 {
		t.Fatalf("hero rect = %v", hero)
	}
	r, g, b, a := atlas.At(hero.X+1, hero.Y+1).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 || a>>8 != 255 {
		t.Errorf("hero pixel = (%d,%d,%d,%d), want red", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestPackCommand_Config(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 3, 3, color.White)

	atlasPath := filepath.Join(dir, "from-config.png")
	cfgPath := filepath.Join(dir, "texpack.toml")
	cfg := "[atlas]\nmin_size = 8\nsort = \"area\"\n\n[output]\nimage = \"" + filepath.ToSlash(atlasPath) + "\"\nmanifest = \"\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", cfgPath, "pack", filepath.Join(dir, "a.png")); err != nil {
		t.Fatalf("pack error = %v", err)
	}
	if got := readPNG(t, atlasPath).Bounds().Size(); got != image.Pt(8, 8) {
		t.Errorf("atlas size = %v, want 8x8", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			t.Errorf("manifest %s written despite empty manifest path", e.Name())
		}
	}
}

func TestPackCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no images", []string{"pack", dir}, "no image files"},
		{"missing path", []string{"pack", filepath.Join(dir, "nope")}, "nope"},
		{"bad sort", []string{"pack", dir, "--sort", "random"}, "atlas.sort"},
		{"no args", []string{"pack"}, "arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestGlyphsCommand(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "glyphs.json")
	_, err := execute(t, "glyphs",
		"--script", "Greek",
		"--size", "12",
		"-o", filepath.Join(dir, "glyphs.png"),
		"-m", manifestPath,
	)
	if err != nil {
		t.Fatalf("glyphs error = %v", err)
	}

	m := readManifest(t, manifestPath)
	alpha, ok := m.Rect("U+03B1")
	if !ok {
		t.Fatalf("no frame for U+03B1 among %d frames", len(m.Frames))
	}
	if alpha.IsEmpty() {
		t.Errorf("U+03B1 rect is empty")
	}
	// Latin letters are not part of the Greek script.
	if _, ok := m.Rect("U+0041"); ok {
		t.Errorf("unexpected frame U+0041")
	}
}

func TestGlyphsCommand_UnknownScript(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "glyphs", "--script", "Klingon", "-o", filepath.Join(dir, "g.png"))
	if err == nil || !strings.Contains(err.Error(), "Klingon") {
		t.Errorf("error = %v, want unknown script", err)
	}
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.json")
	const data = `{"frames": {
		"b": {"frame": {"x": 5, "y": 0, "w": 3, "h": 2}},
		"a": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}}
	}, "meta": {"image": "atlas.png", "size": {"w": 8, "h": 8}}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if lines[0] != "image: atlas.png (8x8)" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "a ") || !strings.HasPrefix(lines[3], "b ") {
		t.Errorf("frames not sorted by name:\n%s", out)
	}
	if fields := strings.Fields(lines[3]); len(fields) != 5 || fields[1] != "5" || fields[3] != "3" {
		t.Errorf("b row = %q", lines[3])
	}
}

func TestSortsCommand(t *testing.T) {
	out, err := execute(t, "sorts")
	if err != nil {
		t.Fatalf("sorts error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "perimeter (default)" {
		t.Errorf("first line = %q, want default perimeter", lines[0])
	}
	if len(lines) != len(texpack.SortFuncNames()) {
		t.Errorf("got %d orders, want %d", len(lines), len(texpack.SortFuncNames()))
	}
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 1, 1, color.White)
	writePNG(t, filepath.Join(dir, "a", "c.PNG"), 1, 1, color.White)
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), nil, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := collectImages(context.Background(), []string{dir, filepath.Join(dir, "b.png")})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a/c", "b", "b"}
	if len(got) != len(want) {
		t.Fatalf("collectImages() = %v, want names %v", got, want)
	}
	for i, s := range got {
		if s.name != want[i] {
			t.Errorf("name[%d] = %q, want %q", i, s.name, want[i])
		}
	}
}

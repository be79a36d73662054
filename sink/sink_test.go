package sink

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/mandel/grid"
)

// testImage returns a 3×4 RGB grid with a distinct color per pixel.
func testImage(t *testing.T) *grid.Dense[uint8] {
	t.Helper()
	img, err := grid.New[uint8](3, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	for y := range 3 {
		for x := range 4 {
			img.Set3(y, x, 0, uint8(y*40))
			img.Set3(y, x, 1, uint8(x*50))
			img.Set3(y, x, 2, uint8(200-y*x*10))
		}
	}
	return img
}

func checkDecoded(t *testing.T, decoded image.Image, want *grid.Dense[uint8]) {
	t.Helper()
	b := decoded.Bounds()
	if b.Dx() != want.Dim(1) || b.Dy() != want.Dim(0) {
		t.Fatalf("decoded size = %dx%d, want %dx%d", b.Dx(), b.Dy(), want.Dim(1), want.Dim(0))
	}
	for y := range want.Dim(0) {
		for x := range want.Dim(1) {
			r, g, bl, a := decoded.At(b.Min.X+x, b.Min.Y+y).RGBA()
			got := [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)}
			exp := [4]uint8{want.At3(y, x, 0), want.At3(y, x, 1), want.At3(y, x, 2), 255}
			if got != exp {
				t.Errorf("pixel (%d, %d) = %v, want %v", y, x, got, exp)
			}
		}
	}
}

// =============================================================================
// Encode Tests
// =============================================================================

func TestEncode(t *testing.T) {
	img := testImage(t)

	tests := []struct {
		format Format
		decode func(io.Reader) (image.Image, error)
	}{
		{PNG, png.Decode},
		{BMP, bmp.Decode},
		{TIFF, tiff.Decode},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, tt.format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			decoded, err := tt.decode(&buf)
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			checkDecoded(t, decoded, img)
		})
	}
}

func TestEncode_InvalidShape(t *testing.T) {
	rgba, _ := grid.New[uint8](2, 2, 4)
	flat, _ := grid.New[uint8](2, 6)

	tests := []struct {
		name string
		img  *grid.Dense[uint8]
		want error
	}{
		{"nil", nil, grid.ErrInvalidShape},
		{"four channels", rgba, grid.ErrInvalidShape},
		{"rank 2", flat, grid.ErrInvalidShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Encode(io.Discard, tt.img, PNG)
			if !errors.Is(err, tt.want) {
				t.Errorf("Encode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncode_Empty(t *testing.T) {
	empty, _ := grid.New[uint8](0, 5, 3)
	if err := Encode(io.Discard, empty, PNG); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Encode(empty) error = %v, want ErrEmptyImage", err)
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	if err := Encode(io.Discard, testImage(t), Format(99)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", PNG, false},
		{"OUT.PNG", PNG, false},
		{"dir/out.bmp", BMP, false},
		{"out.tif", TIFF, false},
		{"out.tiff", TIFF, false},
		{"out.jpg", 0, true},
		{"out", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// =============================================================================
// Save Tests
// =============================================================================

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := testImage(t)
	if err := Save(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	checkDecoded(t, decoded, img)
}

func TestSave_NoPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	bad, _ := grid.New[uint8](2, 2, 4)
	if err := Save(path, bad); err == nil {
		t.Fatal("Save() should fail for a 4-channel grid")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file exists after failed Save: %v", err)
	}
}

// =============================================================================
// Field Dump Tests
// =============================================================================

func TestField_RoundTrip(t *testing.T) {
	field, _ := grid.New[float32](5, 7)
	data := field.Data()
	for i := range data {
		data[i] = float32(i) * 0.37
	}
	field.Set2(2, 3, float32(math.Inf(1)))
	field.Set2(4, 6, 100)

	var buf bytes.Buffer
	if err := WriteField(&buf, field); err != nil {
		t.Fatal(err)
	}
	got, err := ReadField(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(field) {
		t.Errorf("ReadField() = %v, want %v", got, field)
	}
}

func TestWriteField_InvalidShape(t *testing.T) {
	cube, _ := grid.New[float32](2, 2, 2)
	if err := WriteField(io.Discard, cube); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("error = %v, want ErrInvalidShape", err)
	}
}

func TestReadField_Corrupt(t *testing.T) {
	t.Run("not zstd", func(t *testing.T) {
		if _, err := ReadField(bytes.NewReader([]byte("plain text"))); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("truncated", func(t *testing.T) {
		field, _ := grid.Filled[float32](1.5, 4, 4)
		var full bytes.Buffer
		if err := WriteField(&full, field); err != nil {
			t.Fatal(err)
		}
		// Re-encode a payload that lacks its final samples.
		plain, err := decompress(full.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		var cut bytes.Buffer
		if err := compress(&cut, plain[:len(plain)-6]); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadField(&cut); !errors.Is(err, ErrCorruptField) {
			t.Errorf("error = %v, want ErrCorruptField", err)
		}
	})

	t.Run("oversized header", func(t *testing.T) {
		tests := []struct {
			name          string
			height, width uint32
		}{
			{"max dimensions", math.MaxUint32, math.MaxUint32},
			{"one past limit", MaxFieldSamples/2 + 1, 2},
			{"tall column", MaxFieldSamples + 1, 1},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var buf bytes.Buffer
				if err := compress(&buf, fieldHeaderBytes(tt.height, tt.width)); err != nil {
					t.Fatal(err)
				}
				if _, err := ReadField(&buf); !errors.Is(err, ErrCorruptField) {
					t.Errorf("error = %v, want ErrCorruptField", err)
				}
			})
		}
	})

	t.Run("header without samples", func(t *testing.T) {
		// Within the limit, but the stream holds none of the samples.
		var buf bytes.Buffer
		if err := compress(&buf, fieldHeaderBytes(1<<14, 1<<14)); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadField(&buf); !errors.Is(err, ErrCorruptField) {
			t.Errorf("error = %v, want ErrCorruptField", err)
		}
	})

	t.Run("empty field", func(t *testing.T) {
		var buf bytes.Buffer
		if err := compress(&buf, fieldHeaderBytes(0, 7)); err != nil {
			t.Fatal(err)
		}
		got, err := ReadField(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if got.Dim(0) != 0 || got.Dim(1) != 7 {
			t.Errorf("shape = %v, want [0 7]", got.Shape())
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		var buf bytes.Buffer
		if err := compress(&buf, []byte("XXXX\x01\x00\x00\x00\x01\x00\x00\x00\x01\x00\x00\x00")); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadField(&buf); !errors.Is(err, ErrCorruptField) {
			t.Errorf("error = %v, want ErrCorruptField", err)
		}
	})
}

func TestSaveField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.zst")
	field, _ := grid.Filled[float32](42, 3, 3)
	if err := SaveField(path, field); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	got, err := ReadField(f)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(field) {
		t.Error("SaveField round trip mismatch")
	}
}

package sink

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/mandel/grid"
)

// ErrCorruptField is returned by ReadField for a stream that is not a valid
// field dump.
var ErrCorruptField = errors.New("sink: corrupt field stream")

// fieldMagic identifies a field dump.
var fieldMagic = [4]byte{'M', 'F', 'L', 'D'}

const fieldVersion = 1

// MaxFieldSamples is the largest field (height*width) a dump may hold.
const MaxFieldSamples = 1 << 30

// fieldChunk bounds the initial sample buffer of ReadField; it grows as
// samples arrive.
const fieldChunk = 1 << 16

// fieldHeader precedes the little-endian float32 samples of a field dump.
type fieldHeader struct {
	Magic   [4]byte
	Version uint32
	Height  uint32
	Width   uint32
}

// WriteField writes a rank-2 float32 field to w as a zstd stream:
// a 16-byte header (magic "MFLD", version, height, width, little-endian)
// followed by height*width little-endian float32 values in row-major order.
func WriteField(w io.Writer, field *grid.Dense[float32]) error {
	if field == nil || field.Rank() != 2 {
		return fmt.Errorf("%w: field must be rank 2", ErrInvalidShape)
	}
	h, wd := field.Dim(0), field.Dim(1)
	if uint64(h) > math.MaxUint32 || uint64(wd) > math.MaxUint32 || uint64(h)*uint64(wd) > MaxFieldSamples {
		return fmt.Errorf("%w: field %dx%d too large", ErrInvalidShape, h, wd)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		return fmt.Errorf("sink: zstd writer: %w", err)
	}

	bw := bufio.NewWriter(enc)
	hdr := fieldHeader{
		Magic:   fieldMagic,
		Version: fieldVersion,
		Height:  uint32(h),  //nolint:gosec // G115: checked above
		Width:   uint32(wd), //nolint:gosec // G115: checked above
	}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		enc.Close()
		return fmt.Errorf("sink: write field header: %w", err)
	}

	var scratch [4]byte
	for _, v := range field.Data() {
		binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(v))
		if _, err := bw.Write(scratch[:]); err != nil {
			enc.Close()
			return fmt.Errorf("sink: write field: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("sink: write field: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("sink: close zstd stream: %w", err)
	}
	return nil
}

// ReadField reads a field written by WriteField.
func ReadField(r io.Reader) (*grid.Dense[float32], error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("sink: zstd reader: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	var hdr fieldHeader
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorruptField, err)
	}
	if hdr.Magic != fieldMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptField, hdr.Magic[:])
	}
	if hdr.Version != fieldVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptField, hdr.Version)
	}

	n := uint64(hdr.Height) * uint64(hdr.Width)
	if n > MaxFieldSamples {
		return nil, fmt.Errorf("%w: %dx%d field exceeds %d samples",
			ErrCorruptField, hdr.Height, hdr.Width, MaxFieldSamples)
	}

	var scratch [4]byte
	data := make([]float32, 0, min(n, fieldChunk))
	for i := range n {
		if _, err := io.ReadFull(br, scratch[:]); err != nil {
			return nil, fmt.Errorf("%w: truncated at sample %d: %w", ErrCorruptField, i, err)
		}
		data = append(data, math.Float32frombits(binary.LittleEndian.Uint32(scratch[:])))
	}

	field, err := grid.Wrap(data, int(hdr.Height), int(hdr.Width))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptField, err)
	}
	return field, nil
}

// SaveField writes a field dump to path. Like Save, the stream is built in
// memory first.
func SaveField(path string, field *grid.Dense[float32]) error {
	var buf bytes.Buffer
	if err := WriteField(&buf, field); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

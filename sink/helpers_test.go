package sink

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zstd"
)

func compress(w io.Writer, plain []byte) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := enc.Write(plain); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// fieldHeaderBytes returns an uncompressed version-1 field header.
func fieldHeaderBytes(height, width uint32) []byte {
	b := append([]byte(nil), fieldMagic[:]...)
	b = binary.LittleEndian.AppendUint32(b, fieldVersion)
	b = binary.LittleEndian.AppendUint32(b, height)
	return binary.LittleEndian.AppendUint32(b, width)
}

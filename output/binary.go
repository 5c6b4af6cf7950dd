package output

import (
	"encoding/binary"
	"io"
)

// binaryWriter writes fixed-size values and remembers the first error.
// Once Err is set every further write is a no-op returning false.
type binaryWriter struct {
	Order binary.ByteOrder
	Dst   io.Writer
	Err   error
	N     int64
}

func (bw *binaryWriter) WriteBytes(p []byte) (ok bool) {
	if bw.Err != nil {
		return false
	}
	n, err := bw.Dst.Write(p)
	bw.N += int64(n)
	if err != nil {
		bw.Err = err
		return false
	}
	return true
}

// Write implements io.Writer so compressors can sit on top of the writer.
func (bw *binaryWriter) Write(p []byte) (int, error) {
	if !bw.WriteBytes(p) {
		return 0, bw.Err
	}
	return len(p), nil
}

func (bw *binaryWriter) WriteRef(data any) (ok bool) {
	if bw.Err != nil {
		return false
	}
	if err := binary.Write(bw.Dst, bw.Order, data); err != nil {
		bw.Err = err
		return false
	}
	bw.N += int64(binary.Size(data))
	return true
}

// binaryReader is the reading counterpart of binaryWriter.
type binaryReader struct {
	Order binary.ByteOrder
	Src   io.Reader
	Err   error
	Index int64
}

// ReadRef decodes a fixed-size value. A clean end of stream before the
// first byte leaves Err as io.EOF; a short value gives io.ErrUnexpectedEOF.
func (br *binaryReader) ReadRef(data any) (ok bool) {
	if br.Err != nil {
		return false
	}
	if err := binary.Read(br.Src, br.Order, data); err != nil {
		br.Err = err
		return false
	}
	br.Index += int64(binary.Size(data))
	return true
}

func (br *binaryReader) ReadBytes(p []byte) (ok bool) {
	if br.Err != nil {
		return false
	}
	n, err := io.ReadFull(br.Src, p)
	br.Index += int64(n)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		br.Err = err
		return false
	}
	return true
}

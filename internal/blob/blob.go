// Package blob reads the binary inputs handed to the decoder. Large
// files are memory-mapped read-only where the platform allows it, with
// a plain read fallback.
package blob

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Data is a read-only view of one input file. Close releases the
// mapping when one is held.
type Data struct {
	Bytes   []byte
	mmapped bool
}

// Read opens path and returns its contents. Prefer mmap for zero-copy
// access; fall back to reading the whole file.
func Read(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%s: file too large to map", path)
	}
	size := int(size64)
	if size == 0 {
		return &Data{Bytes: []byte{}}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return &Data{Bytes: data, mmapped: true}, nil
	}

	out := make([]byte, size)
	if _, err := io.ReadFull(f, out); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Data{Bytes: out}, nil
}

func (d *Data) Close() error {
	if d.mmapped {
		d.mmapped = false
		return unix.Munmap(d.Bytes)
	}
	return nil
}

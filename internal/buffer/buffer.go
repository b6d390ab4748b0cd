package buffer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrNoFilename = errors.New("no filename set")

type Buffer struct {
	filename     string
	data         []byte
	originalHash string
	modified     bool
}

func New() *Buffer {
	return &Buffer{
		data: make([]byte, 0),
	}
}

// NewFilled returns an unnamed buffer of size bytes cycling through A..Z.
func NewFilled(size int) *Buffer {
	if size < 0 {
		size = 0
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = byte('A' + i%26)
	}
	return &Buffer{
		data:     data,
		modified: true,
	}
}

func Open(filename string) (*Buffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	return &Buffer{
		filename:     filename,
		data:         data,
		originalHash: hashOf(data),
	}, nil
}

func (b *Buffer) Filename() string {
	return b.filename
}

func (b *Buffer) SetFilename(name string) {
	b.filename = name
}

func (b *Buffer) IsModified() bool {
	return b.modified
}

func (b *Buffer) Size() int64 {
	return int64(len(b.data))
}

// Get returns 0 for offsets outside the buffer.
func (b *Buffer) Get(offset int64) byte {
	if offset < 0 || offset >= int64(len(b.data)) {
		return 0
	}
	return b.data[offset]
}

// Set writes value at offset, growing the buffer to offset+1 bytes when
// needed. Gap bytes are zero.
func (b *Buffer) Set(offset int64, value byte) {
	if offset < 0 {
		return
	}
	if offset >= int64(len(b.data)) {
		b.data = append(b.data, make([]byte, offset+1-int64(len(b.data)))...)
	}
	b.data[offset] = value
	b.modified = true
}

// HasChangedOnDisk reports whether the file was rewritten by someone else
// since it was loaded or last saved.
func (b *Buffer) HasChangedOnDisk() (bool, error) {
	if b.filename == "" || b.originalHash == "" {
		return false, nil
	}

	data, err := os.ReadFile(b.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	return hashOf(data) != b.originalHash, nil
}

func (b *Buffer) Save() error {
	if b.filename == "" {
		return ErrNoFilename
	}

	if err := os.WriteFile(b.filename, b.data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", b.filename, err)
	}

	b.originalHash = hashOf(b.data)
	b.modified = false
	return nil
}

func (b *Buffer) SaveAs(filename string) error {
	if filename == "" {
		return ErrNoFilename
	}
	b.filename = filename
	return b.Save()
}

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

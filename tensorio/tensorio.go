package tensorio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/hupe1980/sptensor"
	"github.com/hupe1980/sptensor/blobstore"
)

// Marshal serializes t. FormatAuto writes COO text and CompressionAuto
// writes uncompressed output.
func Marshal(t *sptensor.Tensor, optFns ...Option) ([]byte, error) {
	return marshal(t, newOptions(optFns))
}

func marshal(t *sptensor.Tensor, o options) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch o.format {
	case FormatAuto, FormatCOO:
		err = WriteCOO(&buf, t)
	case FormatJSON:
		err = WriteJSON(&buf, t, o.codec)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, o.format)
	}
	if err != nil {
		return nil, err
	}
	return compress(buf.Bytes(), o.compression)
}

// Unmarshal parses a tensor, detecting compression and format unless they
// are forced by options.
func Unmarshal(data []byte, optFns ...Option) (*sptensor.Tensor, error) {
	return unmarshal(data, newOptions(optFns))
}

func unmarshal(data []byte, o options) (*sptensor.Tensor, error) {
	data, err := decompress(data, o.compression)
	if err != nil {
		return nil, err
	}

	format := o.format
	if format == FormatAuto {
		format = detectFormat(data)
	}

	switch format {
	case FormatCOO:
		return ReadCOO(bytes.NewReader(data), o.tensorOpts...)
	case FormatJSON:
		return ReadJSON(bytes.NewReader(data), o.codec, o.tensorOpts...)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func detectFormat(data []byte) Format {
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatCOO
}

// Encode writes t to w.
func Encode(w io.Writer, t *sptensor.Tensor, optFns ...Option) error {
	data, err := Marshal(t, optFns...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode reads a whole tensor from r.
func Decode(r io.Reader, optFns ...Option) (*sptensor.Tensor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, optFns...)
}

// Save writes t to the blob store. Format and compression default to the
// ones implied by name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, t *sptensor.Tensor, optFns ...Option) error {
	o := newOptions(optFns)
	start := time.Now()

	err := save(ctx, store, name, t, o)

	nnz := 0
	if t != nil {
		nnz = t.NNZ()
	}
	o.logger.LogWrite(name, nnz, err)
	o.metrics.RecordWrite(nnz, time.Since(start), err)
	return err
}

func save(ctx context.Context, store blobstore.BlobStore, name string, t *sptensor.Tensor, o options) error {
	o, err := o.resolve(name)
	if err != nil {
		return err
	}
	data, err := marshal(t, o)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// Load reads a tensor from the blob store. A missing blob yields an error
// matching blobstore.ErrNotFound.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*sptensor.Tensor, error) {
	o := newOptions(optFns)
	start := time.Now()

	t, err := load(ctx, store, name, o)

	nnz := 0
	if t != nil {
		nnz = t.NNZ()
	}
	o.logger.LogRead(name, nnz, err)
	o.metrics.RecordRead(nnz, time.Since(start), err)
	return t, err
}

func load(ctx context.Context, store blobstore.BlobStore, name string, o options) (*sptensor.Tensor, error) {
	r, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	t, err := unmarshal(data, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// ReadFile loads a tensor from a local file.
func ReadFile(path string, optFns ...Option) (*sptensor.Tensor, error) {
	dir, name := filepath.Split(path)
	return Load(context.Background(), blobstore.NewLocalStore(dir), name, optFns...)
}

// WriteFile atomically writes t to a local file, creating parent
// directories as needed.
func WriteFile(path string, t *sptensor.Tensor, optFns ...Option) error {
	dir, name := filepath.Split(path)
	return Save(context.Background(), blobstore.NewLocalStore(dir), name, t, optFns...)
}

package tensorio

import (
	"fmt"
	"io"

	"github.com/hupe1980/sptensor"
	"github.com/hupe1980/sptensor/codec"
	"github.com/hupe1980/sptensor/coord"
	"github.com/hupe1980/sptensor/kv"
)

// SnapshotVersion is the current JSON snapshot layout version.
const SnapshotVersion = 1

// Snapshot is the document written by the JSON format.
type Snapshot struct {
	Version int          `json:"version"`
	Codec   string       `json:"codec"`
	Store   string       `json:"store"`
	Shape   []coord.Mode `json:"shape"`
	Entries []Entry      `json:"entries"`
}

// Entry is one stored coordinate and its value.
type Entry struct {
	Coords []coord.Mode `json:"c"`
	Value  float64      `json:"v"`
}

// NewSnapshot captures the shape and entries of t.
func NewSnapshot(t *sptensor.Tensor, c codec.Codec) *Snapshot {
	s := &Snapshot{
		Version: SnapshotVersion,
		Codec:   c.Name(),
		Store:   t.Store().Kind().String(),
		Shape:   t.Shape(),
		Entries: make([]Entry, 0, t.NNZ()),
	}
	for k, v := range t.Entries() {
		s.Entries = append(s.Entries, Entry{Coords: k.Clone(), Value: v})
	}
	return s
}

// Tensor rebuilds a tensor from the snapshot. The recorded store kind is
// used unless optFns select another one.
func (s *Snapshot) Tensor(optFns ...sptensor.Option) (*sptensor.Tensor, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", ErrMalformed, s.Version)
	}

	var opts []sptensor.Option
	if s.Store != "" {
		kind, err := kv.ParseKind(s.Store)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		opts = append(opts, sptensor.WithStore(kind))
	}
	opts = append(opts, optFns...)

	t, err := sptensor.New(s.Shape, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	for i, e := range s.Entries {
		if err := t.Insert(e.Coords, e.Value); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrMalformed, i, err)
		}
	}
	return t, nil
}

// WriteJSON writes t as a snapshot encoded with c.
func WriteJSON(w io.Writer, t *sptensor.Tensor, c codec.Codec) error {
	if t == nil {
		return sptensor.ErrNilTensor
	}
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(NewSnapshot(t, c))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadJSON decodes a snapshot with c and rebuilds the tensor.
func ReadJSON(r io.Reader, c codec.Codec, optFns ...sptensor.Option) (*sptensor.Tensor, error) {
	if c == nil {
		c = codec.Default
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := c.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return s.Tensor(optFns...)
}

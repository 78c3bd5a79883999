package tensorio

import (
	"fmt"
	"path"
	"strings"

	"github.com/hupe1980/sptensor"
	"github.com/hupe1980/sptensor/codec"
)

// Format selects the serialization format.
type Format int

const (
	// FormatAuto detects the format from the content when reading and
	// from the name when writing.
	FormatAuto Format = iota
	// FormatCOO is the line-oriented coordinate text format.
	FormatCOO
	// FormatJSON is the codec-encoded snapshot format.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatCOO:
		return "coo"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat parses "auto", "coo" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "coo", "tns", "txt":
		return FormatCOO, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: format %q", ErrUnknownFormat, s)
	}
}

// Compression selects the compression wrapped around the format.
type Compression int

const (
	// CompressionAuto detects compression from magic bytes when reading and
	// from the name when writing.
	CompressionAuto Compression = iota
	// CompressionNone stores the format as is.
	CompressionNone
	// CompressionZstd uses a zstd frame.
	CompressionZstd
	// CompressionLZ4 uses an lz4 frame.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionAuto:
		return "auto"
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", int(c))
	}
}

// ParseCompression parses "auto", "none", "zstd" or "lz4".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return CompressionAuto, nil
	case "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: compression %q", ErrUnknownFormat, s)
	}
}

// FromName derives format and compression from a file or blob name, for
// example "a.json.zst" gives FormatJSON and CompressionZstd.
func FromName(name string) (Format, Compression, error) {
	base := strings.ToLower(path.Base(name))

	comp := CompressionNone
	switch ext := path.Ext(base); ext {
	case ".zst", ".zstd":
		comp = CompressionZstd
		base = strings.TrimSuffix(base, ext)
	case ".lz4":
		comp = CompressionLZ4
		base = strings.TrimSuffix(base, ext)
	}

	switch ext := path.Ext(base); ext {
	case ".json":
		return FormatJSON, comp, nil
	case ".coo", ".tns", ".txt", "":
		return FormatCOO, comp, nil
	default:
		return 0, 0, fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
}

type options struct {
	format      Format
	compression Compression
	codec       codec.Codec
	tensorOpts  []sptensor.Option
	logger      *sptensor.Logger
	metrics     sptensor.MetricsCollector
}

func defaultOptions() options {
	return options{
		format:      FormatAuto,
		compression: CompressionAuto,
		codec:       codec.Default,
		logger:      sptensor.NoopLogger(),
		metrics:     sptensor.NoopMetricsCollector{},
	}
}

func newOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// resolve fills auto settings for writing a blob with the given name.
func (o options) resolve(name string) (options, error) {
	if o.format != FormatAuto && o.compression != CompressionAuto {
		return o, nil
	}
	f, c, err := FromName(name)
	if err != nil {
		if o.format == FormatAuto {
			return o, err
		}
		c = CompressionNone
	}
	if o.format == FormatAuto {
		o.format = f
	}
	if o.compression == CompressionAuto {
		o.compression = c
	}
	return o, nil
}

// Option configures reading and writing.
type Option func(*options)

// WithFormat forces a format instead of detecting it.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithCompression forces a compression instead of detecting it.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCodec sets the codec for JSON snapshots. If nil is passed, the
// default codec is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithTensorOptions sets the options used to construct tensors on read.
func WithTensorOptions(optFns ...sptensor.Option) Option {
	return func(o *options) {
		o.tensorOpts = append(o.tensorOpts, optFns...)
	}
}

// WithLogger sets the logger for Load, Save, ReadFile and WriteFile.
func WithLogger(l *sptensor.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = sptensor.NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified after each read or write.
func WithMetricsCollector(mc sptensor.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = sptensor.NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

package tensorio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/sptensor"
	"github.com/hupe1980/sptensor/coord"
)

// WriteCOO writes t in COO text format. Entries appear in the store's
// iteration order. Values use the shortest representation that parses back
// to the same float64.
func WriteCOO(w io.Writer, t *sptensor.Tensor) error {
	if t == nil {
		return sptensor.ErrNilTensor
	}

	bw := bufio.NewWriter(w)

	shape := t.Shape()
	fmt.Fprintf(bw, "order: %d\n", len(shape))
	bw.WriteString("shape:")
	for i, extent := range shape {
		if i == 0 {
			bw.WriteByte(' ')
		} else {
			bw.WriteString(", ")
		}
		bw.WriteString(strconv.FormatUint(uint64(extent), 10))
	}
	bw.WriteString("\nvalues:\n")

	var line []byte
	for c, v := range t.Entries() {
		line = line[:0]
		for _, m := range c {
			line = strconv.AppendUint(line, uint64(m), 10)
			line = append(line, ", "...)
		}
		line = strconv.AppendFloat(line, v, 'g', -1, 64)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadCOO parses a COO text tensor. Blank lines are ignored, separators may
// be commas, whitespace or both, and header keys may be followed by any
// amount of whitespace. Every entry is applied with Insert, so zero values
// are skipped and out-of-range coordinates yield a *ParseError.
func ReadCOO(r io.Reader, optFns ...sptensor.Option) (*sptensor.Tensor, error) {
	p := cooParser{scanner: bufio.NewScanner(r)}
	p.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	orderStr, err := p.header("order")
	if err != nil {
		return nil, err
	}
	order, err := strconv.Atoi(orderStr)
	if err != nil || order < 0 {
		return nil, p.errorf(err, "invalid order %q", orderStr)
	}
	if order > coord.MaxOrder {
		return nil, p.errorf(sptensor.ErrBadShape, "order %d exceeds maximum %d", order, coord.MaxOrder)
	}

	shapeStr, err := p.header("shape")
	if err != nil {
		return nil, err
	}
	fields := splitFields(shapeStr)
	if len(fields) != order {
		return nil, p.errorf(nil, "shape has %d extents, order is %d", len(fields), order)
	}
	shape := make(coord.Coords, order)
	for i, f := range fields {
		extent, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, p.errorf(err, "invalid extent %q", f)
		}
		shape[i] = coord.Mode(extent)
	}

	t, err := sptensor.New(shape, optFns...)
	if err != nil {
		return nil, p.errorf(err, "invalid shape")
	}

	if rest, err := p.header("values"); err != nil {
		return nil, err
	} else if rest != "" {
		return nil, p.errorf(nil, "unexpected text after values header")
	}

	c := make(coord.Coords, order)
	for p.next() {
		fields := splitFields(p.text)
		if len(fields) != order+1 {
			return nil, p.errorf(nil, "expected %d coordinates and a value, got %d fields", order, len(fields))
		}
		for i := range order {
			m, err := strconv.ParseUint(fields[i], 10, 32)
			if err != nil {
				return nil, p.errorf(err, "invalid coordinate %q", fields[i])
			}
			c[i] = coord.Mode(m)
		}
		v, err := strconv.ParseFloat(fields[order], 64)
		if err != nil {
			return nil, p.errorf(err, "invalid value %q", fields[order])
		}
		if err := t.Insert(c, v); err != nil {
			return nil, p.errorf(err, "cannot insert %v", c)
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

type cooParser struct {
	scanner *bufio.Scanner
	line    int
	text    string
}

// next advances to the next non-blank line.
func (p *cooParser) next() bool {
	for p.scanner.Scan() {
		p.line++
		p.text = strings.TrimSpace(p.scanner.Text())
		if p.text != "" {
			return true
		}
	}
	return false
}

// header reads a "key: value" line and returns the trimmed value.
func (p *cooParser) header(key string) (string, error) {
	if !p.next() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", &ParseError{Line: p.line + 1, Msg: fmt.Sprintf("missing %q header", key)}
	}
	k, v, ok := strings.Cut(p.text, ":")
	if !ok || strings.TrimSpace(k) != key {
		return "", p.errorf(nil, "expected %q header", key)
	}
	return strings.TrimSpace(v), nil
}

func (p *cooParser) errorf(err error, format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...), Err: err}
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

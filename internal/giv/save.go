package giv

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

// appendNumber appends the shortest decimal that parses back to f exactly.
func appendNumber(b []byte, f float64) []byte {
	return strconv.AppendFloat(b, f, 'g', -1, 64)
}

// Save writes the dataset as giv text. Attributes in overrides are written
// in place of the dataset's own values for the same keys; the dataset is not
// modified. Attributes come out in sorted key order and the dataset is
// terminated by a blank line.
func (ds *DataSet) Save(w io.Writer, overrides Attribs) error {
	attribs := ds.attribs
	if len(overrides) > 0 {
		attribs = attribs.Merge(overrides)
	}
	var b []byte
	for _, k := range attribs.Keys() {
		b = append(b, '$')
		b = append(b, k...)
		b = append(b, ' ')
		b = append(b, attribs[k]...)
		b = append(b, '\n')
	}
	for _, p := range ds.points {
		switch p.Op {
		case ClosePath:
			b = append(b, "z\n"...)
			continue
		case MoveTo:
			b = append(b, "m "...)
		}
		b = appendNumber(b, p.X)
		b = append(b, ' ')
		b = appendNumber(b, p.Y)
		b = append(b, '\n')
	}
	b = append(b, '\n')
	_, err := w.Write(b)
	return err
}

// WriteTo writes the dataset with its own attributes.
func (ds *DataSet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := ds.Save(cw, nil)
	return cw.n, err
}

// WriteTo writes every dataset in order.
func (g *Giv) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	for _, ds := range g.sets {
		if err := ds.Save(bw, nil); err != nil {
			return cw.n, err
		}
	}
	err := bw.Flush()
	return cw.n, err
}

// Save writes g to the file at path, truncating it.
func (g *Giv) Save(path string) error {
	return g.saveFile(path, "write", os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// SaveAppend writes g to the end of the file at path, creating it if needed.
func (g *Giv) SaveAppend(path string) error {
	return g.saveFile(path, "append", os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

func (g *Giv) saveFile(path, op string, flag int) (err error) {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return &OpenError{Op: op, Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = g.WriteTo(f)
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

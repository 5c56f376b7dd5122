package rowsource

import (
	"bufio"
	"io"
	"sync/atomic"
)

// utf8BOM is the byte order mark Windows tools commonly prepend to CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newBOMSkippingReader returns a reader with a leading UTF-8 BOM removed.
// Inputs without a BOM pass through untouched.
func newBOMSkippingReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(utf8BOM))
	if err == nil && head[0] == utf8BOM[0] && head[1] == utf8BOM[1] && head[2] == utf8BOM[2] {
		// Discard cannot fail after a successful Peek of the same length
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// countingReader tracks bytes read from the underlying reader. The count is
// read from metrics-reporting code, so it is atomic.
type countingReader struct {
	r io.Reader
	n atomic.Int64
}

func newCountingReader(r io.Reader) *countingReader {
	return &countingReader{r: r}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// BytesRead returns the total bytes consumed so far.
func (c *countingReader) BytesRead() int64 {
	return c.n.Load()
}

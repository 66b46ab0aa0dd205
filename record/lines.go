package record

import (
	"bufio"
	"io"
	"strconv"
)

// WriteLines writes one sample per line: the features separated by spaces,
// then the label.
func WriteLines(w io.Writer, lines []Line) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	for _, l := range lines {
		buf = buf[:0]
		for _, f := range l.Features {
			buf = strconv.AppendInt(buf, int64(f), 10)
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, l.Label, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

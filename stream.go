package tablehtml

import (
	"io"
	"iter"
)

// Collect drains seq into a record collection. Tables need every record
// before the header row can be written, so nothing streams through.
func Collect(seq iter.Seq[Record]) Input {
	var rs []Record
	seq(func(rec Record) bool {
		rs = append(rs, rec)
		return true
	})
	return Records(rs...)
}

// CollectChan drains ch into a record collection. It is a thin wrapper
// around [Collect] and returns once ch is closed.
func CollectChan(ch <-chan Record) Input {
	return Collect(chanToIter(ch))
}

// WriteIter renders the records produced by seq as a table fragment.
func (r *Renderer) WriteIter(w io.Writer, seq iter.Seq[Record]) error {
	return r.WriteTable(w, Collect(seq))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}

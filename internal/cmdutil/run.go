package cmdutil

import (
	"context"
	"io"

	"seqio/core/iterator"
)

// Pump pulls every record from it and hands it to send. ctx is checked
// between records, so a blocked read is not interrupted. It returns the
// number of records sent and the first error, which is never io.EOF.
func Pump[T any](ctx context.Context, it *iterator.Iterator[T], send func(T) error) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		rec, err := it.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if err := send(rec); err != nil {
			return total, err
		}
		total++
	}
}

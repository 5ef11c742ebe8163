package listquery

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// A collator keeps scratch buffers and must not be shared between goroutines.
var collator = struct {
	sync.Mutex
	c *collate.Collator
}{c: collate.New(language.English)}

// Text orders by a string field ascending using English collation.
func Text[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int {
		collator.Lock()
		defer collator.Unlock()
		return collator.c.CompareString(field(a), field(b))
	}
}

// DecimalDesc orders by a decimal field, largest first.
func DecimalDesc[T any](field func(T) decimal.Decimal) Comparator[T] {
	return func(a, b T) int { return field(b).Cmp(field(a)) }
}

// IntDesc orders by an integer field, largest first.
func IntDesc[T any](field func(T) int64) Comparator[T] {
	return func(a, b T) int {
		x, y := field(a), field(b)
		switch {
		case x > y:
			return -1
		case x < y:
			return 1
		}
		return 0
	}
}

// DateDesc orders by a time field, most recent first.
func DateDesc[T any](field func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		x, y := field(a), field(b)
		switch {
		case x.After(y):
			return -1
		case x.Before(y):
			return 1
		}
		return 0
	}
}

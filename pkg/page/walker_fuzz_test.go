//go:build fuzz
// +build fuzz

package page_test

import (
	"testing"

	"github.com/ssargent/trackvault/pkg/byteio"
	"github.com/ssargent/trackvault/pkg/page"
)

// FuzzWalker_NeverPanics asserts P1/P2: arbitrary bytes interpreted as a
// page chain must never panic or read out of bounds, and the walk must
// terminate.
func FuzzWalker_NeverPanics(f *testing.F) {
	f.Add(make([]byte, 256), uint32(0), uint32(0), uint32(0))
	f.Add(make([]byte, 40), uint32(7), uint32(0), uint32(0))

	f.Fuzz(func(t *testing.T, data []byte, tableType, firstPage, lastPage uint32) {
		if len(data) > 1<<20 {
			t.Skip("input too large for fuzz test")
		}
		src := byteio.New(data, "fuzz")
		pageLen := 256
		if len(data) >= 512 {
			pageLen = 512
		}
		w := page.NewWalker(src, pageLen, page.TableDescriptor{Type: tableType, FirstPage: firstPage, LastPage: lastPage})

		count := 0
		for {
			_, ok := w.Next()
			if !ok {
				break
			}
			count++
			if count > 1_000_000 {
				t.Fatal("walker did not terminate")
			}
		}
	})
}

package page

import (
	"github.com/cockroachdb/errors"

	"github.com/ssargent/trackvault/pkg/byteio"
)

const (
	minPageLen        = 512
	maxPageLen        = 1 << 20 // 1 MiB
	maxNumTables      = 1000
	fileHeaderSize    = 28
	tableDescStride   = 16
	tableDescListBase = 28
)

// Fatal, top-level decode errors.
var (
	ErrTooSmall      = errors.New("pdb: input shorter than the file header")
	ErrInvalidHeader = errors.New("pdb: invalid file header")
)

// FileHeader is the decoded file-level header: page size and table count.
type FileHeader struct {
	PageLen   int
	NumTables int
}

// ReadFileHeader validates and decodes the 28-byte file header.
func ReadFileHeader(src *byteio.Source) (FileHeader, error) {
	if src.Len() < fileHeaderSize {
		return FileHeader{}, errors.Wrapf(ErrTooSmall, "%s: %d bytes", src.Hint(), src.Len())
	}

	pageLen, err := src.U32LEAt(4)
	if err != nil {
		return FileHeader{}, errors.Wrap(ErrTooSmall, src.Hint())
	}
	numTables, err := src.U32LEAt(8)
	if err != nil {
		return FileHeader{}, errors.Wrap(ErrTooSmall, src.Hint())
	}

	if pageLen < minPageLen || pageLen > maxPageLen {
		return FileHeader{}, errors.Wrapf(ErrInvalidHeader, "%s: page_len=%d", src.Hint(), pageLen)
	}
	if numTables > maxNumTables {
		return FileHeader{}, errors.Wrapf(ErrInvalidHeader, "%s: num_tables=%d", src.Hint(), numTables)
	}

	minSize := fileHeaderSize + tableDescStride*int(numTables)
	if src.Len() < minSize {
		return FileHeader{}, errors.Wrapf(ErrInvalidHeader, "%s: too small for %d tables", src.Hint(), numTables)
	}

	return FileHeader{PageLen: int(pageLen), NumTables: int(numTables)}, nil
}

// ReadTableDescriptors decodes the table descriptor list following the
// file header. Descriptors whose first_page doesn't fit in the file are
// dropped (local/non-fatal, mirroring the row/page error policy).
// last_page is not range-checked here; the walker stops on its own at an
// out-of-range next_page.
func ReadTableDescriptors(src *byteio.Source, hdr FileHeader) []TableDescriptor {
	descs := make([]TableDescriptor, 0, hdr.NumTables)
	for i := 0; i < hdr.NumTables; i++ {
		base := tableDescListBase + i*tableDescStride

		typ, err := src.U32LEAt(base)
		if err != nil {
			continue
		}
		firstPage, err := src.U32LEAt(base + 8)
		if err != nil {
			continue
		}
		lastPage, err := src.U32LEAt(base + 12)
		if err != nil {
			continue
		}

		if !pageIndexFits(firstPage, hdr.PageLen, src.Len()) {
			continue
		}

		descs = append(descs, TableDescriptor{Type: typ, FirstPage: firstPage, LastPage: lastPage})
	}
	return descs
}

func pageIndexFits(idx uint32, pageLen, fileSize int) bool {
	offset := int(idx) * pageLen
	return offset >= 0 && offset+pageLen <= fileSize
}

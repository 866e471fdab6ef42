package linguist

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Extensions recognised by ReadFile, in the order TextDomain tries them.
var fileExtensions = []string{".ts", ".ts.gz", ".ts.zst", ".po", ".mo"}

// ReadFile loads a catalog from path. The format is chosen by the file
// name: ".ts" documents are parsed as is, ".ts.gz" and ".ts.zst" are
// decompressed first, ".po" files are imported with ParsePO and ".mo"
// files with ParseMO.
//
// Errors opening the file are returned unchanged, so that a missing file
// can be detected with errors.Is(err, fs.ErrNotExist). Everything else is
// reported as a *ParseError naming path.
func ReadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, &ParseError{File: path, Err: err}
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, &ParseError{File: path, Err: err}
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".po"):
		return parsePO(f, "", path)
	case strings.HasSuffix(path, ".mo"):
		return parseMO(f, "", path)
	}
	return parseTS(r, path)
}

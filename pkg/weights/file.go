package weights

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// FileError reports a failure reading a weight-vector file. Line is 1-based
// and zero when the error is not tied to a line.
type FileError struct {
	Path string
	Line int
	Err  error
}

func (e *FileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("weights file %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("weights file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// File loads weight vectors from Path: one vector per line, the components
// separated by whitespace or commas, no header. Blank lines are skipped.
type File struct {
	Path string
}

var _ Source = File{}

// FileName is the conventional name of the file holding count vectors of
// dimension m, e.g. W3D_91.dat.
func FileName(m, count int) string {
	return fmt.Sprintf("W%dD_%d.dat", m, count)
}

// Weights reads the file. A count of zero accepts any number of rows.
func (f File) Weights(m, count int) ([][]float64, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, &FileError{Path: f.Path, Err: err}
	}
	defer fh.Close()

	var out [][]float64
	scanner := bufio.NewScanner(fh)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.FieldsFunc(scanner.Text(), func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) != m {
			return nil, &FileError{Path: f.Path, Line: line, Err: framework.DimensionMismatchf("%d components, want %d", len(fields), m)}
		}
		w := make([]float64, m)
		for i, tok := range fields {
			if w[i], err = strconv.ParseFloat(tok, 64); err != nil {
				return nil, &FileError{Path: f.Path, Line: line, Err: err}
			}
		}
		out = append(out, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, &FileError{Path: f.Path, Err: err}
	}

	if len(out) == 0 {
		return nil, &FileError{Path: f.Path, Err: framework.InvalidConfigf("no weight vectors")}
	}
	if count > 0 && len(out) != count {
		return nil, &FileError{Path: f.Path, Err: framework.InvalidConfigf("%d weight vectors, want %d", len(out), count)}
	}
	return out, nil
}

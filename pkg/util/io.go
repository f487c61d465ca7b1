package util

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/mihai-snyk/moea/pkg/framework"
)

const (
	// VariablesFile holds one row of decision variables per solution.
	VariablesFile = "VAR.csv"
	// ObjectivesFile holds one row of objective values per solution.
	ObjectivesFile = "FUN.csv"
)

// FileError reports a failure reading or writing a result or reference
// front file. Line is 1-based and zero when the error is not tied to a line.
type FileError struct {
	Path string
	Line int
	Err  error
}

func (e *FileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func variablesRow(v framework.Variables) ([]string, error) {
	switch x := v.(type) {
	case *framework.RealVariables:
		row := make([]string, len(x.Values))
		for i, val := range x.Values {
			row[i] = formatFloat(val)
		}
		return row, nil
	case *framework.IntegerVariables:
		row := make([]string, len(x.Values))
		for i, val := range x.Values {
			row[i] = strconv.Itoa(val)
		}
		return row, nil
	case *framework.PermutationVariables:
		row := make([]string, len(x.Order))
		for i, val := range x.Order {
			row[i] = strconv.Itoa(val)
		}
		return row, nil
	case *framework.BinaryVariables:
		var sb strings.Builder
		for _, b := range x.Bits {
			if b {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		return []string{sb.String()}, nil
	}
	return nil, framework.InvalidConfigf("cannot write variables of kind %s", v.Kind())
}

// WriteVariables writes the decision variables of population, one solution
// per row. Binary vectors are written as a single bit string.
func WriteVariables(w io.Writer, population []*framework.Solution) error {
	cw := csv.NewWriter(w)
	for _, s := range population {
		row, err := variablesRow(s.Variables)
		if err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteObjectives writes the objective vectors of population, one solution
// per row.
func WriteObjectives(w io.Writer, population []*framework.Solution) error {
	cw := csv.NewWriter(w)
	for _, s := range population {
		row := make([]string, len(s.Objectives))
		for i, v := range s.Objectives {
			row[i] = formatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResult writes VariablesFile and ObjectivesFile into dir. Both files
// are staged under temporary names and only renamed once both are complete,
// so a failure leaves no result file behind.
func WriteResult(dir string, population []*framework.Solution) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &FileError{Path: dir, Err: err}
	}

	writers := []struct {
		name  string
		write func(io.Writer, []*framework.Solution) error
	}{
		{VariablesFile, WriteVariables},
		{ObjectivesFile, WriteObjectives},
	}

	staged := make([]string, 0, len(writers))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}
	for _, wr := range writers {
		f, err := os.CreateTemp(dir, "."+wr.name+"-*")
		if err != nil {
			cleanup()
			return &FileError{Path: filepath.Join(dir, wr.name), Err: err}
		}
		staged = append(staged, f.Name())
		err = wr.write(f, population)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			cleanup()
			return &FileError{Path: filepath.Join(dir, wr.name), Err: err}
		}
	}

	for i, wr := range writers {
		if err := os.Rename(staged[i], filepath.Join(dir, wr.name)); err != nil {
			cleanup()
			return &FileError{Path: filepath.Join(dir, wr.name), Err: err}
		}
	}
	return nil
}

// ReadFront loads a front written one point per row, the values separated
// by whitespace or commas. Blank lines are skipped and every row must have
// as many values as the first one.
func ReadFront(path string) ([]framework.ObjectiveSpacePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	front, err := readFront(f, path)
	if err != nil {
		return nil, err
	}
	if len(front) == 0 {
		return nil, &FileError{Path: path, Err: errors.New("no points")}
	}
	return front, nil
}

func readFront(r io.Reader, path string) ([]framework.ObjectiveSpacePoint, error) {
	var front []framework.ObjectiveSpacePoint
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.FieldsFunc(scanner.Text(), func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		if len(fields) == 0 {
			continue
		}
		if len(front) > 0 && len(fields) != len(front[0]) {
			return nil, &FileError{Path: path, Line: line, Err: framework.DimensionMismatchf("%d values, want %d", len(fields), len(front[0]))}
		}
		point := make(framework.ObjectiveSpacePoint, len(fields))
		for i, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &FileError{Path: path, Line: line, Err: err}
			}
			point[i] = v
		}
		front = append(front, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return front, nil
}

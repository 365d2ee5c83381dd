// Package datafile loads chart values from text files.
package datafile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load reads values from path. See Parse for the format.
func Load(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only data file.
			_ = cerr
		}
	}()
	return Parse(file)
}

// Parse reads one or more values per line, separated by commas or
// whitespace. Blank lines and lines starting with '#' are skipped.
func Parse(r io.Reader) ([]float64, error) {
	var values []float64
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parsed, err := ParseFields(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		values = append(values, parsed...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("data file is empty")
	}
	return values, nil
}

// ParseFields parses a comma or whitespace separated list of numbers.
func ParseFields(input string) ([]float64, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", field)
		}
		values = append(values, v)
	}
	return values, nil
}

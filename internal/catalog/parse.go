package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"veggie-market/internal/model"
)

// cancelCheckInterval is how many lines are read between context checks.
const cancelCheckInterval = 10_000

// readEntries decompresses r and parses one entry per line.
// Blank lines and lines starting with '#' are skipped.
func readEntries(ctx context.Context, r io.Reader, source string) ([]Entry, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var entries []Entry
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		if lineNo%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", source, lineNo, err)
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalogue file %s: %w", source, err)
	}

	return entries, nil
}

// parseLine parses "name,unitPrice". The name may itself contain commas.
func parseLine(line string) (Entry, error) {
	sep := strings.LastIndex(line, ",")
	if sep < 0 {
		return Entry{}, fmt.Errorf("%w: missing unit price", ErrMalformedLine)
	}

	name := strings.TrimSpace(line[:sep])
	if name == "" {
		return Entry{}, fmt.Errorf("%w: empty name", ErrMalformedLine)
	}

	raw := strings.TrimSpace(line[sep+1:])
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: unit price %q is not an integer", ErrMalformedLine, raw)
	}

	price, err := model.NewPrice(value)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: unit price %d out of range", ErrMalformedLine, value)
	}

	return Entry{Name: name, UnitPrice: price}, nil
}

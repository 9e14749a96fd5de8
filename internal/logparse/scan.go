package logparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// filteredStampLayout renders dd-mm-YYYY_HH-MM-SS.
const filteredStampLayout = "02-01-2006_15-04-05"

// Result summarizes one pass over a log.
type Result struct {
	Points  []DataPoint
	Scanned int
	Matched int
}

// Scan reads r line by line. Every tagged line is copied verbatim (line
// terminator included) to w, which may be nil; data point lines are also
// decoded into Result.Points in arrival order. The first undecodable data
// point stops the scan with a *ParseError.
func Scan(r io.Reader, w io.Writer) (Result, error) {
	br := bufio.NewReader(r)
	var res Result
	for {
		line, readErr := br.ReadString('\n')
		if len(line) > 0 {
			res.Scanned++
			if err := res.consume(line, w); err != nil {
				return res, err
			}
		}
		if errors.Is(readErr, io.EOF) {
			return res, nil
		}
		if readErr != nil {
			return res, fmt.Errorf("read line %d: %w", res.Scanned+1, readErr)
		}
	}
}

func (res *Result) consume(line string, w io.Writer) error {
	tag, ok := Classify(line)
	if !ok {
		return nil
	}
	res.Matched++
	if w != nil {
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write filtered line %d: %w", res.Scanned, err)
		}
	}
	if tag != TagMarketDataPoint {
		return nil
	}
	dp, err := ParsePayload(line)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = res.Scanned
		}
		return err
	}
	res.Points = append(res.Points, dp)
	return nil
}

// FilteredLogPath names the filtered copy for a run started at now.
func FilteredLogPath(dir, prefix string, now time.Time) string {
	if prefix == "" {
		prefix = "formatted_output"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.log", prefix, now.Format(filteredStampLayout)))
}

// OpenFilteredLog opens path for appending, creating it and its directory
// when needed. An existing file is never truncated.
func OpenFilteredLog(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open filtered log: %w", err)
	}
	return f, nil
}

// ScanFile scans the log at inputPath and appends its tagged lines to the
// filtered log at outputPath.
func ScanFile(inputPath, outputPath string) (Result, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("open input log: %w", err)
	}
	defer in.Close()

	out, err := OpenFilteredLog(outputPath)
	if err != nil {
		return Result{}, err
	}
	res, scanErr := Scan(in, out)
	if err := out.Close(); err != nil && scanErr == nil {
		scanErr = fmt.Errorf("close filtered log: %w", err)
	}
	return res, scanErr
}

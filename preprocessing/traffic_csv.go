package preprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// WeekDays is the column order of the weekly traffic exports.
var WeekDays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Reference Sunday the weekly pivot is anchored to.
var referenceWeekStart = time.Date(2024, time.July, 7, 0, 0, 0, 0, time.UTC)

const (
	exportTimeLayout    = "3:04 PM"
	recordTimeLayout    = "2006-01-02 15:04:05"
	minWeeklyRowColumns = 8
)

type TrafficRecord struct {
	Timestamp string
	Day       string
	Time      string
	Value     string
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

// MergeCSVDir concatenates every *.csv file of dir into w under the union of
// their headers. Columns a file lacks are left empty. Returns the number of files merged.
func MergeCSVDir(dir string, w io.Writer) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return 0, err
	}
	sort.Strings(paths)

	var header []string
	column := make(map[string]int)
	var tables [][][]string

	for _, path := range paths {
		rows, err := readCSVFile(path)
		if err != nil {
			return 0, err
		}
		if len(rows) == 0 {
			continue
		}
		for _, h := range rows[0] {
			h = strings.TrimSpace(h)
			if _, ok := column[h]; !ok {
				column[h] = len(header)
				header = append(header, h)
			}
		}
		tables = append(tables, rows)
	}

	writer := csv.NewWriter(w)
	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			return 0, err
		}
	}
	for _, rows := range tables {
		fileHeader := rows[0]
		for _, row := range rows[1:] {
			out := make([]string, len(header))
			for i, v := range row {
				if i < len(fileHeader) {
					out[column[strings.TrimSpace(fileHeader[i])]] = v
				}
			}
			if err := writer.Write(out); err != nil {
				return 0, err
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return len(tables), nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := newCSVReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// CleanWeeklyExport flattens a weekly pivot (time, Sunday..Saturday) into one
// record per time slot and day. Short rows, unparsable times and empty or "na"
// values are skipped.
func CleanWeeklyExport(r io.Reader) ([]TrafficRecord, error) {
	reader := newCSVReader(r)

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []TrafficRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < minWeeklyRowColumns {
			continue
		}

		slot := strings.TrimSpace(row[0])
		clock, err := time.Parse(exportTimeLayout, slot)
		if err != nil {
			continue
		}

		for i, day := range WeekDays {
			value := strings.TrimSpace(row[i+1])
			if value == "" || strings.EqualFold(value, "na") {
				continue
			}
			at := referenceWeekStart.AddDate(0, 0, i).Add(
				time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
			records = append(records, TrafficRecord{
				Timestamp: at.Format(recordTimeLayout),
				Day:       day,
				Time:      slot,
				Value:     value,
			})
		}
	}
	return records, nil
}

func WriteRecords(w io.Writer, records []TrafficRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"timestamp", "day", "time", "value"}); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write([]string{rec.Timestamp, rec.Day, rec.Time, rec.Value}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

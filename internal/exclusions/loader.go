package exclusions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/sercha-tagger/internal/logger"
)

// LoadCSV reads the first column of every row after the header.
// Blank terms are skipped. Rows may have differing numbers of fields.
func LoadCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open exclusions: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses exclusion terms from r. See LoadCSV.
func ReadCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var terms []string
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse exclusions: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) == 0 {
			continue
		}
		if term := strings.TrimSpace(record[0]); term != "" {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

// Load reads the exclusion list at path. On any failure it logs a warning
// and returns an empty list so document processing continues.
func Load(path string) []string {
	if path == "" {
		return nil
	}
	terms, err := LoadCSV(path)
	if err != nil {
		logger.Warn("Error loading tag exclusions: %v", err)
		return nil
	}
	logger.Debug("Loaded %d tag exclusions from %s", len(terms), path)
	return terms
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-radar/internal/services"
)

// readDocument returns the text of a PDF or plain text file.
func readDocument(path string, parser services.PDFParserService) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := parser.ExtractText(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
		return text, nil
	}

	return string(data), nil
}

// titleFromPath turns "backend_engineer.pdf" into "backend engineer".
func titleFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(base))
}

package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extraction failure reasons. An ExtractionError wraps exactly one of them.
var (
	ErrNotPDF        = errors.New("not_pdf")
	ErrTooLarge      = errors.New("too_large")
	ErrUnreadable    = errors.New("unreadable")
	ErrEmptyDocument = errors.New("empty")
)

var pdfMagic = []byte("%PDF-")

// ExtractionError is the typed failure of a PDF extraction. Message is safe
// to show to end users; Cause holds the internal error for logs.
type ExtractionError struct {
	Reason  error
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error { return e.Reason }

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextWithMetaData(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

type pdfParserService struct {
	maxSize int64
}

func NewPDFParserService(maxSize int64) PDFParserService {
	return &pdfParserService{maxSize: maxSize}
}

// ExtractText returns the plain text of every readable page, cleaned with
// CleanText. The API and the CLI both read PDFs through it.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	content, err := p.ExtractTextWithMetaData(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func (p *pdfParserService) ExtractTextWithMetaData(data []byte) (content *PDFContent, err error) {
	if p.maxSize > 0 && int64(len(data)) > p.maxSize {
		return nil, &ExtractionError{
			Reason:  ErrTooLarge,
			Message: fmt.Sprintf("PDF exceeds the maximum size of %d bytes.", p.maxSize),
		}
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfMagic) {
		return nil, &ExtractionError{Reason: ErrNotPDF, Message: "File is not a PDF."}
	}

	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = &ExtractionError{Reason: ErrUnreadable, Message: "Error reading PDF.", Cause: fmt.Errorf("%v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Reason: ErrUnreadable, Message: "Error reading PDF.", Cause: err}
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages and keep the rest.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := CleanText(textBuilder.String())
	if text == "" {
		return nil, &ExtractionError{Reason: ErrEmptyDocument, Message: "PDF appears empty or unreadable."}
	}

	return &PDFContent{Text: text, PageCount: totalPage}, nil
}

// ReasonCode returns the machine-readable reason of an extraction failure, or
// "unreadable" for any other error.
func ReasonCode(err error) string {
	for _, reason := range []error{ErrNotPDF, ErrTooLarge, ErrEmptyDocument, ErrUnreadable} {
		if errors.Is(err, reason) {
			return reason.Error()
		}
	}
	return ErrUnreadable.Error()
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}

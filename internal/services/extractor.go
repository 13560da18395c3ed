package services

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// DocumentExtractor turns uploaded resume documents into plain text.
type DocumentExtractor interface {
	Extract(data []byte, filename string) (string, error)
	ExtractFile(filePath string) (string, error)
}

type documentExtractor struct {
	storage TempStorage
}

func NewDocumentExtractor(storage TempStorage) DocumentExtractor {
	return &documentExtractor{storage: storage}
}

// SupportedExtension returns the lower-cased extension of filename without the
// dot, or ErrUnsupportedFormat if it is not pdf, doc or docx.
func SupportedExtension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf", "doc", "docx":
		return ext, nil
	default:
		if ext == "" {
			ext = "(none)"
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Extract writes data to a temp file, reads it with the library matching the
// extension of filename and removes the file again.
func (e *documentExtractor) Extract(data []byte, filename string) (string, error) {
	ext, err := SupportedExtension(filename)
	if err != nil {
		return "", err
	}

	tmpPath, release, err := e.storage.SaveTemp(data, ext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer release()

	return extractByExtension(tmpPath, ext)
}

// ExtractFile reads a document that already lives on disk.
func (e *documentExtractor) ExtractFile(filePath string) (string, error) {
	ext, err := SupportedExtension(filePath)
	if err != nil {
		return "", err
	}
	return extractByExtension(filePath, ext)
}

func extractByExtension(filePath, ext string) (string, error) {
	var (
		text string
		err  error
	)

	switch ext {
	case "pdf":
		text, err = extractPDF(filePath)
	default:
		text, err = extractWord(filePath)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content found in %s document", ErrExtractionFailed, ext)
	}

	return text, nil
}

// extractPDF joins the text of every page with a single space, in page order.
func extractPDF(filePath string) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}

		pages = append(pages, strings.TrimSpace(pageText))
	}

	return strings.Join(pages, " "), nil
}

func extractWord(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open Word document: %w", err)
	}
	defer doc.Close()

	return wordXMLToText(doc.Editable().GetContent())
}

// wordXMLToText reads the runs of a WordprocessingML body. Each paragraph
// becomes one line; tabs and breaks are kept.
func wordXMLToText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		sb     strings.Builder
		inText bool
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br", "cr":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

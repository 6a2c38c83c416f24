package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"contracheque-parser/client"
	"contracheque-parser/dto"
)

// minEmbeddedText is the threshold below which a PDF is treated as
// scanned and routed through OCR.
const minEmbeddedText = 20

// DocumentContent is the raw output of extraction: the concatenated text
// of all pages (page breaks preserved as newlines) and every table grid
// found.
type DocumentContent struct {
	Text   string
	Tables []Table
}

// PDFProcessor opens a PDF on disk and extracts its text and table grids.
type PDFProcessor interface {
	Extract(path string) (*DocumentContent, error)
}

type pdfProcessor struct {
	ocr    *client.TesseractClient
	logger *zap.Logger
}

// NewPDFProcessor builds the extractor. ocr may be nil, in which case
// scanned PDFs fail with an ExtractionError instead of falling back.
func NewPDFProcessor(ocr *client.TesseractClient, logger *zap.Logger) PDFProcessor {
	return &pdfProcessor{ocr: ocr, logger: logger}
}

// Extract reads all pages of the PDF at path. Pages that error are
// skipped with a warning; a document yielding no text and no tables at
// all is fatal.
func (p *pdfProcessor) Extract(path string) (*DocumentContent, error) {
	name := filepath.Base(path)

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &dto.ExtractionError{File: name, Err: err}
	}
	defer f.Close()

	var pages []string
	var tables []Table
	for i := 1; i <= r.NumPage(); i++ {
		text, pageTables, err := p.extractPage(r, i)
		if err != nil {
			p.logger.Warn("skipping unreadable page",
				zap.String("file", name), zap.Int("page", i), zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
		tables = append(tables, pageTables...)
	}

	doc := &DocumentContent{Text: strings.Join(pages, "\n"), Tables: tables}

	if len(strings.TrimSpace(doc.Text)) < minEmbeddedText && p.ocr != nil {
		p.logger.Info("minimal embedded text, attempting OCR", zap.String("file", name))
		ocrText, ocrErr := p.extractViaOCR(path)
		if ocrErr != nil {
			p.logger.Warn("OCR fallback failed", zap.String("file", name), zap.Error(ocrErr))
		} else if len(strings.TrimSpace(ocrText)) > len(strings.TrimSpace(doc.Text)) {
			doc.Text = ocrText
			doc.Tables = append(doc.Tables, tablesFromText(ocrText)...)
		}
	}

	if strings.TrimSpace(doc.Text) == "" && len(doc.Tables) == 0 {
		return nil, &dto.ExtractionError{File: name, Err: dto.ErrNoContent}
	}
	return doc, nil
}

// extractPage recovers from parser panics on malformed pages so a single
// bad page does not abort the whole document.
func (p *pdfProcessor) extractPage(r *pdf.Reader, n int) (text string, tables []Table, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: %v", n, rec)
		}
	}()
	page := r.Page(n)
	if page.V.IsNull() {
		return "", nil, nil
	}
	text, tables = buildPage(page.Content().Text)
	return text, tables, nil
}

// extractViaOCR pulls the embedded page images out of a scanned PDF and
// runs them through tesseract, concatenating page texts with newlines.
func (p *pdfProcessor) extractViaOCR(path string) (string, error) {
	tempDir, err := os.MkdirTemp("", "payslip_images")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, tempDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return "", fmt.Errorf("failed to read temp dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, n := range names {
		text, err := p.ocr.ExtractTextFromImage(filepath.Join(tempDir, n))
		if err != nil {
			p.logger.Warn("OCR failed for page image", zap.String("image", n), zap.Error(err))
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

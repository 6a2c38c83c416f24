package client

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient wraps the tesseract OCR engine for scanned payslips.
// Brazilian payslips need the Portuguese traineddata ("por").
type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath, language string) *TesseractClient {
	if language == "" {
		language = "por"
	}
	return &TesseractClient{dataPath: dataPath, language: language}
}

// ExtractTextFromImage runs OCR over an image file on disk.
func (tc *TesseractClient) ExtractTextFromImage(path string) (string, error) {
	c := gosseract.NewClient()
	defer c.Close()

	if tc.dataPath != "" {
		if err := c.SetTessdataPrefix(tc.dataPath); err != nil {
			return "", fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	if err := c.SetLanguage(tc.language); err != nil {
		return "", fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := c.SetImage(path); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("OCR extraction failed: %w", err)
	}
	return text, nil
}

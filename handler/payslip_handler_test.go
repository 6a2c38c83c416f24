package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contracheque-parser/dto"
	"contracheque-parser/service"
)

const payslipText = `MINISTÉRIO DA DEFESA
PREC-CP NOME OM DE VINCULAÇÃO
96 0611145 RENATO TERRES HELLMANN CMDO 1 RM
CPF 061.114.500-10 063 1234 56789
MÊS
MAIO 2024
`

type stubProcessor struct {
	content *service.DocumentContent
	err     error
}

func (s *stubProcessor) Extract(string) (*service.DocumentContent, error) {
	return s.content, s.err
}

func newTestRouter(processor service.PDFProcessor, maxFileSize int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	svc := service.NewPayslipService(processor, logger)
	h := NewPayslipHandler(svc, logger, maxFileSize)

	router := gin.New()
	router.POST("/api/v1/payslips/parse", h.ParsePayslip)
	return router
}

func uploadRequest(t *testing.T, filename string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips/parse", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestParsePayslipEndpoint(t *testing.T) {
	processor := &stubProcessor{content: &service.DocumentContent{Text: payslipText}}
	router := newTestRouter(processor, 10<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "Contracheque052024.pdf", []byte("%PDF-1.4 fake")))

	require.Equal(t, http.StatusOK, w.Code)

	var record dto.ParsedPayslip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "RENATO TERRES HELLMANN", record.Employee.Name)
	assert.Equal(t, "061.114.500-10", record.Employee.CPF)
	assert.Equal(t, "2024-05", record.Period)
	assert.Equal(t, dto.LayoutMilitary, record.Layout)
	// Clients see the upload name, not the spooled temp file.
	assert.Equal(t, "Contracheque052024.pdf", record.SourceFile)
}

func TestParsePayslipDigitlessFilenameNoFabricatedCode(t *testing.T) {
	// The upload is spooled under its own basename; digits from a
	// generated temp name must never surface as the employee code, which
	// is a dedup key downstream.
	text := "RECEITAS (R$)\nNome: MARIA DA SILVA\nDemonstrativo de pagamento\n"
	processor := &stubProcessor{content: &service.DocumentContent{Text: text}}
	router := newTestRouter(processor, 10<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "Holerite.pdf", []byte("%PDF-1.4 fake")))

	require.Equal(t, http.StatusOK, w.Code)

	var record dto.ParsedPayslip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Empty(t, record.Employee.EmployeeCode)
	assert.Empty(t, record.Period)
	assert.Equal(t, "Holerite.pdf", record.SourceFile)
}

func TestParsePayslipMissingFile(t *testing.T) {
	router := newTestRouter(&stubProcessor{}, 10<<20)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips/parse", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PARSE_FAILED", resp.Error)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestParsePayslipFileTooLarge(t *testing.T) {
	router := newTestRouter(&stubProcessor{}, 16)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "big.pdf", bytes.Repeat([]byte("a"), 64)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestParsePayslipUnprocessable(t *testing.T) {
	processor := &stubProcessor{err: &dto.ExtractionError{File: "x.pdf", Err: dto.ErrNoContent}}
	router := newTestRouter(processor, 10<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "x.pdf", []byte("not a pdf")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

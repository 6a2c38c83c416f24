package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contracheque-parser/dto"
	"contracheque-parser/service"
)

type PayslipHandler struct {
	payslipService *service.PayslipService
	logger         *zap.Logger
	maxFileSize    int64
}

func NewPayslipHandler(payslipService *service.PayslipService, logger *zap.Logger, maxFileSize int64) *PayslipHandler {
	return &PayslipHandler{
		payslipService: payslipService,
		logger:         logger,
		maxFileSize:    maxFileSize,
	}
}

// ParsePayslip handles POST /payslips/parse: one uploaded PDF in, the
// structured payroll record out. An incomplete record still returns 200;
// the caller routes those to manual review.
func (h *PayslipHandler) ParsePayslip(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", dto.ErrMissingFile)
		return
	}
	if fileHeader.Size > h.maxFileSize {
		h.sendError(c, http.StatusRequestEntityTooLarge, "File too large", nil)
		return
	}

	tempPath, cleanup, err := h.saveTempFile(fileHeader)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to store upload", err)
		return
	}
	defer cleanup()

	record, err := h.payslipService.ParsePayslip(tempPath)
	if err != nil {
		var extractionErr *dto.ExtractionError
		if errors.As(err, &extractionErr) {
			h.sendError(c, http.StatusUnprocessableEntity, "Cannot process this file", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Failed to parse payslip", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// saveTempFile spools the upload to disk; the extractor works on file
// paths. The file keeps the upload's own basename inside a private temp
// directory: the filename-based period and employee-code fallbacks read
// digits out of the name, so no generated characters may leak into it.
func (h *PayslipHandler) saveTempFile(fileHeader *multipart.FileHeader) (string, func(), error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	tempDir, err := os.MkdirTemp("", "payslip-upload")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(tempDir) }

	name := filepath.Base(fileHeader.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = "upload.pdf"
	}
	tempPath := filepath.Join(tempDir, name)

	dst, err := os.Create(tempPath)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		cleanup()
		return "", nil, err
	}
	return tempPath, cleanup, nil
}

func (h *PayslipHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.Error(message, zap.Error(err))
	}
	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "PARSE_FAILED",
		Message: message,
		Code:    statusCode,
	})
}

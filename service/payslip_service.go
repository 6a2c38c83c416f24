package service

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"contracheque-parser/dto"
	"contracheque-parser/utils"
	"contracheque-parser/utils/rank"
)

// militaryMarkers and civilianMarkers drive layout detection. The checks
// run in this order and military wins when a document matches both: the
// military markers are institution-specific strings, while the civilian
// ones are generic accounting labels that also show up on some military
// statements.
var (
	militaryMarkers = []string{"PREC-CP", "P/G REAL", "CMDO", "MINISTÉRIO DA DEFESA", "MINISTERIO DA DEFESA"}
	civilianMarkers = []string{"RECEITAS (R$)", "DESPESAS (R$)", "MATRÍCULA", "MATRICULA"}
)

// PayslipService runs the full extraction pipeline for one document per
// call. It holds no per-document state, so independent calls may run
// concurrently; the lookup tables it reads are immutable after init.
type PayslipService struct {
	processor PDFProcessor
	logger    *zap.Logger
}

func NewPayslipService(processor PDFProcessor, logger *zap.Logger) *PayslipService {
	return &PayslipService{processor: processor, logger: logger}
}

// ParsePayslip converts the PDF at path into a structured payroll
// record. The only fatal condition is a document yielding no content at
// all (ExtractionError); every other problem degrades to a logged
// warning on an otherwise returned record.
func (s *PayslipService) ParsePayslip(path string) (*dto.ParsedPayslip, error) {
	filename := filepath.Base(path)
	log := s.logger.With(
		zap.String("parse_id", uuid.NewString()),
		zap.String("file", filename),
	)

	content, err := s.processor.Extract(path)
	if err != nil {
		return nil, err
	}
	return s.parseContent(content, filename, log), nil
}

func (s *PayslipService) parseContent(content *DocumentContent, filename string, log *zap.Logger) *dto.ParsedPayslip {
	layout := DetectLayout(content.Text)
	log.Info("parsing payslip", zap.String("layout", string(layout)))

	cls := classifier{logger: log}
	asm := assembler{logger: log}

	employee := s.locateEmployee(content.Text, filename, layout, log)

	period, ok := utils.FindPeriod(content.Text, filename)
	if !ok {
		log.Warn("reference period not found in text or filename")
	}

	var earnings []dto.Earning
	var deductions []dto.Deduction
	var reported reportedTotals
	for _, raw := range content.Tables {
		table := NormalizeTable(raw)
		cols, headerIdx, ok := ResolveColumns(table)
		if !ok {
			// Incidental, non-financial table.
			continue
		}
		for _, row := range table[headerIdx+1:] {
			e, d := cls.ClassifyRow(row, cols)
			if e != nil {
				earnings = append(earnings, *e)
			}
			if d != nil {
				deductions = append(deductions, *d)
			}
		}
		tableReported := extractReportedTotals(table, cols, headerIdx)
		if tableReported.Gross != nil {
			reported.Gross = tableReported.Gross
		}
		if tableReported.Deductions != nil {
			reported.Deductions = tableReported.Deductions
		}
		if tableReported.Net != nil {
			reported.Net = tableReported.Net
		}
	}

	return asm.Assemble(employee, period, earnings, deductions, reported, layout, filename, content.Text)
}

func (s *PayslipService) locateEmployee(text, filename string, layout dto.Layout, log *zap.Logger) dto.EmployeeIdentity {
	var employee dto.EmployeeIdentity

	if cpf, ok := utils.FindCPF(text); ok {
		employee.CPF = cpf
	} else {
		log.Warn("no valid CPF found in payslip")
	}

	codeClean, codeRaw, ok := utils.FindEmployeeCode(text)
	if ok {
		employee.EmployeeCode = codeClean
	} else if fromName, found := utils.FindEmployeeCodeInFilename(filename); found {
		employee.EmployeeCode = fromName
		log.Info("employee code taken from filename", zap.String("code", fromName))
	} else {
		log.Warn("no employee code found")
	}

	if name, found := utils.FindName(text, codeRaw, codeClean); found {
		employee.Name = name
	} else {
		log.Warn("no employee name found")
	}

	if layout == dto.LayoutMilitary {
		realCode, paymentCode := rank.FindCodes(text)
		if realCode != "" {
			employee.RankCode = realCode
			employee.Rank = rank.FromCode(realCode).FullName
		}
		if paymentCode != "" {
			employee.PaymentRank = rank.FromCode(paymentCode).FullName
		}
		if bank, found := utils.FindBankInfo(text); found {
			employee.BankInfo = bank
		}
	}
	return employee
}

// DetectLayout keys off distinctive letterhead keywords in the leading
// few KB of text. Military markers are tested first and take precedence.
func DetectLayout(text string) dto.Layout {
	head := text
	if len(head) > 4096 {
		head = head[:4096]
	}
	folded := utils.Fold(head)
	for _, marker := range militaryMarkers {
		if strings.Contains(folded, utils.Fold(marker)) {
			return dto.LayoutMilitary
		}
	}
	for _, marker := range civilianMarkers {
		if strings.Contains(folded, utils.Fold(marker)) {
			return dto.LayoutCivilian
		}
	}
	return dto.LayoutCivilian
}

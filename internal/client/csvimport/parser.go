// Package csvimport reads client lists exported from spreadsheets.
//
// The header row may be preceded by free text; it is located by looking for
// the name and tax id columns. Headers are recognised in Spanish or English
// regardless of case and accents typed in another charset.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/client"
	"github.com/MrJamesThe3rd/facturaas/internal/encoding"
)

type field int

const (
	fieldName field = iota
	fieldTaxID
	fieldAddress
	fieldLocality
	fieldPostalCode
	fieldProvince
	fieldEmail
	fieldPhone
	fieldBankAccount
)

// Folded header spellings accepted for each field.
var aliases = map[string]field{
	"nombre":          fieldName,
	"name":            fieldName,
	"razón social":    fieldName,
	"nif":             fieldTaxID,
	"cif":             fieldTaxID,
	"tax id":          fieldTaxID,
	"vat":             fieldTaxID,
	"domicilio":       fieldAddress,
	"dirección":       fieldAddress,
	"address":         fieldAddress,
	"localidad":       fieldLocality,
	"locality":        fieldLocality,
	"city":            fieldLocality,
	"código postal":   fieldPostalCode,
	"cp":              fieldPostalCode,
	"postal code":     fieldPostalCode,
	"provincia":       fieldProvince,
	"province":        fieldProvince,
	"email":           fieldEmail,
	"e-mail":          fieldEmail,
	"teléfono":        fieldPhone,
	"telefono":        fieldPhone,
	"phone":           fieldPhone,
	"cuenta bancaria": fieldBankAccount,
	"iban":            fieldBankAccount,
	"bank account":    fieldBankAccount,
}

var separators = []rune{';', ','}

// Result is the outcome of parsing one file.
type Result struct {
	Clients []client.Params
	Charset string
	// Skipped counts blank data rows.
	Skipped int
}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse decodes r and returns one client per data row. A data row with a
// tax id but no name, or the reverse, is a validation error naming the line.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	for _, sep := range separators {
		rows, err := readRows(raw, sep)
		if err != nil {
			return nil, err
		}

		cols, headerIdx, ok := findHeader(rows)
		if !ok {
			continue
		}

		res, err := parseRows(cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		res.Charset = charset

		return res, nil
	}

	return nil, apperr.Validation("no header row with name and tax id columns found")
}

func readRows(raw []byte, sep rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.Validation("malformed csv: %v", err)
	}

	return rows, nil
}

// colIndex maps each recognised field to its column.
type colIndex map[field]int

func findHeader(rows [][]string) (colIndex, int, bool) {
	fold := cases.Fold()

	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			f, ok := aliases[fold.String(strings.TrimSpace(cell))]
			if !ok {
				continue
			}

			if _, dup := cols[f]; !dup {
				cols[f] = i
			}
		}

		_, hasName := cols[fieldName]
		_, hasTaxID := cols[fieldTaxID]

		if hasName && hasTaxID {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

// parseRows converts data rows. firstLine is the 0-based index of the first
// data row in the file, used for 1-based line numbers in errors.
func parseRows(cols colIndex, rows [][]string, firstLine int) (*Result, error) {
	res := &Result{}

	for i, row := range rows {
		line := firstLine + i + 1

		params := client.Params{
			Name:        cell(row, cols, fieldName),
			TaxID:       cell(row, cols, fieldTaxID),
			Address:     cell(row, cols, fieldAddress),
			Locality:    cell(row, cols, fieldLocality),
			PostalCode:  cell(row, cols, fieldPostalCode),
			Province:    cell(row, cols, fieldProvince),
			Email:       cell(row, cols, fieldEmail),
			Phone:       cell(row, cols, fieldPhone),
			BankAccount: strings.ReplaceAll(cell(row, cols, fieldBankAccount), " ", ""),
		}

		switch {
		case params.Name == "" && params.TaxID == "":
			res.Skipped++
			continue
		case params.Name == "":
			return nil, apperr.Validation("line %d: missing name", line)
		case params.TaxID == "":
			return nil, apperr.Validation("line %d: missing tax id", line)
		}

		res.Clients = append(res.Clients, params)
	}

	return res, nil
}

func cell(row []string, cols colIndex, f field) string {
	idx, ok := cols[f]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

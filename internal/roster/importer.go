package roster

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"LoginApp/internal/accounts"
)

// Worksheet layout contract: rows 1-2 are title/header rows, data starts
// at row 3, columns are fixed by position.
const (
	firstDataRow = 3
	colRollNo    = 2
	colName      = 3
	colRegNo     = 4
	colMobile    = 5
	colEmail     = 6
)

// StudentStore is the slice of the student repository the importer needs.
type StudentStore interface {
	FindByEmailOrRegNo(ctx context.Context, email, regNo string) (*accounts.Student, error)
	Create(ctx context.Context, student *accounts.Student) error
}

// PasswordHasher produces the stored hash for an imported student's
// initial password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Summary is the aggregate outcome of one import run. Per-row problems
// are never surfaced individually, only counted.
type Summary struct {
	Inserted int
	Skipped  int
}

// Importer converts an uploaded workbook into validated, deduplicated
// student records. Rows are processed strictly in worksheet order, one at
// a time.
type Importer struct {
	store  StudentStore
	hasher PasswordHasher
	logger *zap.Logger
}

func NewImporter(repo *accounts.StudentRepository, logger *zap.Logger) *Importer {
	return &Importer{store: repo, hasher: accounts.BcryptHasher{}, logger: logger}
}

// Import scans data rows 3..rowCount of the first worksheet. A row is
// skipped when regNo, name or email is empty after normalization, or when
// a student with the same email or regNo already exists; otherwise a
// student is created with the registration number as the initial
// password. The initial password convention lets students log in with a
// credential they already know.
//
// Errors wrapping ErrInvalidWorkbook mean the upload was unreadable; any
// other error is a store failure that aborted the scan. A duplicate key
// error from a concurrent insert is settled by the unique index and
// counted as skipped.
func (imp *Importer) Import(ctx context.Context, buf []byte) (Summary, error) {
	ws, err := OpenWorksheet(buf)
	if err != nil {
		return Summary{}, err
	}
	defer ws.Close()

	var summary Summary
	for row := firstDataRow; row <= ws.RowCount(); row++ {
		rollNo := NormalizeCell(ws.Cell(row, colRollNo))
		name := NormalizeCell(ws.Cell(row, colName))
		regNo := NormalizeCell(ws.Cell(row, colRegNo))
		mobile := NormalizeCell(ws.Cell(row, colMobile))
		email := strings.ToLower(NormalizeCell(ws.Cell(row, colEmail)))

		if regNo == "" || name == "" || email == "" {
			summary.Skipped++
			continue
		}

		existing, err := imp.store.FindByEmailOrRegNo(ctx, email, regNo)
		if err != nil {
			return summary, err
		}
		if existing != nil {
			summary.Skipped++
			continue
		}

		hash, err := imp.hasher.Hash(regNo)
		if err != nil {
			return summary, err
		}

		student := &accounts.Student{
			RollNo:       rollNo,
			Name:         name,
			RegNo:        regNo,
			Mobile:       mobile,
			Email:        email,
			PasswordHash: hash,
		}
		if err := imp.store.Create(ctx, student); err != nil {
			if errors.Is(err, accounts.ErrDuplicateStudent) {
				summary.Skipped++
				continue
			}
			return summary, err
		}
		summary.Inserted++
	}

	imp.logger.Info("student import finished",
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

package submission

import (
	"context"
	"projectform/persistence"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
)

var (
	CreateSubmissionFunc = CreateSubmission
	ExistsSubmissionFunc = ExistsSubmission
)

const mysqlDuplicateEntry = 1062

// CreateSubmission performs the create-if-absent write keyed by the
// enrollment number. A key conflict never mutates the existing record and is
// reported as ErrAlreadySubmitted; any other backend failure is wrapped as a
// generic store failure.
func CreateSubmission(ctx context.Context, record *Submission) error {
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).Create(record).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrAlreadySubmitted
		}
		return &StoreFailureError{Cause: err}
	}
	return nil
}

// ExistsSubmission is a diagnostic point lookup, not on the admission path.
func ExistsSubmission(ctx context.Context, enrollmentNumber string) (bool, error) {
	record := Submission{}
	err := persistence.ActiveDataSourceManager.GormDB(ctx).
		Where(&Submission{EnrollmentNumber: enrollmentNumber}).First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, &StoreFailureError{Cause: err}
	}
	return true, nil
}

func isDuplicateKeyError(err error) bool {
	if mysqlErr, ok := err.(*mysql.MySQLError); ok {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}

package submission

import (
	"context"
	"projectform/common"
	"projectform/persistence"
	"strings"
)

var (
	CheckDuplicateFunc     = CheckDuplicate
	LoadAllSubmissionsFunc = LoadAllSubmissions
)

// LoadAllSubmissions returns every stored submission in store-iteration order.
func LoadAllSubmissions(ctx context.Context) ([]Submission, error) {
	records := []Submission{}
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CheckDuplicate scans the stored submissions for business-uniqueness
// collisions with the candidate. The first record with at least one colliding
// field ends the scan, and every colliding field of that record is reported.
// A scan error fails open: the atomic create on the enrollment number stays
// the final guard. A candidate with any empty field skips the scan.
func CheckDuplicate(ctx context.Context, candidate Submission) DuplicateCheckResult {
	if candidate.Email == "" || candidate.EnrollmentNumber == "" || candidate.FullName == "" ||
		candidate.ContactNumber == "" || candidate.SourceURL == "" {
		return DuplicateCheckResult{}
	}

	records, err := LoadAllSubmissionsFunc(ctx)
	if err != nil {
		common.Log.Warnf("duplicate scan failed, falling back to the store-level guard: %v", err)
		return DuplicateCheckResult{}
	}

	for _, record := range records {
		conflicts := collidingFields(candidate, record)
		if len(conflicts) > 0 {
			return DuplicateCheckResult{Duplicate: true, Conflicts: conflicts}
		}
	}
	return DuplicateCheckResult{}
}

func collidingFields(candidate, stored Submission) []FieldConflict {
	conflicts := []FieldConflict{}
	if strings.EqualFold(candidate.Email, stored.Email) {
		conflicts = append(conflicts, FieldConflict{Field: FieldEmail, ConflictingValue: stored.Email})
	}
	if candidate.EnrollmentNumber == stored.EnrollmentNumber {
		conflicts = append(conflicts, FieldConflict{Field: FieldEnrollmentNumber, ConflictingValue: stored.EnrollmentNumber})
	}
	if strings.EqualFold(candidate.FullName, stored.FullName) {
		conflicts = append(conflicts, FieldConflict{Field: FieldFullName, ConflictingValue: stored.FullName})
	}
	if candidate.ContactNumber == stored.ContactNumber {
		conflicts = append(conflicts, FieldConflict{Field: FieldContactNumber, ConflictingValue: stored.ContactNumber})
	}
	if strings.EqualFold(candidate.SourceURL, stored.SourceURL) {
		conflicts = append(conflicts, FieldConflict{Field: FieldSourceURL, ConflictingValue: stored.SourceURL})
	}
	return conflicts
}

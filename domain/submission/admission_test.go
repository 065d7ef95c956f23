package submission_test

import (
	"context"
	"projectform/domain/submission"
	"projectform/notification"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type allowAllThrottle struct {
}

func (t *allowAllThrottle) Allow() bool {
	return true
}

var _ = Describe("AdmissionController", func() {
	var (
		controller *submission.AdmissionController

		createdRecords []submission.Submission
		sentMails      [][4]string
		sendResult     bool
		createResult   error
		checkResult    submission.DuplicateCheckResult
	)

	validCreation := submission.SubmissionCreation{
		Email: "A@B.com", EnrollmentNumber: "123456789012", FullName: "Jane Doe",
		ContactNumber: "9876543210", ProjectName: "Demo", SourceURL: "https://x.com/y",
	}

	BeforeEach(func() {
		controller = submission.NewAdmissionController()
		controller.Throttle = &allowAllThrottle{}

		createdRecords = []submission.Submission{}
		sentMails = [][4]string{}
		sendResult = true
		createResult = nil
		checkResult = submission.DuplicateCheckResult{}

		submission.CheckDuplicateFunc = func(ctx context.Context, candidate submission.Submission) submission.DuplicateCheckResult {
			return checkResult
		}
		submission.CreateSubmissionFunc = func(ctx context.Context, record *submission.Submission) error {
			if createResult == nil {
				createdRecords = append(createdRecords, *record)
			}
			return createResult
		}
		submission.SendConfirmationFunc = func(email, fullName, projectName, enrollmentNumber string) bool {
			sentMails = append(sentMails, [4]string{email, fullName, projectName, enrollmentNumber})
			return sendResult
		}
		// run the fire-and-forget task synchronously
		submission.AsyncRunnerFunc = func(task func()) { task() }
	})
	AfterEach(func() {
		submission.CheckDuplicateFunc = submission.CheckDuplicate
		submission.CreateSubmissionFunc = submission.CreateSubmission
		submission.SendConfirmationFunc = notification.SendConfirmation
		submission.AsyncRunnerFunc = func(task func()) { go task() }
	})

	Describe("Submit", func() {
		It("should run the whole admission pipeline on valid input", func() {
			result, err := controller.Submit(context.Background(), validCreation)
			Expect(err).To(BeNil())
			Expect(result).ToNot(BeNil())
			Expect(result.State).To(Equal(submission.StateSuccess))
			Expect(result.AttemptID > 0).To(BeTrue())

			Expect(result.Record.Email).To(Equal("a@b.com"))
			Expect(result.Record.EnrollmentNumber).To(Equal("123456789012"))
			Expect(result.Record.SubmittedAt.Time().IsZero()).To(BeFalse())

			Expect(len(createdRecords)).To(Equal(1))
			Expect(createdRecords[0].Email).To(Equal("a@b.com"))
			Expect(sentMails).To(Equal([][4]string{{"a@b.com", "Jane Doe", "Demo", "123456789012"}}))

			status := controller.Latest()
			Expect(status).ToNot(BeNil())
			Expect(status.State).To(Equal(submission.StateSuccess))
			Expect(status.Notification).To(Equal(submission.NotificationSent))
			Expect(*status.Record).To(Equal(*result.Record))
		})

		It("should reject invalid input with every message and touch neither store nor mail", func() {
			invalid := validCreation
			invalid.EnrollmentNumber = "12345"
			invalid.ContactNumber = "5555555555"

			result, err := controller.Submit(context.Background(), invalid)
			Expect(result).To(BeNil())
			invalidErr, ok := err.(*submission.InvalidSubmissionError)
			Expect(ok).To(BeTrue())
			Expect(invalidErr.Messages).To(Equal([]string{
				"Enrollment Number must be exactly 12 digits",
				"Contact Number cannot be all identical digits",
			}))

			Expect(createdRecords).To(BeEmpty())
			Expect(sentMails).To(BeEmpty())
			Expect(controller.Latest()).To(BeNil())
		})

		It("should reject a duplicate candidate before the store write", func() {
			checkResult = submission.DuplicateCheckResult{Duplicate: true, Conflicts: []submission.FieldConflict{
				{Field: submission.FieldEmail, ConflictingValue: "a@b.com"},
			}}

			result, err := controller.Submit(context.Background(), validCreation)
			Expect(result).To(BeNil())
			duplicateErr, ok := err.(*submission.DuplicateRecordError)
			Expect(ok).To(BeTrue())
			Expect(duplicateErr.Conflicts).To(Equal(checkResult.Conflicts))

			Expect(createdRecords).To(BeEmpty())
			Expect(sentMails).To(BeEmpty())
		})

		It("should surface a store conflict and return to idle", func() {
			createResult = submission.ErrAlreadySubmitted

			result, err := controller.Submit(context.Background(), validCreation)
			Expect(result).To(BeNil())
			Expect(err).To(Equal(submission.ErrAlreadySubmitted))
			Expect(sentMails).To(BeEmpty())
			Expect(controller.Latest()).To(BeNil())

			// the pipeline is free again for the next attempt
			createResult = nil
			result, err = controller.Submit(context.Background(), validCreation)
			Expect(err).To(BeNil())
			Expect(result.State).To(Equal(submission.StateSuccess))
		})

		It("should keep the accepted submission when the notification fails", func() {
			sendResult = false

			result, err := controller.Submit(context.Background(), validCreation)
			Expect(err).To(BeNil())
			Expect(result.State).To(Equal(submission.StateSuccess))

			status := controller.Latest()
			Expect(status.Notification).To(Equal(submission.NotificationFailed))
			Expect(len(createdRecords)).To(Equal(1))
		})

		It("should reject a re-entrant submit while one is in flight", func() {
			var nestedErr error
			submission.CheckDuplicateFunc = func(ctx context.Context, candidate submission.Submission) submission.DuplicateCheckResult {
				_, nestedErr = controller.Submit(ctx, validCreation)
				return submission.DuplicateCheckResult{}
			}

			result, err := controller.Submit(context.Background(), validCreation)
			Expect(err).To(BeNil())
			Expect(result.State).To(Equal(submission.StateSuccess))
			Expect(nestedErr).To(Equal(submission.ErrSubmissionInFlight))
			Expect(len(createdRecords)).To(Equal(1))
		})

		It("should reject the second attempt inside the cooldown window with no store write", func() {
			controller = submission.NewAdmissionController()

			result, err := controller.Submit(context.Background(), validCreation)
			Expect(err).To(BeNil())
			Expect(result.State).To(Equal(submission.StateSuccess))

			result, err = controller.Submit(context.Background(), validCreation)
			Expect(result).To(BeNil())
			Expect(err).To(Equal(submission.ErrTooFrequent))
			Expect(len(createdRecords)).To(Equal(1))
		})

		It("should apply the cooldown regardless of the outcome of the accepted attempt", func() {
			controller = submission.NewAdmissionController()

			invalid := validCreation
			invalid.Email = "bad"
			_, err := controller.Submit(context.Background(), invalid)
			_, ok := err.(*submission.InvalidSubmissionError)
			Expect(ok).To(BeTrue())

			_, err = controller.Submit(context.Background(), validCreation)
			Expect(err).To(Equal(submission.ErrTooFrequent))
			Expect(createdRecords).To(BeEmpty())
		})
	})

	Describe("Reset", func() {
		It("should clear the retained record and return to idle", func() {
			result, err := controller.Submit(context.Background(), validCreation)
			Expect(err).To(BeNil())
			Expect(result.State).To(Equal(submission.StateSuccess))
			Expect(controller.Latest()).ToNot(BeNil())

			controller.Reset()
			Expect(controller.Latest()).To(BeNil())

			result, err = controller.Submit(context.Background(), validCreation)
			Expect(err).To(BeNil())
			Expect(result.State).To(Equal(submission.StateSuccess))
		})
	})
})

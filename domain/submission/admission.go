package submission

import (
	"context"
	"projectform/common"
	"projectform/idgen"
	"projectform/notification"
	"sync"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
	"golang.org/x/time/rate"
)

type AdmissionState string

const (
	StateIdle               AdmissionState = "Idle"
	StateValidating         AdmissionState = "Validating"
	StateCheckingDuplicates AdmissionState = "CheckingDuplicates"
	StateSaving             AdmissionState = "Saving"
	StateNotifying          AdmissionState = "Notifying"
	StateSuccess            AdmissionState = "Success"
)

type NotificationState string

const (
	NotificationPending NotificationState = "Pending"
	NotificationSent    NotificationState = "Sent"
	NotificationFailed  NotificationState = "Failed"
)

const SubmitCooldown = 3 * time.Second

var (
	attemptIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	// AsyncRunnerFunc dispatches the fire-and-forget notification task.
	AsyncRunnerFunc = func(task func()) { go task() }

	SendConfirmationFunc = notification.SendConfirmation
)

type SubmitThrottle interface {
	Allow() bool
}

type AdmissionResult struct {
	AttemptID types.ID       `json:"attemptId"`
	State     AdmissionState `json:"state"`
	Record    *Submission    `json:"record"`
}

type AdmissionStatus struct {
	State        AdmissionState    `json:"state"`
	Record       *Submission       `json:"record"`
	Notification NotificationState `json:"notification"`
}

// AdmissionController owns the admission pipeline of one form session:
// validate, check duplicates, save, notify. One accepted submit attempt is
// granted per cooldown window, whatever its outcome, and a second submit is
// rejected while one is still in flight.
type AdmissionController struct {
	Throttle SubmitThrottle

	mutex        sync.Mutex
	state        AdmissionState
	isSubmitting bool

	accepted     *Submission
	notification NotificationState
}

func NewAdmissionController() *AdmissionController {
	return &AdmissionController{
		Throttle: rate.NewLimiter(rate.Every(SubmitCooldown), 1),
		state:    StateIdle,
	}
}

func (c *AdmissionController) Submit(ctx context.Context, creation SubmissionCreation) (*AdmissionResult, error) {
	c.mutex.Lock()
	if c.isSubmitting {
		c.mutex.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if !c.Throttle.Allow() {
		c.mutex.Unlock()
		return nil, ErrTooFrequent
	}
	c.isSubmitting = true
	c.state = StateValidating
	c.mutex.Unlock()

	attemptId := idgen.NextID(attemptIdWorker)
	logger := common.Log.WithField("attemptId", attemptId)

	// captured copy: raw form inputs are cleared after every submit attempt,
	// so everything below references the normalized capture only
	record := creation.Normalize()

	if ok, messages := ValidateAll(creation); !ok {
		c.settle(StateIdle)
		logger.Infof("submission rejected, %d validation errors", len(messages))
		return nil, &InvalidSubmissionError{Messages: messages}
	}

	c.setState(StateCheckingDuplicates)
	if result := CheckDuplicateFunc(ctx, record); result.Duplicate {
		c.settle(StateIdle)
		logger.Info("submission rejected, collides with an existing record")
		return nil, &DuplicateRecordError{Conflicts: result.Conflicts}
	}

	c.setState(StateSaving)
	record.SubmittedAt = types.CurrentTimestamp()
	if err := CreateSubmissionFunc(ctx, &record); err != nil {
		c.settle(StateIdle)
		logger.Warnf("submission store write failed: %v", err)
		return nil, err
	}

	c.mutex.Lock()
	c.state = StateNotifying
	c.accepted = &record
	c.notification = NotificationPending
	c.mutex.Unlock()

	// persistence is committed: a failed notification never reverts it,
	// and there is exactly one attempt with no retry
	AsyncRunnerFunc(func() {
		sent := SendConfirmationFunc(record.Email, record.FullName, record.ProjectName, record.EnrollmentNumber)
		c.mutex.Lock()
		if sent {
			c.notification = NotificationSent
		} else {
			c.notification = NotificationFailed
		}
		c.mutex.Unlock()
		if !sent {
			logger.Warn("confirmation email was not sent, the submission is still accepted")
		}
	})

	c.settle(StateSuccess)
	logger.Info("submission accepted: " + record.EnrollmentNumber)
	return &AdmissionResult{AttemptID: attemptId, State: StateSuccess, Record: &record}, nil
}

// Latest returns the retained record of the last accepted submission for the
// success view, or nil when there is none.
func (c *AdmissionController) Latest() *AdmissionStatus {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.accepted == nil {
		return nil
	}
	return &AdmissionStatus{State: c.state, Record: c.accepted, Notification: c.notification}
}

// Reset is the "submit another" action: transient state is cleared and the
// machine returns to Idle. The submit cooldown window keeps running.
func (c *AdmissionController) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.accepted = nil
	c.notification = ""
	c.state = StateIdle
	c.isSubmitting = false
}

func (c *AdmissionController) setState(state AdmissionState) {
	c.mutex.Lock()
	c.state = state
	c.mutex.Unlock()
}

func (c *AdmissionController) settle(state AdmissionState) {
	c.mutex.Lock()
	c.state = state
	c.isSubmitting = false
	c.mutex.Unlock()
}

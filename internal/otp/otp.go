// Package otp issues and verifies the six digit codes used for email
// verification flows. At most one code is live per (email, action type).
package otp

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/docdesk/internal/metrics"
	"github.com/iliyamo/docdesk/internal/model"
	"github.com/iliyamo/docdesk/internal/notify"
	"github.com/iliyamo/docdesk/internal/utils"
)

const (
	// TTL is how long an issued code stays valid.
	TTL = 10 * time.Minute

	minCode = 100000
	maxCode = 999999

	MsgSent       = "OTP sent successfully!"
	MsgSendFailed = "Sorry OTP could not send! Please try again later"
	MsgInvalid    = "Invalid OTP! Please enter valid OTP"
)

// Records is the persistence the manager needs.
type Records interface {
	Find(ctx context.Context, email, actionType string) (model.OTPRecord, error)
	Delete(ctx context.Context, email, actionType string) error
	Create(ctx context.Context, rec model.OTPRecord) error
}

// Result is returned as the response body of both operations.
type Result struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	OTPID   int64  `json:"otp_id,omitempty"`
}

// Options tune a Manager.
type Options struct {
	// EnforceExpiry rejects codes older than TTL on verify.
	EnforceExpiry bool
	BcryptCost    int
}

type Manager struct {
	records   Records
	publisher notify.Publisher
	log       logrus.FieldLogger
	metrics   *metrics.Metrics
	opts      Options

	now  func() time.Time
	code func() (int, error)
}

func NewManager(records Records, publisher notify.Publisher, log logrus.FieldLogger, m *metrics.Metrics, opts Options) *Manager {
	return &Manager{
		records:   records,
		publisher: publisher,
		log:       log,
		metrics:   m,
		opts:      opts,
		now:       time.Now,
		code:      randomCode,
	}
}

// Issue replaces any live code for the key with a fresh one and queues it
// for delivery. Failures are logged and reported as a failed Result; the
// code itself is never part of the Result.
func (m *Manager) Issue(ctx context.Context, email, actionType string) Result {
	if err := m.issue(ctx, email, actionType); err != nil {
		m.log.WithFields(logrus.Fields{"action_type": actionType, "error": err}).Error("otp issue failed")
		m.metrics.OTP("issue", false)
		return Result{Status: false, Message: MsgSendFailed}
	}
	m.metrics.OTP("issue", true)
	return Result{Status: true, Message: MsgSent}
}

func (m *Manager) issue(ctx context.Context, email, actionType string) error {
	if err := m.records.Delete(ctx, email, actionType); err != nil {
		return err
	}
	n, err := m.code()
	if err != nil {
		return err
	}
	code := strconv.Itoa(n)
	hash, err := utils.HashPassword(secret(email, code), m.opts.BcryptCost)
	if err != nil {
		return err
	}
	err = m.records.Create(ctx, model.OTPRecord{
		EmailID:        email,
		SecretOTP:      code,
		SecretHash:     hash,
		ExpirationTime: m.now().Add(TTL).UnixMilli(),
		ActionType:     actionType,
	})
	if err != nil {
		return err
	}
	notify.BestEffort(ctx, m.publisher, m.log, notify.NewEvent(notify.OTPIssued, email, map[string]string{
		"otp":         code,
		"action_type": actionType,
	}))
	return nil
}

// Verify checks code against the live record for the key. The record is
// kept after a successful check.
func (m *Manager) Verify(ctx context.Context, email, actionType, code string) Result {
	rec, err := m.records.Find(ctx, email, actionType)
	if err != nil {
		m.log.WithFields(logrus.Fields{"action_type": actionType, "error": err}).Warn("otp lookup failed")
		m.metrics.OTP("verify", false)
		return Result{Status: false, Message: MsgInvalid}
	}
	if code == "" || !utils.VerifyPassword(rec.SecretHash, secret(email, code)) ||
		(m.opts.EnforceExpiry && m.now().UnixMilli() > rec.ExpirationTime) {
		m.metrics.OTP("verify", false)
		return Result{Status: false, Message: MsgInvalid}
	}
	m.metrics.OTP("verify", true)
	return Result{Status: true, OTPID: rec.VerificationOTPID}
}

func secret(email, code string) string { return email + "##" + code }

func randomCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return 0, err
	}
	return minCode + int(n.Int64()), nil
}

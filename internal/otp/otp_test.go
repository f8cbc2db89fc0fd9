package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
	"github.com/iliyamo/docdesk/internal/notify"
	"github.com/iliyamo/docdesk/internal/repository"
	"github.com/iliyamo/docdesk/internal/utils"
)

const (
	deleteSQL = "DELETE FROM verification_otp_master WHERE action_type = ? AND email_id = ?"
	insertSQL = "INSERT INTO verification_otp_master (action_type, email_id, expiration_time, secret_hash, secret_otp) VALUES (?, ?, ?, ?, ?)"
	findSQL   = "SELECT verification_otp_id, email_id, secret_otp, secret_hash, expiration_time, action_type FROM verification_otp_master WHERE action_type = ? AND email_id = ? LIMIT 1"
)

type recordingPublisher struct{ events []notify.Event }

func (p *recordingPublisher) Publish(_ context.Context, ev notify.Event) error {
	p.events = append(p.events, ev)
	return nil
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T, records Records, opts Options) (*Manager, *recordingPublisher) {
	log, _ := test.NewNullLogger()
	pub := &recordingPublisher{}
	opts.BcryptCost = bcrypt.MinCost
	m := NewManager(records, pub, log, nil, opts)
	m.now = func() time.Time { return fixedNow }
	return m, pub
}

func TestIssueTwiceDeletesBeforeEachInsert(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mockDB.Close()
	records := repository.NewOTPRepo(database.NewStore(sqlx.NewDb(mockDB, "sqlmock"), nil))
	m, pub := newTestManager(t, records, Options{})

	expiry := fixedNow.Add(10 * time.Minute).UnixMilli()
	for i := 0; i < 2; i++ {
		mock.ExpectExec(deleteSQL).WithArgs("signup", "a@b.com").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertSQL).
			WithArgs("signup", "a@b.com", expiry, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}

	for i := 0; i < 2; i++ {
		res := m.Issue(context.Background(), "a@b.com", "signup")
		assert.Equal(t, Result{Status: true, Message: MsgSent}, res)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, pub.events, 2)
	assert.Equal(t, notify.OTPIssued, pub.events[0].Type)
	assert.Equal(t, "a@b.com", pub.events[0].Recipient)
}

func TestIssueFailureIsSwallowed(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mockDB.Close()
	records := repository.NewOTPRepo(database.NewStore(sqlx.NewDb(mockDB, "sqlmock"), nil))
	m, pub := newTestManager(t, records, Options{})

	mock.ExpectExec(deleteSQL).WithArgs("signup", "a@b.com").WillReturnError(errors.New("connection reset"))

	res := m.Issue(context.Background(), "a@b.com", "signup")
	assert.Equal(t, Result{Status: false, Message: MsgSendFailed}, res)
	assert.Empty(t, pub.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssuedCodeIsInRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		n, err := randomCode()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestVerify(t *testing.T) {
	hash, err := utils.HashPassword("a@b.com##123456", bcrypt.MinCost)
	require.NoError(t, err)
	live := fixedNow.Add(5 * time.Minute).UnixMilli()
	stale := fixedNow.Add(-time.Minute).UnixMilli()

	testCases := []struct {
		name    string
		expiry  int64
		enforce bool
		code    string
		findErr error
		want    Result
	}{
		{name: "match", expiry: live, code: "123456", want: Result{Status: true, OTPID: 9}},
		{name: "mismatch", expiry: live, code: "654321", want: Result{Message: MsgInvalid}},
		{name: "empty code", expiry: live, code: "", want: Result{Message: MsgInvalid}},
		{name: "expired but not enforced", expiry: stale, code: "123456", want: Result{Status: true, OTPID: 9}},
		{name: "expired and enforced", expiry: stale, enforce: true, code: "123456", want: Result{Message: MsgInvalid}},
		{name: "no record", findErr: repository.ErrNotFound, code: "123456", want: Result{Message: MsgInvalid}},
		{name: "store error", findErr: errors.New("timeout"), code: "123456", want: Result{Message: MsgInvalid}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			require.NoError(t, err)
			defer mockDB.Close()
			records := repository.NewOTPRepo(database.NewStore(sqlx.NewDb(mockDB, "sqlmock"), nil))
			m, _ := newTestManager(t, records, Options{EnforceExpiry: tc.enforce})

			exp := mock.ExpectQuery(findSQL).WithArgs("signup", "a@b.com")
			switch {
			case errors.Is(tc.findErr, repository.ErrNotFound):
				exp.WillReturnRows(sqlmock.NewRows(model.OTPColumns))
			case tc.findErr != nil:
				exp.WillReturnError(tc.findErr)
			default:
				exp.WillReturnRows(sqlmock.NewRows(model.OTPColumns).
					AddRow(9, "a@b.com", "123456", hash, tc.expiry, "signup"))
			}

			assert.Equal(t, tc.want, m.Verify(context.Background(), "a@b.com", "signup", tc.code))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

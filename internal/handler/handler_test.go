package handler

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-lambda-go/events"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/notify"
)

const testSecret = "test-secret"

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

type fakePresigner struct{}

func (fakePresigner) PresignPut(_ context.Context, key, _ string) (string, error) {
	return "https://signed.example/" + key, nil
}

func newTestHandler(t *testing.T, ids ...string) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	log, _ := test.NewNullLogger()
	h := New(Options{
		Store:      database.NewStore(sqlx.NewDb(mockDB, "sqlmock"), nil),
		JWTSecret:  testSecret,
		BcryptCost: bcrypt.MinCost,
		Publisher:  notify.Discard{},
		Presigner:  fakePresigner{},
		Log:        log,
	})
	h.now = func() time.Time { return fixedNow }
	next := 0
	h.newUUID = func() string {
		require.Less(t, next, len(ids), "unexpected uuid request")
		id := ids[next]
		next++
		return id
	}
	return h, mock
}

func employeeToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.NewSigner(testSecret).Employee("emp-1", "company-1", role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func event(authorization, body string) events.APIGatewayProxyRequest {
	ev := events.APIGatewayProxyRequest{Body: body, Headers: map[string]string{}}
	if authorization != "" {
		ev.Headers["Authorization"] = authorization
	}
	return ev
}

type envelope struct {
	Status    bool            `json:"status"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
}

func decode(t *testing.T, res events.APIGatewayProxyResponse) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(res.Body), &env), res.Body)
	return env
}

// capture records the string argument it is matched against.
type capture struct{ into *string }

func (c capture) Match(v driver.Value) bool {
	s, ok := v.(string)
	if ok {
		*c.into = s
	}
	return ok
}

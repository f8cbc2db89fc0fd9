package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/docdesk/internal/storage"
)

func TestUploadURL(t *testing.T) {
	h, _ := newTestHandler(t)

	res := h.UploadURL(context.Background(), event("", `{"folder":"docs","file_name":"Tax Return & Co.PDF"}`))
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"uploadURL":"https://signed.example/docs/1704164645000-tax-return-and-co.pdf",
		"Key":"docs/1704164645000-tax-return-and-co.pdf"}`, res.Body)

	res = h.UploadURL(context.Background(), event("", `not json`))
	require.Equal(t, http.StatusOK, res.StatusCode)
	var ticket storage.Ticket
	require.NoError(t, json.Unmarshal([]byte(res.Body), &ticket))
	assert.True(t, strings.HasPrefix(ticket.Key, "images/1704164645000-"), ticket.Key)
	assert.True(t, strings.HasSuffix(ticket.Key, ".jpg"), ticket.Key)
}

func TestOTPValidationRunsFirst(t *testing.T) {
	h, mock := newTestHandler(t)

	res := h.SendOTP(context.Background(), event("", `{"email_id":"nope","action_type":"signup"}`))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Email id must be a valid email", decode(t, res).Message)

	res = h.VerifyOTP(context.Background(), event("", `{"email_id":"a@b.com","action_type":"signup","otp_code":true}`))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Otp code must be a number", decode(t, res).Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeTokenWithUnknownLink(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`SELECT l.link_id, l.link_token, l._customer_id, l._employee_id,
	e.company_id, e.role
FROM link_token_master l
LEFT JOIN employee_master e ON e.employee_id = l._employee_id AND e.is_deleted = 0
WHERE l.link_token = ? AND l.is_deleted = 0
LIMIT 1`).WithArgs("missing").WillReturnRows(sqlmock.NewRows([]string{"link_id"}))

	res := h.GenerateEmployeeToken(context.Background(), event("", `{"link_token":"missing"}`))
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Invalid Link Token", decode(t, res).Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateLinkToken(t *testing.T) {
	h, mock := newTestHandler(t, "link-1")
	mock.ExpectExec("INSERT INTO link_token_master (_customer_id, _employee_id, link_token) VALUES (?, ?, ?)").
		WithArgs("cust-1", "emp-1", "link-1").WillReturnResult(sqlmock.NewResult(1, 1))

	res := h.GenerateLinkToken(context.Background(), event(employeeToken(t, "EMP"), `{"customer_id":"cust-1"}`))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":true,"message":"Link token generated successfully","data":{"link_token":"link-1"}}`, res.Body)
	require.NoError(t, mock.ExpectationsWereMet())
}

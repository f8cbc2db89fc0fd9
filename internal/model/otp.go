package model

// OTPRecord is the live one-time code for an (email, action type) pair.
// ExpirationTime is epoch milliseconds.
type OTPRecord struct {
	VerificationOTPID int64  `db:"verification_otp_id"`
	EmailID           string `db:"email_id"`
	SecretOTP         string `db:"secret_otp"`
	SecretHash        string `db:"secret_hash"`
	ExpirationTime    int64  `db:"expiration_time"`
	ActionType        string `db:"action_type"`
}

// OTPColumns lists the columns scanned into OTPRecord.
var OTPColumns = []string{
	"verification_otp_id", "email_id", "secret_otp", "secret_hash", "expiration_time", "action_type",
}

package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

const otpTable = "verification_otp_master"

// OTPRepo stores one-time codes. Records are physically deleted when a new
// code is issued for the same key.
type OTPRepo struct{ store *database.Store }

func NewOTPRepo(store *database.Store) *OTPRepo { return &OTPRepo{store: store} }

func (r *OTPRepo) Find(ctx context.Context, email, actionType string) (model.OTPRecord, error) {
	var rec model.OTPRecord
	err := r.store.Get(ctx, &rec, otpTable, model.OTPColumns,
		database.Where{"email_id": email, "action_type": actionType})
	return rec, notFound(err, "get otp")
}

func (r *OTPRepo) Delete(ctx context.Context, email, actionType string) error {
	err := r.store.Delete(ctx, otpTable, database.Where{"email_id": email, "action_type": actionType})
	if err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

func (r *OTPRepo) Create(ctx context.Context, rec model.OTPRecord) error {
	err := r.store.Insert(ctx, otpTable, database.Row{
		"email_id":        rec.EmailID,
		"secret_otp":      rec.SecretOTP,
		"secret_hash":     rec.SecretHash,
		"expiration_time": rec.ExpirationTime,
		"action_type":     rec.ActionType,
	})
	if err != nil {
		return fmt.Errorf("create otp: %w", err)
	}
	return nil
}

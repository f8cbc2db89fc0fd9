package model

import "time"

// Customer is a row of customer_master. CustomerUUID is the identifier
// exposed to clients as customer_id in requests and tokens.
type Customer struct {
	CustomerID   int64     `db:"customer_id" json:"customer_id"`
	CustomerUUID string    `db:"customer_uuid" json:"customer_uuid"`
	CompanyID    string    `db:"_company_id" json:"_company_id"`
	CategoryID   *int64    `db:"category_id" json:"category_id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	MiddleName   string    `db:"middle_name" json:"middle_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	MobileNumber string    `db:"mobile_number" json:"mobile_number"`
	UserName     string    `db:"user_name" json:"user_name"`
	EmailID      string    `db:"email_id" json:"email_id"`
	Password     string    `db:"password" json:"-"`
	Gender       string    `db:"gender" json:"gender"`
	UserImageURL *string   `db:"user_image_url" json:"user_image_url"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsFirstLogin bool      `db:"is_first_login" json:"is_first_login"`
	IsMarried    *bool     `db:"is_married" json:"is_married"`
	DateOfBirth  string    `db:"date_of_birth" json:"date_of_birth"`
	DateCreated  time.Time `db:"date_created" json:"date_created"`
}

// CustomerColumns lists the columns scanned into Customer.
var CustomerColumns = []string{
	"customer_id", "customer_uuid", "_company_id", "category_id", "first_name", "middle_name",
	"last_name", "mobile_number", "user_name", "email_id", "password", "gender",
	"user_image_url", "is_active", "is_first_login", "is_married", "date_of_birth", "date_created",
}

// Documents is a row of documents_master, one per customer.
type Documents struct {
	DocumentsID           int64      `db:"documents_id" json:"documents_id"`
	CustomerID            string     `db:"_customer_id" json:"-"`
	AadharNumber          *string    `db:"aadhar_number" json:"aadhar_number"`
	AadharFrontURL        *string    `db:"aadhar_front_url" json:"aadhar_front_url"`
	AadharBackURL         *string    `db:"aadhar_back_url" json:"aadhar_back_url"`
	PancardNumber         *string    `db:"pancard_number" json:"pancard_number"`
	PancardURL            *string    `db:"pancard_url" json:"pancard_url"`
	PassportNumber        *string    `db:"passport_number" json:"passport_number"`
	PassportURL           *string    `db:"passport_url" json:"passport_url"`
	PassportExpiryDate    *string    `db:"passport_expiry_date" json:"passport_expiry_date"`
	VotingURL             *string    `db:"voting_url" json:"voting_url"`
	BirthCertificateURL   *string    `db:"birth_certificate_url" json:"birth_certificate_url"`
	LeavingCertificateURL *string    `db:"leaving_certificate_url" json:"leaving_certificate_url"`
	CasteCertificateURL   *string    `db:"caste_certificate_url" json:"caste_certificate_url"`
	DrivingNumber         *string    `db:"driving_number" json:"driving_number"`
	DrivingURL            *string    `db:"driving_url" json:"driving_url"`
	LightBillURLs         StringList `db:"light_bill_urls" json:"light_bill_urls"`
	ITRFileNumber         *int64     `db:"itr_file_number" json:"itr_file_number"`
	ITRFileName           *string    `db:"itr_file_name" json:"itr_file_name"`
	BankDetailURLs        StringList `db:"bank_detail_urls" json:"bank_detail_urls"`
}

// DocumentsColumns lists the columns scanned into Documents.
var DocumentsColumns = []string{
	"documents_id", "_customer_id", "aadhar_number", "aadhar_front_url", "aadhar_back_url",
	"pancard_number", "pancard_url", "passport_number", "passport_url", "passport_expiry_date",
	"voting_url", "birth_certificate_url", "leaving_certificate_url", "caste_certificate_url",
	"driving_number", "driving_url", "light_bill_urls", "itr_file_number", "itr_file_name",
	"bank_detail_urls",
}

// CustomerDetails is a customer with its documents nested. Documents is
// an empty object when the customer has none.
type CustomerDetails struct {
	Customer
	Documents any `json:"documents"`
}

// WithDocuments nests d, or {} when d is nil.
func WithDocuments(c Customer, d *Documents) CustomerDetails {
	if d == nil {
		return CustomerDetails{Customer: c, Documents: struct{}{}}
	}
	return CustomerDetails{Customer: c, Documents: d}
}

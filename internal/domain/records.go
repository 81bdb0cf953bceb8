package domain

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PersonalRecord struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	FirstName   string         `db:"first_name" json:"first_name"`
	MiddleName  sql.NullString `db:"middle_name" json:"middle_name"`
	LastName    string         `db:"last_name" json:"last_name"`
	Suffix      sql.NullString `db:"suffix" json:"suffix"`
	BirthDate   time.Time      `db:"birth_date" json:"birth_date"`
	Sex         string         `db:"sex" json:"sex"`
	CivilStatus string         `db:"civil_status" json:"civil_status"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// FullName renders the name the way it is printed on barangay documents.
func (p PersonalRecord) FullName() string {
	name := p.FirstName
	if p.MiddleName.Valid && p.MiddleName.String != "" {
		name += " " + p.MiddleName.String
	}
	name += " " + p.LastName
	if p.Suffix.Valid && p.Suffix.String != "" {
		name += " " + p.Suffix.String
	}
	return name
}

type AddressKind string

const (
	AddressPresent   AddressKind = "present"
	AddressPermanent AddressKind = "permanent"
)

type AddressRecord struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	PersonalID *uuid.UUID  `db:"personal_id" json:"personal_id"`
	Kind       AddressKind `db:"kind" json:"kind"`
	HouseNo    string      `db:"house_no" json:"house_no"`
	Street     string      `db:"street" json:"street"`
	Purok      string      `db:"purok" json:"purok"`
	Barangay   string      `db:"barangay" json:"barangay"`
	City       string      `db:"city" json:"city"`
	Province   string      `db:"province" json:"province"`
	ZipCode    string      `db:"zip_code" json:"zip_code"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Line renders the address on one line.
func (a AddressRecord) Line() string {
	line := a.Street
	if a.HouseNo != "" {
		line = a.HouseNo + " " + line
	}
	if a.Purok != "" {
		line += ", Purok " + a.Purok
	}
	return fmt.Sprintf("%s, Brgy. %s, %s, %s", line, a.Barangay, a.City, a.Province)
}

type RoleType string

const (
	RoleResident           RoleType = "resident"
	RoleBusinessRespondent RoleType = "business_respondent"
	RoleFamilyHead         RoleType = "family_head"
)

// RoleDetails carries the role-specific data of a registration.
type RoleDetails struct {
	Business *BusinessInfo               `json:"business,omitempty"`
	Members  map[FamilyRole]FamilyMember `json:"members,omitempty"`
}

// Value stores the details as a JSON column.
func (d RoleDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan reads the details back from a JSON column.
func (d *RoleDetails) Scan(value interface{}) error {
	if value == nil {
		*d = RoleDetails{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for RoleDetails: %T", value)
	}

	return json.Unmarshal(bytes, d)
}

type RoleRecord struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	PersonalID uuid.UUID   `db:"personal_id" json:"personal_id"`
	Role       RoleType    `db:"role" json:"role"`
	Details    RoleDetails `db:"details" json:"details"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Account struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PersonalID      uuid.UUID  `db:"personal_id" json:"personal_id"`
	RoleID          uuid.UUID  `db:"role_id" json:"role_id"`
	Phone           string     `db:"phone" json:"phone"`
	Email           string     `db:"email" json:"email"`
	PasswordHash    string     `db:"password_hash" json:"-"`
	PhoneVerifiedAt *time.Time `db:"phone_verified_at" json:"phone_verified_at"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"email_verified_at"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// RoleInput is what the submitter hands to the role record creation step.
type RoleInput struct {
	Role    RoleType
	Details RoleDetails
}

// AccountInput is what the submitter hands to the account creation step.
type AccountInput struct {
	Phone         string
	Email         string
	Password      string
	PhoneVerified bool
	EmailVerified bool
}

type SubmissionResult struct {
	PersonalID uuid.UUID   `json:"personal_id"`
	AddressIDs []uuid.UUID `json:"address_ids"`
	RoleID     uuid.UUID   `json:"role_id"`
	AccountID  uuid.UUID   `json:"account_id"`
}

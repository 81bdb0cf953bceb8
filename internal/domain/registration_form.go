package domain

import "fmt"

// RegistrationForm holds every value entered across a registration journey.
type RegistrationForm struct {
	Account   AccountInfo  `json:"account"`
	Personal  PersonalInfo `json:"personal"`
	Addresses Addresses    `json:"addresses"`
	Business  BusinessInfo `json:"business"`
	Family    FamilyInfo   `json:"family"`
}

type AccountInfo struct {
	Phone           string `json:"phone" validate:"required,phonenumber"`
	PhoneVerified   bool   `json:"phone_verified"`
	Email           string `json:"email" validate:"required,email,max=254"`
	EmailVerified   bool   `json:"email_verified"`
	Password        string `json:"password,omitempty" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password,omitempty" validate:"required,eqfield=Password"`
}

type PersonalInfo struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	MiddleName  string `json:"middle_name" validate:"max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Suffix      string `json:"suffix" validate:"max=10"`
	BirthDate   string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Sex         string `json:"sex" validate:"required,oneof=male female"`
	CivilStatus string `json:"civil_status" validate:"required,oneof=single married widowed separated"`
}

type Address struct {
	HouseNo  string `json:"house_no" validate:"max=50"`
	Street   string `json:"street" validate:"required,max=100"`
	Purok    string `json:"purok" validate:"max=50"`
	Barangay string `json:"barangay" validate:"required,max=100"`
	City     string `json:"city" validate:"required,max=100"`
	Province string `json:"province" validate:"required,max=100"`
	ZipCode  string `json:"zip_code" validate:"omitempty,numeric,len=4"`
}

// IsZero reports whether no address line has been entered.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Addresses keeps the present address and an optional permanent one.
// An empty permanent address means it is the same as the present one.
type Addresses struct {
	Present   Address `json:"present"`
	Permanent Address `json:"permanent"`
}

type BusinessInfo struct {
	Name               string `json:"name" validate:"required,max=150"`
	Type               string `json:"type" validate:"required,oneof=sole_proprietorship partnership corporation cooperative"`
	TIN                string `json:"tin" validate:"required,numeric,min=9,max=12"`
	RespondentPosition string `json:"respondent_position" validate:"required,max=100"`
}

type FamilyMember struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	BirthDate  string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Contact    string `json:"contact" validate:"omitempty,phonenumber"`
	Occupation string `json:"occupation" validate:"max=100"`
}

func (m FamilyMember) IsZero() bool {
	return m == FamilyMember{}
}

func (m FamilyMember) FullName() string {
	return m.FirstName + " " + m.LastName
}

type FamilyInfo struct {
	Father   FamilyMember `json:"father"`
	Mother   FamilyMember `json:"mother"`
	Guardian FamilyMember `json:"guardian"`
}

type FamilyRole string

const (
	FamilyRoleFather   FamilyRole = "father"
	FamilyRoleMother   FamilyRole = "mother"
	FamilyRoleGuardian FamilyRole = "guardian"
)

// FamilyRoles lists the roles in the order they are asked for.
var FamilyRoles = []FamilyRole{FamilyRoleFather, FamilyRoleMother, FamilyRoleGuardian}

// Member returns the family member stored for role.
func (f FamilyInfo) Member(role FamilyRole) FamilyMember {
	switch role {
	case FamilyRoleFather:
		return f.Father
	case FamilyRoleMother:
		return f.Mother
	case FamilyRoleGuardian:
		return f.Guardian
	}
	return FamilyMember{}
}

// FormField is a dotted path to a leaf of RegistrationForm, relative to the form itself.
type FormField string

const (
	FieldAccountPhone           FormField = "Account.Phone"
	FieldAccountEmail           FormField = "Account.Email"
	FieldAccountPassword        FormField = "Account.Password"
	FieldAccountConfirmPassword FormField = "Account.ConfirmPassword"

	FieldPersonalFirstName   FormField = "Personal.FirstName"
	FieldPersonalMiddleName  FormField = "Personal.MiddleName"
	FieldPersonalLastName    FormField = "Personal.LastName"
	FieldPersonalSuffix      FormField = "Personal.Suffix"
	FieldPersonalBirthDate   FormField = "Personal.BirthDate"
	FieldPersonalSex         FormField = "Personal.Sex"
	FieldPersonalCivilStatus FormField = "Personal.CivilStatus"

	FieldPresentHouseNo  FormField = "Addresses.Present.HouseNo"
	FieldPresentStreet   FormField = "Addresses.Present.Street"
	FieldPresentPurok    FormField = "Addresses.Present.Purok"
	FieldPresentBarangay FormField = "Addresses.Present.Barangay"
	FieldPresentCity     FormField = "Addresses.Present.City"
	FieldPresentProvince FormField = "Addresses.Present.Province"
	FieldPresentZipCode  FormField = "Addresses.Present.ZipCode"

	FieldBusinessName               FormField = "Business.Name"
	FieldBusinessType               FormField = "Business.Type"
	FieldBusinessTIN                FormField = "Business.TIN"
	FieldBusinessRespondentPosition FormField = "Business.RespondentPosition"
)

var (
	AccountFields = []FormField{
		FieldAccountPassword,
		FieldAccountConfirmPassword,
	}
	PersonalFields = []FormField{
		FieldPersonalFirstName,
		FieldPersonalMiddleName,
		FieldPersonalLastName,
		FieldPersonalSuffix,
		FieldPersonalBirthDate,
		FieldPersonalSex,
		FieldPersonalCivilStatus,
	}
	PresentAddressFields = []FormField{
		FieldPresentHouseNo,
		FieldPresentStreet,
		FieldPresentPurok,
		FieldPresentBarangay,
		FieldPresentCity,
		FieldPresentProvince,
		FieldPresentZipCode,
	}
	BusinessFields = []FormField{
		FieldBusinessName,
		FieldBusinessType,
		FieldBusinessTIN,
		FieldBusinessRespondentPosition,
	}
)

// FamilyMemberFields lists the fields of the family member stored under role.
func FamilyMemberFields(role FamilyRole) []FormField {
	prefix := "Family." + memberStructField(role)
	return []FormField{
		FormField(prefix + ".FirstName"),
		FormField(prefix + ".LastName"),
		FormField(prefix + ".BirthDate"),
		FormField(prefix + ".Contact"),
		FormField(prefix + ".Occupation"),
	}
}

func memberStructField(role FamilyRole) string {
	switch role {
	case FamilyRoleFather:
		return "Father"
	case FamilyRoleMother:
		return "Mother"
	case FamilyRoleGuardian:
		return "Guardian"
	}
	panic(fmt.Sprintf("unknown family role %q", role))
}

package domain

// Stage names the kind of work a registration step requires.
type Stage string

const (
	StagePhoneOTP        Stage = "phone_otp"
	StageEmailOTP        Stage = "email_otp"
	StageForm            Stage = "form"
	StageIdentityCapture Stage = "identity_capture"
	StageReview          Stage = "review"
)

type StepID int

// StepDescriptor describes one step of a registration journey.
// Steps sharing a Group are interchangeable: at least one of them must be completed.
type StepDescriptor struct {
	ID         StepID      `json:"id"`
	Name       string      `json:"name"`
	Stage      Stage       `json:"stage"`
	Fields     []FormField `json:"-"`
	Optional   bool        `json:"optional"`
	Group      string      `json:"group,omitempty"`
	FamilyRole FamilyRole  `json:"family_role,omitempty"`
}

type RegistrationProgress struct {
	CurrentStep int      `json:"current_step"`
	Phase       int      `json:"phase"`
	Completed   []StepID `json:"completed"`
	IsCompleted bool     `json:"is_completed"`
}

type RegistrationKind string

const (
	KindResident RegistrationKind = "resident"
	KindBusiness RegistrationKind = "business"
	KindFamily   RegistrationKind = "family"
)

func (k RegistrationKind) Valid() bool {
	switch k {
	case KindResident, KindBusiness, KindFamily:
		return true
	}
	return false
}

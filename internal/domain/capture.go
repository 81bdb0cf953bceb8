package domain

import "time"

type CapturePhase string

const (
	CaptureIdle          CapturePhase = "idle"
	CaptureCapturingID   CapturePhase = "capturing_id"
	CaptureIDVerified    CapturePhase = "id_verified"
	CaptureCapturingFace CapturePhase = "capturing_face"
	CaptureFaceVerified  CapturePhase = "face_verified"
)

type MatchStatus string

const (
	MatchStatusProcessed MatchStatus = "processed"
	MatchStatusRejected  MatchStatus = "rejected"
	MatchStatusFailed    MatchStatus = "failed"
)

// MatchUpdate is a status pushed by the matching backend for one match id.
type MatchUpdate struct {
	MatchID string      `json:"match_id"`
	Status  MatchStatus `json:"status"`
}

type Photo struct {
	Data        []byte
	ContentType string
}

func (p Photo) Empty() bool {
	return len(p.Data) == 0
}

// DocumentSubject is the personal data an ID photo is matched against.
type DocumentSubject struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date"`
}

// DocumentSubject returns the fields an ID photo is matched against.
func (p PersonalInfo) DocumentSubject() DocumentSubject {
	return DocumentSubject{
		FirstName:  p.FirstName,
		MiddleName: p.MiddleName,
		LastName:   p.LastName,
		BirthDate:  p.BirthDate,
	}
}

// CaptureResult is the outcome of one capture attempt.
type CaptureResult struct {
	Success bool   `json:"success"`
	MatchID string `json:"match_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// CaptureState is the persisted state of the identity capture stage.
type CaptureState struct {
	Phase           CapturePhase `json:"phase"`
	MatchID         string       `json:"match_id,omitempty"`
	StatusMessage   string       `json:"status_message,omitempty"`
	StatusExpiresAt time.Time    `json:"status_expires_at,omitempty"`
}

package registration

import "github.com/barangay-connect/backend/internal/domain"

const GroupParentsOrGuardian = "parents_or_guardian"

// StepsFor returns the fixed ordered steps of a registration kind.
func StepsFor(kind domain.RegistrationKind) []domain.StepDescriptor {
	steps := []domain.StepDescriptor{
		{Name: "Verify mobile number", Stage: domain.StagePhoneOTP},
		{Name: "Verify email address", Stage: domain.StageEmailOTP},
		{Name: "Set password", Stage: domain.StageForm, Fields: domain.AccountFields},
		{Name: "Personal information", Stage: domain.StageForm, Fields: domain.PersonalFields},
		{Name: "Present address", Stage: domain.StageForm, Fields: domain.PresentAddressFields},
	}

	switch kind {
	case domain.KindBusiness:
		steps = append(steps, domain.StepDescriptor{
			Name: "Business information", Stage: domain.StageForm, Fields: domain.BusinessFields,
		})
	case domain.KindFamily:
		steps = append(steps,
			domain.StepDescriptor{
				Name: "Father", Stage: domain.StageForm, Group: GroupParentsOrGuardian,
				FamilyRole: domain.FamilyRoleFather, Fields: domain.FamilyMemberFields(domain.FamilyRoleFather),
			},
			domain.StepDescriptor{
				Name: "Mother", Stage: domain.StageForm, Group: GroupParentsOrGuardian,
				FamilyRole: domain.FamilyRoleMother, Fields: domain.FamilyMemberFields(domain.FamilyRoleMother),
			},
			domain.StepDescriptor{
				Name: "Guardian", Stage: domain.StageForm, Group: GroupParentsOrGuardian,
				FamilyRole: domain.FamilyRoleGuardian, Fields: domain.FamilyMemberFields(domain.FamilyRoleGuardian),
			},
		)
	}

	steps = append(steps,
		domain.StepDescriptor{Name: "Identity verification", Stage: domain.StageIdentityCapture},
		domain.StepDescriptor{Name: "Review and submit", Stage: domain.StageReview},
	)

	for i := range steps {
		steps[i].ID = domain.StepID(i + 1)
	}
	return steps
}

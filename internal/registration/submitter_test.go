package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barangay-connect/backend/internal/domain"
)

var allCreateSteps = []string{
	string(domain.StepCreatePersonal),
	string(domain.StepCreateAddress),
	string(domain.StepLinkAddress),
	string(domain.StepCreateRole),
	string(domain.StepCreateAccount),
}

func readySequencer(t *testing.T, kind domain.RegistrationKind, extra ...domain.StepID) *StepSequencer {
	t.Helper()
	seq := NewStepSequencer(StepsFor(kind), nil)
	for _, step := range seq.Steps() {
		if step.Group != "" || step.Stage == domain.StageReview {
			continue
		}
		require.NoError(t, seq.Complete(step.ID))
	}
	for _, id := range extra {
		require.NoError(t, seq.Complete(id))
	}
	seq.Seed()
	return seq
}

func TestSubmitter_CallsInOrderAndResets(t *testing.T) {
	form := NewFormStore(nil)
	form.Restore(verifiedForm())
	seq := readySequencer(t, domain.KindResident)
	records := &fakeRecords{log: &callLog{}}

	res, err := NewSubmitter(domain.KindResident, form, seq, records).Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, allCreateSteps, records.log.list())
	assert.NotEqual(t, res.PersonalID, res.AccountID)
	assert.Len(t, res.AddressIDs, 1)

	assert.Equal(t, domain.RoleResident, records.role.Role)
	assert.Equal(t, "09171234567", records.account.Phone)
	assert.True(t, records.account.PhoneVerified)
	assert.True(t, records.account.EmailVerified)

	assert.Equal(t, domain.RegistrationForm{}, form.Values())
	assert.Equal(t, 1, seq.CurrentStep())
	assert.Empty(t, seq.Progress().Completed)
}

func TestSubmitter_StopsAtFirstFailure(t *testing.T) {
	cause := errors.New("duplicate key")

	for i, step := range allCreateSteps {
		t.Run(step, func(t *testing.T) {
			form := NewFormStore(nil)
			form.Restore(verifiedForm())
			seq := readySequencer(t, domain.KindResident)
			records := &fakeRecords{log: &callLog{}, failAt: domain.SubmissionStep(step), err: cause}
			notifier := &notifierSpy{}

			_, err := NewSubmitter(domain.KindResident, form, seq, records, WithSubmitNotifier(notifier)).
				Submit(context.Background())

			var serr *domain.SubmissionError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, domain.SubmissionStep(step), serr.Step)
			assert.ErrorIs(t, err, cause)
			assert.False(t, serr.Compensated)
			assert.Equal(t, allCreateSteps[:i+1], records.log.list())
			assert.Equal(t, 1, notifier.count())

			// nothing is cleared on failure
			assert.Equal(t, verifiedForm(), form.Values())
			assert.True(t, seq.CanSubmit())
		})
	}
}

func TestSubmitter_CompensatesInReverse(t *testing.T) {
	tests := []struct {
		failAt domain.SubmissionStep
		undo   []string
	}{
		{failAt: domain.StepCreatePersonal, undo: nil},
		{failAt: domain.StepCreateAddress, undo: []string{"delete_personal"}},
		{failAt: domain.StepLinkAddress, undo: []string{"delete_addresses", "delete_personal"}},
		{failAt: domain.StepCreateAccount, undo: []string{"delete_role", "delete_addresses", "delete_personal"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.failAt), func(t *testing.T) {
			form := NewFormStore(nil)
			form.Restore(verifiedForm())
			records := compensatingRecords{&fakeRecords{log: &callLog{}, failAt: tt.failAt, err: errors.New("boom")}}

			_, err := NewSubmitter(domain.KindResident, form, readySequencer(t, domain.KindResident), records,
				WithCompensation(true)).Submit(context.Background())

			var serr *domain.SubmissionError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, len(tt.undo) > 0, serr.Compensated)

			calls := records.log.list()
			assert.Equal(t, tt.undo, nilIfEmpty(calls[len(calls)-len(tt.undo):]))
		})
	}
}

func TestSubmitter_CompensationFailureIsReported(t *testing.T) {
	form := NewFormStore(nil)
	form.Restore(verifiedForm())
	records := compensatingRecords{&fakeRecords{
		log:       &callLog{},
		failAt:    domain.StepCreateRole,
		err:       errors.New("boom"),
		deleteErr: errors.New("locked"),
	}}

	_, err := NewSubmitter(domain.KindResident, form, readySequencer(t, domain.KindResident), records,
		WithCompensation(true)).Submit(context.Background())

	var serr *domain.SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.False(t, serr.Compensated)
	assert.Contains(t, records.log.list(), "delete_addresses")
}

func TestSubmitter_NotReady(t *testing.T) {
	form := NewFormStore(nil)
	records := &fakeRecords{log: &callLog{}}
	seq := NewStepSequencer(StepsFor(domain.KindResident), nil)

	_, err := NewSubmitter(domain.KindResident, form, seq, records).Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotReadyToSubmit)
	assert.Empty(t, records.log.list())
}

func TestSubmitter_RefusesUnverifiedContacts(t *testing.T) {
	tests := []struct {
		name  string
		unset func(f *domain.RegistrationForm)
	}{
		{name: "phone", unset: func(f *domain.RegistrationForm) { f.Account.PhoneVerified = false }},
		{name: "email", unset: func(f *domain.RegistrationForm) { f.Account.EmailVerified = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := verifiedForm()
			tt.unset(&f)
			form := NewFormStore(nil)
			form.Restore(f)
			records := &fakeRecords{log: &callLog{}}

			_, err := NewSubmitter(domain.KindResident, form, readySequencer(t, domain.KindResident), records).
				Submit(context.Background())

			assert.ErrorIs(t, err, domain.ErrNotReadyToSubmit)
			assert.Empty(t, records.log.list())
		})
	}
}

func TestSubmitter_RoleInput(t *testing.T) {
	t.Run("business", func(t *testing.T) {
		form := NewFormStore(nil)
		form.Restore(verifiedForm())
		records := &fakeRecords{log: &callLog{}}

		_, err := NewSubmitter(domain.KindBusiness, form, readySequencer(t, domain.KindBusiness), records).
			Submit(context.Background())

		require.NoError(t, err)
		assert.Equal(t, domain.RoleBusinessRespondent, records.role.Role)
		require.NotNil(t, records.role.Details.Business)
		assert.Equal(t, "Sari-Sari ni Juan", records.role.Details.Business.Name)
	})

	t.Run("family keeps completed members only", func(t *testing.T) {
		form := NewFormStore(nil)
		f := verifiedForm()
		f.Family.Guardian = domain.FamilyMember{FirstName: "Pedro", LastName: "Santos", BirthDate: "1970-02-02"}
		form.Restore(f)

		var mother domain.StepID
		for _, step := range StepsFor(domain.KindFamily) {
			if step.FamilyRole == domain.FamilyRoleMother {
				mother = step.ID
			}
		}
		records := &fakeRecords{log: &callLog{}}

		_, err := NewSubmitter(domain.KindFamily, form, readySequencer(t, domain.KindFamily, mother), records).
			Submit(context.Background())

		require.NoError(t, err)
		assert.Equal(t, domain.RoleFamilyHead, records.role.Role)
		assert.Equal(t, map[domain.FamilyRole]domain.FamilyMember{
			domain.FamilyRoleMother: f.Family.Mother,
		}, records.role.Details.Members)
	})
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/dossier/pkg/domain/types"
)

func TestCaseStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status types.CaseStatus
		want   bool
	}{
		{name: "created", status: types.CaseStatusCreated, want: true},
		{name: "pending approval", status: types.CaseStatusPendingApproval, want: true},
		{name: "pending chief", status: types.CaseStatusPendingChief, want: true},
		{name: "closed unsolved", status: types.CaseStatusClosedUnsolved, want: true},
		{name: "upper case is invalid", status: types.CaseStatus("TRIAL"), want: false},
		{name: "empty status", status: types.CaseStatus(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.status.IsValid()).Equal(tt.want)
		})
	}
}

func TestCaseStatus_IsTerminal(t *testing.T) {
	for _, s := range types.AllCaseStatuses() {
		t.Run(s.String(), func(t *testing.T) {
			want := s == types.CaseStatusClosedSolved || s == types.CaseStatusClosedUnsolved
			gt.Value(t, s.IsTerminal()).Equal(want)
		})
	}
}

func TestParseCaseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.CaseStatus
		wantErr bool
	}{
		{name: "valid interrogation", input: "interrogation", want: types.CaseStatusInterrogation},
		{name: "valid trial", input: "trial", want: types.CaseStatusTrial},
		{name: "invalid status", input: "archived", wantErr: true},
		{name: "empty status", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseCaseStatus(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestAllCaseStatuses(t *testing.T) {
	statuses := types.AllCaseStatuses()
	gt.Array(t, statuses).Length(10)
	for _, s := range statuses {
		gt.Bool(t, s.IsValid()).True()
	}
}

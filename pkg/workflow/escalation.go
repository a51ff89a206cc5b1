package workflow

import "github.com/secmon-lab/dossier/pkg/domain/types"

// EscalationTarget decides where captain approval sends a case. Critical
// cases go to the chief, everything else goes straight to trial.
func EscalationTarget(severity types.CrimeSeverity) types.CaseStatus {
	if severity.IsCritical() {
		return types.CaseStatusPendingChief
	}
	return types.CaseStatusTrial
}

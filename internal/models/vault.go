package models

import "time"

// Recovery point status values recognised by the derived predicates. The
// Status field itself is free-form; AWS Backup also reports PARTIAL,
// DELETING, and EXPIRED.
const (
	RecoveryPointStatusCompleted = "COMPLETED"
	RecoveryPointStatusFailed    = "FAILED"
)

// RecoveryPoint is one immutable backup snapshot of a resource. It carries no
// SDK types; the provider layer translates wire responses into this model.
type RecoveryPoint struct {
	ARN          string    `json:"arn"`
	VaultName    string    `json:"vault_name"`
	ResourceARN  string    `json:"resource_arn"`
	ResourceType string    `json:"resource_type"`
	CreationDate time.Time `json:"creation_date"`
	Status       string    `json:"status"`

	// BackupSizeBytes is nil when AWS does not report a size. A known size
	// is always non-negative.
	BackupSizeBytes *int64 `json:"backup_size_bytes,omitempty"`

	CompletionDate *time.Time `json:"completion_date,omitempty"`
}

// IsCompleted reports whether the recovery point finished successfully.
func (rp RecoveryPoint) IsCompleted() bool {
	return rp.Status == RecoveryPointStatusCompleted
}

// IsFailed reports whether the recovery point failed.
func (rp RecoveryPoint) IsFailed() bool {
	return rp.Status == RecoveryPointStatusFailed
}

// AgeDays returns the age of the recovery point in whole days at ref,
// truncating any partial day. A zero ref means "now" in the creation
// timestamp's location.
func (rp RecoveryPoint) AgeDays(ref time.Time) int {
	if ref.IsZero() {
		ref = time.Now().In(rp.CreationDate.Location())
	}
	return int(ref.Sub(rp.CreationDate).Hours() / 24)
}

// Vault is a named container of recovery points in one region.
type Vault struct {
	Name           string          `json:"name"`
	ARN            string          `json:"arn"`
	Region         string          `json:"region"`
	RecoveryPoints []RecoveryPoint `json:"recovery_points"`
}

// RecoveryPointCount returns the number of recovery points regardless of
// status.
func (v Vault) RecoveryPointCount() int {
	return len(v.RecoveryPoints)
}

// CompletedRecoveryPoints returns the subset of recovery points whose status
// is COMPLETED, in their original order.
func (v Vault) CompletedRecoveryPoints() []RecoveryPoint {
	var completed []RecoveryPoint
	for _, rp := range v.RecoveryPoints {
		if rp.IsCompleted() {
			completed = append(completed, rp)
		}
	}
	return completed
}

// TotalBackupSizeBytes sums the sizes of all recovery points with a known
// size. Unknown sizes contribute zero; the points themselves still count
// toward RecoveryPointCount.
func (v Vault) TotalBackupSizeBytes() int64 {
	var total int64
	for _, rp := range v.RecoveryPoints {
		if rp.BackupSizeBytes != nil {
			total += *rp.BackupSizeBytes
		}
	}
	return total
}

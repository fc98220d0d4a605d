package inventory

import "fmt"

// CloudOperationError reports a failure at the capability boundary: network,
// auth, or API-level. It always carries the region (and the vault name when
// the operation was vault-scoped) and wraps the underlying cause so callers
// can still reach the raw SDK error via errors.Is / errors.As.
type CloudOperationError struct {
	// Op names the failed operation, e.g. "list backup vaults".
	Op string

	// Region is the AWS region the operation targeted.
	Region string

	// VaultName is set for vault-scoped operations, empty otherwise.
	VaultName string

	// Err is the underlying cause. Never nil.
	Err error
}

func (e *CloudOperationError) Error() string {
	if e.VaultName != "" {
		return fmt.Sprintf("%s for vault %q in %s: %v", e.Op, e.VaultName, e.Region, e.Err)
	}
	return fmt.Sprintf("%s in %s: %v", e.Op, e.Region, e.Err)
}

func (e *CloudOperationError) Unwrap() error { return e.Err }

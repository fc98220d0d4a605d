// Package inventory orchestrates the region fan-out that assembles a flat
// inventory of backup vaults and their recovery points. It depends only on
// the BackupClient capability, never on the AWS SDK; the provider layer
// supplies the concrete implementation.
package inventory

import (
	"context"

	"github.com/johnayers/aws-vault-shuffle/internal/models"
)

// BackupClient is the capability the inventory service depends on. Both
// operations are region-scoped and blocking; implementations must follow
// backend pagination to exhaustion and wrap every failure in a
// *CloudOperationError.
type BackupClient interface {
	// ListVaults returns the vaults in region with empty recovery-point
	// sets; recovery points are fetched separately per vault.
	ListVaults(ctx context.Context, region string) ([]models.Vault, error)

	// ListRecoveryPoints returns the named vault populated with all of its
	// recovery points.
	ListRecoveryPoints(ctx context.Context, vaultName, region string) (models.Vault, error)
}

// Service lists all vaults and recovery points across every configured
// region. It owns the aggregation result but never the config or client it
// is given.
type Service struct {
	client BackupClient
}

// NewService constructs a Service wired to the supplied backup client.
func NewService(client BackupClient) *Service {
	return &Service{client: client}
}

// ListAllVaults scans every region in cfg, in order, and returns the
// populated vaults: region order first, then within-region vault-listing
// order. No re-sorting, no deduplication.
//
// Fail-fast: the first capability error aborts the remaining regions and
// propagates unchanged; no partial result is returned. Callers wanting
// resilience must wrap individual calls themselves.
func (s *Service) ListAllVaults(ctx context.Context, cfg models.RegionConfig) ([]models.Vault, error) {
	var all []models.Vault

	for _, region := range cfg.Regions() {
		vaults, err := s.client.ListVaults(ctx, region)
		if err != nil {
			return nil, err
		}

		for _, vault := range vaults {
			populated, err := s.client.ListRecoveryPoints(ctx, vault.Name, region)
			if err != nil {
				return nil, err
			}
			all = append(all, populated)
		}
	}

	return all, nil
}

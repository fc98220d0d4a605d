// Package backupvault implements the inventory.BackupClient capability on
// top of the AWS Backup SDK. It owns credential acquisition (including
// cross-account role assumption), a per-region config cache, and pagination;
// wire responses are translated into domain models before they leave this
// package.
package backupvault

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	backupsvc "github.com/aws/aws-sdk-go-v2/service/backup"
	backuptypes "github.com/aws/aws-sdk-go-v2/service/backup/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog/log"

	"github.com/johnayers/aws-vault-shuffle/internal/inventory"
	"github.com/johnayers/aws-vault-shuffle/internal/models"
)

// unknownResourceType is substituted when AWS omits a recovery point's
// resource type.
const unknownResourceType = "UNKNOWN"

// configLoader loads a base aws.Config scoped to a region. Injectable so
// tests can bypass the shared-config machinery.
type configLoader func(ctx context.Context, region string) (aws.Config, error)

// Adapter is the production implementation of inventory.BackupClient.
//
// One ClientSet is built at most once per region and cached for the lifetime
// of the adapter. The cache is mutex-guarded: the inventory service itself is
// sequential, but the adapter stays safe if a caller ever fans regions out
// across goroutines.
type Adapter struct {
	config  models.RegionConfig
	factory ClientFactory
	load    configLoader

	mu      sync.Mutex
	clients map[string]*ClientSet
}

// NewAdapter returns an adapter backed by the real AWS SDK. When cfg carries
// a role ARN, every regional client uses temporary credentials obtained via
// STS AssumeRole; otherwise the ambient default credential chain applies.
func NewAdapter(cfg models.RegionConfig) *Adapter {
	return NewAdapterWithFactory(cfg, NewClientSet)
}

// NewAdapterWithFactory returns an adapter that uses f to create its service
// clients. Pass a mock factory in tests.
func NewAdapterWithFactory(cfg models.RegionConfig, f ClientFactory) *Adapter {
	return &Adapter{
		config:  cfg,
		factory: f,
		load:    loadDefaultConfig,
		clients: make(map[string]*ClientSet),
	}
}

// loadDefaultConfig is the production configLoader.
func loadDefaultConfig(ctx context.Context, region string) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
}

// clientsFor returns the cached ClientSet for region, building it on first
// use.
func (a *Adapter) clientsFor(ctx context.Context, region string) (*ClientSet, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if cs, ok := a.clients[region]; ok {
		return cs, nil
	}

	cfg, err := a.load(ctx, region)
	if err != nil {
		return nil, &inventory.CloudOperationError{Op: "load AWS config", Region: region, Err: err}
	}

	if a.config.HasCrossAccountRole() {
		cfg.Credentials = a.assumeRoleCredentials(cfg)
		log.Debug().
			Str("region", region).
			Str("role_arn", a.config.AssumeRoleARN()).
			Msg("using assumed-role credentials")
	}

	cs := a.factory(cfg)
	a.clients[region] = cs
	return cs, nil
}

// assumeRoleCredentials layers an STS AssumeRole provider over the base
// config's credential chain, passing the external ID when configured.
// Credentials are cached and refreshed by the SDK as they expire.
func (a *Adapter) assumeRoleCredentials(base aws.Config) aws.CredentialsProvider {
	stsClient := sts.NewFromConfig(base)
	provider := stscreds.NewAssumeRoleProvider(stsClient, a.config.AssumeRoleARN(), func(o *stscreds.AssumeRoleOptions) {
		o.RoleSessionName = a.config.SessionName()
		if a.config.ExternalID() != "" {
			o.ExternalID = aws.String(a.config.ExternalID())
		}
	})
	return aws.NewCredentialsCache(provider)
}

// ListVaults implements inventory.BackupClient. It pages through every backup
// vault in region and returns them with empty recovery-point sets.
func (a *Adapter) ListVaults(ctx context.Context, region string) ([]models.Vault, error) {
	cs, err := a.clientsFor(ctx, region)
	if err != nil {
		return nil, err
	}

	paginator := backupsvc.NewListBackupVaultsPaginator(cs.Backup, &backupsvc.ListBackupVaultsInput{})

	var vaults []models.Vault
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &inventory.CloudOperationError{Op: "list backup vaults", Region: region, Err: err}
		}
		for _, member := range page.BackupVaultList {
			vaults = append(vaults, models.Vault{
				Name:   aws.ToString(member.BackupVaultName),
				ARN:    aws.ToString(member.BackupVaultArn),
				Region: region,
			})
		}
	}

	log.Debug().Str("region", region).Int("vaults", len(vaults)).Msg("listed backup vaults")
	return vaults, nil
}

// ListRecoveryPoints implements inventory.BackupClient. It pages through
// every recovery point in the named vault, then describes the vault to
// resolve its ARN.
func (a *Adapter) ListRecoveryPoints(ctx context.Context, vaultName, region string) (models.Vault, error) {
	cs, err := a.clientsFor(ctx, region)
	if err != nil {
		return models.Vault{}, err
	}

	paginator := backupsvc.NewListRecoveryPointsByBackupVaultPaginator(cs.Backup,
		&backupsvc.ListRecoveryPointsByBackupVaultInput{
			BackupVaultName: aws.String(vaultName),
		})

	var points []models.RecoveryPoint
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return models.Vault{}, &inventory.CloudOperationError{
				Op: "list recovery points", Region: region, VaultName: vaultName, Err: err,
			}
		}
		for _, rp := range page.RecoveryPoints {
			points = append(points, toRecoveryPoint(rp, vaultName))
		}
	}

	described, err := cs.Backup.DescribeBackupVault(ctx, &backupsvc.DescribeBackupVaultInput{
		BackupVaultName: aws.String(vaultName),
	})
	if err != nil {
		return models.Vault{}, &inventory.CloudOperationError{
			Op: "describe backup vault", Region: region, VaultName: vaultName, Err: err,
		}
	}

	log.Debug().Str("region", region).Str("vault", vaultName).Int("recovery_points", len(points)).
		Msg("listed recovery points")

	return models.Vault{
		Name:           vaultName,
		ARN:            aws.ToString(described.BackupVaultArn),
		Region:         region,
		RecoveryPoints: points,
	}, nil
}

// toRecoveryPoint converts an SDK recovery point to the domain model.
func toRecoveryPoint(rp backuptypes.RecoveryPointByBackupVault, vaultName string) models.RecoveryPoint {
	resourceType := aws.ToString(rp.ResourceType)
	if resourceType == "" {
		resourceType = unknownResourceType
	}

	var creation time.Time
	if rp.CreationDate != nil {
		creation = *rp.CreationDate
	}

	return models.RecoveryPoint{
		ARN:             aws.ToString(rp.RecoveryPointArn),
		VaultName:       vaultName,
		ResourceARN:     aws.ToString(rp.ResourceArn),
		ResourceType:    resourceType,
		CreationDate:    creation,
		Status:          string(rp.Status),
		BackupSizeBytes: rp.BackupSizeInBytes,
		CompletionDate:  rp.CompletionDate,
	}
}

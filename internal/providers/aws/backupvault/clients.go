package backupvault

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	backupsvc "github.com/aws/aws-sdk-go-v2/service/backup"
)

// BackupAPI is the subset of AWS Backup operations used by the adapter.
// Keeping the interface narrow makes mocking in unit tests trivial: a struct
// returning canned pages satisfies it, and the SDK paginators accept it
// directly.
type BackupAPI interface {
	ListBackupVaults(
		ctx context.Context,
		params *backupsvc.ListBackupVaultsInput,
		optFns ...func(*backupsvc.Options),
	) (*backupsvc.ListBackupVaultsOutput, error)

	ListRecoveryPointsByBackupVault(
		ctx context.Context,
		params *backupsvc.ListRecoveryPointsByBackupVaultInput,
		optFns ...func(*backupsvc.Options),
	) (*backupsvc.ListRecoveryPointsByBackupVaultOutput, error)

	DescribeBackupVault(
		ctx context.Context,
		params *backupsvc.DescribeBackupVaultInput,
		optFns ...func(*backupsvc.Options),
	) (*backupsvc.DescribeBackupVaultOutput, error)
}

// ClientSet holds the initialised service clients for one region. All fields
// are interfaces so tests can swap in mocks without touching the SDK.
type ClientSet struct {
	Backup BackupAPI
}

// ClientFactory creates a ClientSet from a region-scoped aws.Config.
// Swap this in tests to inject mock clients.
type ClientFactory func(cfg aws.Config) *ClientSet

// NewClientSet is the production ClientFactory.
func NewClientSet(cfg aws.Config) *ClientSet {
	return &ClientSet{
		Backup: backupsvc.NewFromConfig(cfg),
	}
}

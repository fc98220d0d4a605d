package backupvault

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	backupsvc "github.com/aws/aws-sdk-go-v2/service/backup"
	backuptypes "github.com/aws/aws-sdk-go-v2/service/backup/types"

	"github.com/johnayers/aws-vault-shuffle/internal/inventory"
	"github.com/johnayers/aws-vault-shuffle/internal/models"
)

// mockBackupAPI pages through canned responses. A nil entry in a page slice
// is not allowed; errors are injected per operation.
type mockBackupAPI struct {
	vaultPages []*backupsvc.ListBackupVaultsOutput
	pointPages []*backupsvc.ListRecoveryPointsByBackupVaultOutput
	describe   *backupsvc.DescribeBackupVaultOutput

	vaultErr    error
	pointErr    error
	describeErr error

	vaultCalls int
	pointCalls int
}

func (m *mockBackupAPI) ListBackupVaults(
	_ context.Context, params *backupsvc.ListBackupVaultsInput, _ ...func(*backupsvc.Options),
) (*backupsvc.ListBackupVaultsOutput, error) {
	if m.vaultErr != nil {
		return nil, m.vaultErr
	}
	page := m.vaultPages[m.vaultCalls]
	m.vaultCalls++
	return page, nil
}

func (m *mockBackupAPI) ListRecoveryPointsByBackupVault(
	_ context.Context, params *backupsvc.ListRecoveryPointsByBackupVaultInput, _ ...func(*backupsvc.Options),
) (*backupsvc.ListRecoveryPointsByBackupVaultOutput, error) {
	if m.pointErr != nil {
		return nil, m.pointErr
	}
	page := m.pointPages[m.pointCalls]
	m.pointCalls++
	return page, nil
}

func (m *mockBackupAPI) DescribeBackupVault(
	_ context.Context, params *backupsvc.DescribeBackupVaultInput, _ ...func(*backupsvc.Options),
) (*backupsvc.DescribeBackupVaultOutput, error) {
	if m.describeErr != nil {
		return nil, m.describeErr
	}
	return m.describe, nil
}

// newTestAdapter wires an adapter to the mock API and a stub config loader,
// returning the adapter and a counter of base-config loads.
func newTestAdapter(t *testing.T, cfg models.RegionConfig, api *mockBackupAPI) (*Adapter, *int) {
	t.Helper()
	loads := 0
	a := NewAdapterWithFactory(cfg, func(aws.Config) *ClientSet {
		return &ClientSet{Backup: api}
	})
	a.load = func(_ context.Context, region string) (aws.Config, error) {
		loads++
		return aws.Config{Region: region}, nil
	}
	return a, &loads
}

func testConfig(t *testing.T, roleARN string) models.RegionConfig {
	t.Helper()
	cfg, err := models.NewRegionConfig(models.RegionConfigParams{
		SourceAccount: "123456789012",
		Regions:       []string{"us-east-1", "us-west-2"},
		AssumeRoleARN: roleARN,
	})
	if err != nil {
		t.Fatalf("NewRegionConfig: %v", err)
	}
	return cfg
}

func TestListVaults_FollowsPagination(t *testing.T) {
	api := &mockBackupAPI{
		vaultPages: []*backupsvc.ListBackupVaultsOutput{
			{
				BackupVaultList: []backuptypes.BackupVaultListMember{
					{BackupVaultName: aws.String("alpha"), BackupVaultArn: aws.String("arn:alpha")},
					{BackupVaultName: aws.String("beta"), BackupVaultArn: aws.String("arn:beta")},
				},
				NextToken: aws.String("page-2"),
			},
			{
				BackupVaultList: []backuptypes.BackupVaultListMember{
					{BackupVaultName: aws.String("gamma"), BackupVaultArn: aws.String("arn:gamma")},
				},
			},
		},
	}
	a, _ := newTestAdapter(t, testConfig(t, ""), api)

	got, err := a.ListVaults(context.Background(), "us-east-1")
	if err != nil {
		t.Fatalf("ListVaults returned error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("want 3 vaults across 2 pages, got %d", len(got))
	}
	if api.vaultCalls != 2 {
		t.Errorf("API calls = %d; want 2 (pagination followed)", api.vaultCalls)
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if got[i].Name != want {
			t.Errorf("vault[%d].Name = %q; want %q", i, got[i].Name, want)
		}
		if got[i].Region != "us-east-1" {
			t.Errorf("vault[%d].Region = %q; want us-east-1", i, got[i].Region)
		}
		if got[i].RecoveryPointCount() != 0 {
			t.Errorf("vault[%d] must have no recovery points yet", i)
		}
	}
}

func TestListVaults_WrapsSDKError(t *testing.T) {
	cause := errors.New("ExpiredToken")
	api := &mockBackupAPI{vaultErr: cause}
	a, _ := newTestAdapter(t, testConfig(t, ""), api)

	_, err := a.ListVaults(context.Background(), "us-west-2")

	var copErr *inventory.CloudOperationError
	if !errors.As(err, &copErr) {
		t.Fatalf("error = %v; want *inventory.CloudOperationError", err)
	}
	if copErr.Region != "us-west-2" {
		t.Errorf("Region = %q; want us-west-2", copErr.Region)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error must expose the SDK cause")
	}
}

func TestListRecoveryPoints_PopulatesVault(t *testing.T) {
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	completedAt := created.Add(2 * time.Hour)
	size := int64(4096)

	api := &mockBackupAPI{
		pointPages: []*backupsvc.ListRecoveryPointsByBackupVaultOutput{
			{
				RecoveryPoints: []backuptypes.RecoveryPointByBackupVault{
					{
						RecoveryPointArn:  aws.String("arn:rp-1"),
						ResourceArn:       aws.String("arn:vol-1"),
						ResourceType:      aws.String("EBS"),
						CreationDate:      &created,
						CompletionDate:    &completedAt,
						Status:            backuptypes.RecoveryPointStatusCompleted,
						BackupSizeInBytes: &size,
					},
				},
				NextToken: aws.String("page-2"),
			},
			{
				RecoveryPoints: []backuptypes.RecoveryPointByBackupVault{
					{
						// No resource type, size, or completion date reported.
						RecoveryPointArn: aws.String("arn:rp-2"),
						ResourceArn:      aws.String("arn:vol-2"),
						CreationDate:     &created,
						Status:           backuptypes.RecoveryPointStatusPartial,
					},
				},
			},
		},
		describe: &backupsvc.DescribeBackupVaultOutput{
			BackupVaultArn:  aws.String("arn:aws:backup:us-east-1:123456789012:backup-vault:prod"),
			BackupVaultName: aws.String("prod"),
		},
	}
	a, _ := newTestAdapter(t, testConfig(t, ""), api)

	got, err := a.ListRecoveryPoints(context.Background(), "prod", "us-east-1")
	if err != nil {
		t.Fatalf("ListRecoveryPoints returned error: %v", err)
	}

	if got.Name != "prod" || got.Region != "us-east-1" {
		t.Errorf("vault identity = %q/%q; want prod/us-east-1", got.Name, got.Region)
	}
	if got.ARN != "arn:aws:backup:us-east-1:123456789012:backup-vault:prod" {
		t.Errorf("ARN = %q; want the described vault ARN", got.ARN)
	}
	if got.RecoveryPointCount() != 2 {
		t.Fatalf("want 2 recovery points across 2 pages, got %d", got.RecoveryPointCount())
	}

	first := got.RecoveryPoints[0]
	if first.Status != "COMPLETED" || !first.IsCompleted() {
		t.Errorf("first.Status = %q; want COMPLETED", first.Status)
	}
	if first.VaultName != "prod" {
		t.Errorf("first.VaultName = %q; want prod", first.VaultName)
	}
	if first.BackupSizeBytes == nil || *first.BackupSizeBytes != 4096 {
		t.Errorf("first.BackupSizeBytes = %v; want 4096", first.BackupSizeBytes)
	}
	if first.CompletionDate == nil || !first.CompletionDate.Equal(completedAt) {
		t.Errorf("first.CompletionDate = %v; want %v", first.CompletionDate, completedAt)
	}

	second := got.RecoveryPoints[1]
	if second.ResourceType != "UNKNOWN" {
		t.Errorf("missing resource type must map to UNKNOWN; got %q", second.ResourceType)
	}
	if second.BackupSizeBytes != nil {
		t.Errorf("missing size must stay unknown; got %v", *second.BackupSizeBytes)
	}
	if second.CompletionDate != nil {
		t.Errorf("missing completion date must stay nil; got %v", second.CompletionDate)
	}
}

func TestListRecoveryPoints_WrapsErrorsWithVaultContext(t *testing.T) {
	cause := errors.New("AccessDeniedException")
	api := &mockBackupAPI{pointErr: cause}
	a, _ := newTestAdapter(t, testConfig(t, ""), api)

	_, err := a.ListRecoveryPoints(context.Background(), "prod", "eu-west-1")

	var copErr *inventory.CloudOperationError
	if !errors.As(err, &copErr) {
		t.Fatalf("error = %v; want *inventory.CloudOperationError", err)
	}
	if copErr.Region != "eu-west-1" || copErr.VaultName != "prod" {
		t.Errorf("context = %q/%q; want eu-west-1/prod", copErr.Region, copErr.VaultName)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error must expose the SDK cause")
	}
}

func TestListRecoveryPoints_DescribeFailureIsWrapped(t *testing.T) {
	cause := errors.New("ResourceNotFoundException")
	api := &mockBackupAPI{
		pointPages: []*backupsvc.ListRecoveryPointsByBackupVaultOutput{{}},
		describeErr: cause,
	}
	a, _ := newTestAdapter(t, testConfig(t, ""), api)

	_, err := a.ListRecoveryPoints(context.Background(), "ghost", "us-east-1")

	var copErr *inventory.CloudOperationError
	if !errors.As(err, &copErr) {
		t.Fatalf("error = %v; want *inventory.CloudOperationError", err)
	}
	if copErr.VaultName != "ghost" {
		t.Errorf("VaultName = %q; want ghost", copErr.VaultName)
	}
}

func TestClientCache_OneConfigLoadPerRegion(t *testing.T) {
	api := &mockBackupAPI{
		vaultPages: []*backupsvc.ListBackupVaultsOutput{{}, {}, {}},
	}
	a, loads := newTestAdapter(t, testConfig(t, ""), api)
	ctx := context.Background()

	if _, err := a.ListVaults(ctx, "us-east-1"); err != nil {
		t.Fatalf("ListVaults: %v", err)
	}
	if _, err := a.ListVaults(ctx, "us-east-1"); err != nil {
		t.Fatalf("ListVaults: %v", err)
	}
	if *loads != 1 {
		t.Errorf("config loads after two calls in one region = %d; want 1", *loads)
	}

	if _, err := a.ListVaults(ctx, "us-west-2"); err != nil {
		t.Fatalf("ListVaults: %v", err)
	}
	if *loads != 2 {
		t.Errorf("config loads after a second region = %d; want 2", *loads)
	}
}

func TestClientCache_ConfigLoadFailureIsWrapped(t *testing.T) {
	cause := errors.New("no credential providers")
	a := NewAdapterWithFactory(testConfig(t, ""), func(aws.Config) *ClientSet {
		t.Fatal("factory must not run when config loading fails")
		return nil
	})
	a.load = func(context.Context, string) (aws.Config, error) {
		return aws.Config{}, cause
	}

	_, err := a.ListVaults(context.Background(), "us-east-1")

	var copErr *inventory.CloudOperationError
	if !errors.As(err, &copErr) {
		t.Fatalf("error = %v; want *inventory.CloudOperationError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error must expose the cause")
	}
}

func TestAssumeRole_CredentialsInstalledOnRegionalConfig(t *testing.T) {
	var seen []aws.Config
	a := NewAdapterWithFactory(
		testConfig(t, "arn:aws:iam::210987654321:role/BackupReader"),
		func(cfg aws.Config) *ClientSet {
			seen = append(seen, cfg)
			return &ClientSet{Backup: &mockBackupAPI{
				vaultPages: []*backupsvc.ListBackupVaultsOutput{{}},
			}}
		},
	)
	a.load = func(_ context.Context, region string) (aws.Config, error) {
		return aws.Config{Region: region}, nil
	}

	if _, err := a.ListVaults(context.Background(), "us-east-1"); err != nil {
		t.Fatalf("ListVaults: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("factory calls = %d; want 1", len(seen))
	}
	if seen[0].Credentials == nil {
		t.Error("regional config must carry assumed-role credentials when a role ARN is set")
	}
	if seen[0].Region != "us-east-1" {
		t.Errorf("regional config Region = %q; want us-east-1", seen[0].Region)
	}
}

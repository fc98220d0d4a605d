package models

import "strings"

// DefaultSessionName is the STS role session name used when the caller does
// not provide one.
const DefaultSessionName = "aws-vault-shuffle"

// RegionConfig describes which account and regions an inventory run scans and
// how cross-account access is obtained. Fields are unexported so that a value
// can only be created through NewRegionConfig; an invalid RegionConfig never
// exists.
type RegionConfig struct {
	sourceAccount string
	regions       []string
	assumeRoleARN string
	externalID    string
	sessionName   string
}

// RegionConfigParams carries the raw inputs for NewRegionConfig.
// AssumeRoleARN, ExternalID, and SessionName are optional; an empty
// SessionName falls back to DefaultSessionName.
type RegionConfigParams struct {
	SourceAccount string
	Regions       []string
	AssumeRoleARN string
	ExternalID    string
	SessionName   string
}

// NewRegionConfig validates p and returns an immutable RegionConfig.
// Validation is all-or-nothing: any failure returns a *ValidationError and
// the zero RegionConfig.
func NewRegionConfig(p RegionConfigParams) (RegionConfig, error) {
	if !isAccountID(p.SourceAccount) {
		return RegionConfig{}, &ValidationError{
			Field:  "source_account",
			Value:  p.SourceAccount,
			Reason: "must be a 12-digit AWS account number",
		}
	}

	if len(p.Regions) == 0 {
		return RegionConfig{}, &ValidationError{
			Field:  "regions",
			Reason: "at least one region must be specified",
		}
	}

	for _, region := range p.Regions {
		if region == "" || !strings.Contains(region, "-") {
			return RegionConfig{}, &ValidationError{
				Field:  "regions",
				Value:  region,
				Reason: "invalid region format",
			}
		}
	}

	sessionName := p.SessionName
	if sessionName == "" {
		sessionName = DefaultSessionName
	}

	// Copy the slice so later mutation of p.Regions cannot reach in.
	regions := make([]string, len(p.Regions))
	copy(regions, p.Regions)

	return RegionConfig{
		sourceAccount: p.SourceAccount,
		regions:       regions,
		assumeRoleARN: p.AssumeRoleARN,
		externalID:    p.ExternalID,
		sessionName:   sessionName,
	}, nil
}

// SourceAccount returns the 12-digit source account number.
func (c RegionConfig) SourceAccount() string { return c.sourceAccount }

// Regions returns the configured regions in their original order.
// The returned slice is a copy; mutating it does not affect the config.
func (c RegionConfig) Regions() []string {
	regions := make([]string, len(c.regions))
	copy(regions, c.regions)
	return regions
}

// AssumeRoleARN returns the cross-account role ARN, or "" when the run uses
// ambient credentials.
func (c RegionConfig) AssumeRoleARN() string { return c.assumeRoleARN }

// ExternalID returns the optional external ID passed during role assumption.
func (c RegionConfig) ExternalID() string { return c.externalID }

// SessionName returns the STS role session name.
func (c RegionConfig) SessionName() string { return c.sessionName }

// RegionCount returns the number of configured regions.
func (c RegionConfig) RegionCount() int { return len(c.regions) }

// HasCrossAccountRole reports whether role assumption is configured.
func (c RegionConfig) HasCrossAccountRole() bool { return c.assumeRoleARN != "" }

// isAccountID reports whether s is exactly 12 ASCII digits.
func isAccountID(s string) bool {
	if len(s) != 12 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

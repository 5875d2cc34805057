// Package models defines the gorm models persisted by the API.
package models

// All lists every model in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&User{},
		&Holding{},
		&CollateralSelection{},
		&LoanApplication{},
		&LoanApplicationAsset{},
		&PlatformConnection{},
		&AuditLog{},
	}
}

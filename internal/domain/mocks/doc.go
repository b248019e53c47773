// Package mocks holds gomock doubles for the domain interfaces.
//
//go:generate mockgen -destination=directory_mock.go -package=mocks e2ekeys/internal/domain/interfaces KeyDirectory
//go:generate mockgen -destination=vault_mock.go -package=mocks e2ekeys/internal/domain/interfaces KeyVault
package mocks

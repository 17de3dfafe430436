package payment

import (
	"context"

	"github.com/workbay/workbay/pkg/uuidv7"
)

// StubProvider approves every charge immediately. Used in development and
// test environments where no processor credentials exist.
type StubProvider struct{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (provider *StubProvider) CreateCharge(_ context.Context, _ ChargeInput) (*ChargeResult, error) {
	return &ChargeResult{
		Reference: "stub_" + uuidv7.New(),
		Status:    ChargeStatusSucceeded,
	}, nil
}

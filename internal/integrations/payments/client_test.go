package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestNewClient(t *testing.T) {
	client, err := NewClient("pkey_test_abc123", "skey_test_abc123", "inr", nopLogger{})

	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "inr", client.currency)
}

func TestNewClient_EmptyKeys(t *testing.T) {
	_, err := NewClient("", "", "inr", nopLogger{})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestCharge_InvalidParams(t *testing.T) {
	client, err := NewClient("pkey_test_abc123", "skey_test_abc123", "inr", nopLogger{})
	require.NoError(t, err)

	// Невалидные параметры отклоняются до обращения к шлюзу
	_, err = client.Charge(ChargeRequest{OrderRef: "ORD-1-a", Amount: 0, CardToken: "tok_test"})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = client.Charge(ChargeRequest{OrderRef: "ORD-1-a", Amount: -50, CardToken: "tok_test"})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = client.Charge(ChargeRequest{OrderRef: "ORD-1-a", Amount: 100, CardToken: ""})
	assert.ErrorIs(t, err, ErrInternal)
}

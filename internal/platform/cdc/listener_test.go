package cdc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventUpdate(t *testing.T) {
	payload := []byte(`{
		"op": "UPDATE",
		"before": {"id": "r1", "user_id": "u1", "leave_type": "Vacaciones", "requested_days": 3, "approval_state": "pending", "processed": false},
		"after": {"id": "r1", "user_id": "u1", "leave_type": "Vacaciones", "requested_days": 3, "approval_state": "approved", "processed": false}
	}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE", event.Op)
	require.NotNil(t, event.Before)
	require.NotNil(t, event.After)
	assert.Equal(t, "pending", event.Before.ApprovalState)
	assert.Equal(t, "approved", event.After.ApprovalState)
	require.NotNil(t, event.After.RequestedDays)
	assert.True(t, event.After.RequestedDays.Equal(decimal.NewFromInt(3)))
}

func TestParseEventInsertHasNoBefore(t *testing.T) {
	payload := []byte(`{
		"op": "INSERT",
		"before": null,
		"after": {"id": "r1", "user_id": "u1", "leave_type": "Vacaciones", "requested_days": 1, "approval_state": "pending", "processed": false}
	}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Nil(t, event.Before)
	require.NotNil(t, event.After)
}

func TestParseEventFractionalDays(t *testing.T) {
	payload := []byte(`{
		"op": "UPDATE",
		"before": {"id": "r1", "approval_state": "pending"},
		"after": {"id": "r1", "user_id": "u1", "leave_type": "Vacation", "requested_days": 0.5, "approval_state": "approved", "processed": false}
	}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)
	require.NotNil(t, event.After.RequestedDays)
	assert.True(t, event.After.RequestedDays.Equal(decimal.NewFromFloat(0.5)))
}

func TestParseEventMissingCost(t *testing.T) {
	payload := []byte(`{
		"op": "UPDATE",
		"before": {"id": "r1", "approval_state": "pending"},
		"after": {"id": "r1", "user_id": "u1", "leave_type": "Vacaciones", "approval_state": "approved", "processed": false}
	}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Nil(t, event.After.RequestedDays, "absent cost must decode to nil, not zero")
}

func TestParseEventGarbage(t *testing.T) {
	_, err := ParseEvent([]byte("not json"))
	require.Error(t, err)
}

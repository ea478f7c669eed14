package dto

import (
	"encoding/json"
	"testing"

	"adwise-be/pkg/agent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecuteResponse(t *testing.T) {
	ok := NewExecuteResponse(&agent.Result{
		Status:   agent.StatusOK,
		Response: "Headline: Red Ceramic Mug",
		Steps:    []agent.Step{{Module: "InputGuard"}},
	})
	assert.Equal(t, "ok", ok.Status)
	assert.Nil(t, ok.Error)
	require.NotNil(t, ok.Response)
	assert.Equal(t, "Headline: Red Ceramic Mug", *ok.Response)

	failed := NewExecuteResponse(&agent.Result{
		Status: agent.StatusError,
		Error:  "EmptyInput: Empty prompt",
	})
	assert.Nil(t, failed.Response)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "EmptyInput: Empty prompt", *failed.Error)
	assert.NotNil(t, failed.Steps, "steps must serialize as [] rather than null")
}

func TestExecuteResponseWireShape(t *testing.T) {
	res := NewExecuteResponse(&agent.Result{Status: agent.StatusError, Error: "EmptyInput: Empty prompt"})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "status")
	assert.Contains(t, decoded, "error")
	assert.Contains(t, decoded, "response")
	assert.Contains(t, decoded, "steps")
	assert.Equal(t, "null", string(decoded["response"]))
	assert.Equal(t, "[]", string(decoded["steps"]))
}

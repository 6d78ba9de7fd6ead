package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appValidator "github.com/gastropro/backoffice/pkg/validator"
)

func testContext() context.Context {
	return context.Background()
}

func TestFormatValidationError(t *testing.T) {
	err := appValidator.ValidationErrors{
		{Field: "shift_time", Tag: "required"},
		{Field: "status", Tag: "oneof", Param: "ready delayed"},
		{Field: "table_number", Tag: "gte", Param: "0"},
	}

	require.Equal(t,
		"shift time is required; status must be one of: ready, delayed; table number must be at least 0",
		formatValidationError(err),
	)
	require.Equal(t, "invalid request payload", formatValidationError(nil))
}

package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotify/internal/domain"
	"quotify/internal/domain/client"
)

func TestListResponse_FromListResult(t *testing.T) {
	result := domain.ListResult[client.Client]{
		Items:      []client.Client{},
		TotalCount: 7,
		Limit:      10,
		Offset:     20,
	}

	resp := ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"totalCount":7,"limit":10,"offset":20}`, string(raw))
}

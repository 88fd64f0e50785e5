package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderRequest_Validate(t *testing.T) {
	userID := uuid.Must(uuid.NewV7()).String()

	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := CreateOrderRequest{UserID: userID, TotalAmount: decimal.RequireFromString("99.99")}

		assert.NoError(t, req.Validate())
	})

	t.Run("Error_MissingUserID", func(t *testing.T) {
		req := CreateOrderRequest{TotalAmount: decimal.NewFromInt(1)}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "userId")
	})

	t.Run("Error_InvalidUserID", func(t *testing.T) {
		req := CreateOrderRequest{UserID: "abc", TotalAmount: decimal.NewFromInt(1)}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "userId")
	})

	t.Run("Error_ZeroAmount", func(t *testing.T) {
		req := CreateOrderRequest{UserID: userID}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "totalAmount")
	})

	t.Run("Error_NegativeAmount", func(t *testing.T) {
		req := CreateOrderRequest{UserID: userID, TotalAmount: decimal.RequireFromString("-1.50")}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "totalAmount")
	})

	t.Run("Error_MoreThanTwoDecimals", func(t *testing.T) {
		for _, amount := range []string{"0.004", "150.005"} {
			req := CreateOrderRequest{UserID: userID, TotalAmount: decimal.RequireFromString(amount)}

			err := req.Validate()
			require.Error(t, err, amount)
			assert.Contains(t, err.Error(), "at most 2 decimal places")
		}
	})
}

func TestCreateOrderRequest_UnmarshalAmount(t *testing.T) {
	t.Run("Number", func(t *testing.T) {
		var req CreateOrderRequest
		require.NoError(t, json.Unmarshal([]byte(`{"userId":"x","totalAmount":12.5}`), &req))
		assert.True(t, req.TotalAmount.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("String", func(t *testing.T) {
		var req CreateOrderRequest
		require.NoError(t, json.Unmarshal([]byte(`{"userId":"x","totalAmount":"12.50"}`), &req))
		assert.True(t, req.TotalAmount.Equal(decimal.RequireFromString("12.5")))
	})
}

func TestCreateOrderRequest_ToInput(t *testing.T) {
	req := CreateOrderRequest{UserID: "u", TotalAmount: decimal.NewFromInt(3)}

	input := req.ToInput()

	assert.Equal(t, "u", input.UserID)
	assert.True(t, input.TotalAmount.Equal(decimal.NewFromInt(3)))
}

func TestUpdateOrderStatusRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{name: "Created", status: "CREATED"},
		{name: "Paid", status: "PAID"},
		{name: "Cancelled", status: "CANCELLED"},
		{name: "Empty", status: "", wantErr: true},
		{name: "Lowercase", status: "paid", wantErr: true},
		{name: "Unknown", status: "SHIPPED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := UpdateOrderStatusRequest{Status: tt.status}

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

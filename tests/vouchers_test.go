package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfun/joanie-sub003/internal/discount"
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/resource"
	"github.com/openfun/joanie-sub003/internal/voucher"
)

func TestVouchersAndDiscounts(t *testing.T) {
	e := startEnv(t)
	ctx := context.Background()

	var discountID string

	t.Run("List seeded discounts", func(t *testing.T) {
		page, err := e.app.Discounts.List(ctx, resource.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Count)
	})

	t.Run("Create amount discount", func(t *testing.T) {
		amount := 15.0
		created, err := e.app.Discounts.Create(ctx, discount.WritePayload{Amount: &amount})
		require.NoError(t, err)
		require.NotNil(t, created.Amount)
		assert.Equal(t, "-15.00 €", created.Label())
		discountID = created.ID
	})

	t.Run("Discount with both amount and rate is rejected", func(t *testing.T) {
		amount := 15.0
		rate := 0.3
		_, err := e.app.Discounts.Create(ctx, discount.WritePayload{Amount: &amount, Rate: &rate})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		fields := apperror.FieldsOf(err)
		assert.Contains(t, fields, "amount")
	})

	t.Run("Discount with neither amount nor rate is rejected", func(t *testing.T) {
		_, err := e.app.Discounts.Create(ctx, discount.WritePayload{})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("Create voucher with explicit code", func(t *testing.T) {
		created, err := e.app.Vouchers.Create(ctx, voucher.WritePayload{
			Code:        "SUMMER15",
			DiscountID:  discountID,
			MultipleUse: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "SUMMER15", created.Code)
		assert.Equal(t, discountID, created.Discount.ID)
	})

	t.Run("Create voucher with generated code", func(t *testing.T) {
		created, err := e.app.Vouchers.Create(ctx, voucher.WritePayload{
			DiscountID: discountID,
		})
		require.NoError(t, err)
		assert.Len(t, created.Code, 12)
	})

	t.Run("Voucher with unknown discount is rejected", func(t *testing.T) {
		_, err := e.app.Vouchers.Create(ctx, voucher.WritePayload{
			Code:       "BROKEN",
			DiscountID: "3fa85f64-5717-4562-b3fc-2c963f66afa6",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, apperror.FieldsOf(err), "discount_id")
	})

	t.Run("Filter vouchers by discount", func(t *testing.T) {
		page, err := e.app.Vouchers.List(ctx, resource.ListParams{
			Query: voucher.Filters{DiscountIDs: []string{discountID}}.Query(),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Count)
	})

	t.Run("Search vouchers by code", func(t *testing.T) {
		page, err := e.app.Vouchers.List(ctx, resource.ListParams{Search: "welcome"})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, "WELCOME10", page.Results[0].Code)
	})
}

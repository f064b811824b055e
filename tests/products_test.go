package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfun/joanie-sub003/internal/batchorder"
	"github.com/openfun/joanie-sub003/internal/certificatedefinition"
	"github.com/openfun/joanie-sub003/internal/offering"
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/product"
	"github.com/openfun/joanie-sub003/internal/resource"
	"github.com/openfun/joanie-sub003/internal/user"
)

func TestProductOfferings(t *testing.T) {
	e := startEnv(t)
	ctx := context.Background()

	var productID string
	var offeringID string

	t.Run("List seeded products", func(t *testing.T) {
		page, err := e.app.Products.List(ctx, resource.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 4, page.Count)
	})

	t.Run("Filter products by type", func(t *testing.T) {
		page, err := e.app.Products.List(ctx, resource.ListParams{
			Query: product.Filters{Type: product.TypeCredential}.Query(),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Count)
		for _, p := range page.Results {
			assert.Equal(t, product.TypeCredential, p.Type)
		}
	})

	t.Run("Create product with certificate definition", func(t *testing.T) {
		defs, err := e.app.CertificateDefinitions.List(ctx, resource.ListParams{
			Query: certificatedefinition.Filters{Template: certificatedefinition.TemplateCertificate}.Query(),
		})
		require.NoError(t, err)
		require.NotEmpty(t, defs.Results)

		price := 299.0
		created, err := e.app.Products.Create(ctx, product.WritePayload{
			Type:                    product.TypeCredential,
			Title:                   "Certified data engineer",
			CallToAction:            "Enroll now",
			Price:                   &price,
			PriceCurrency:           "EUR",
			CertificateDefinitionID: defs.Results[0].ID,
		})
		require.NoError(t, err)
		require.NotNil(t, created.CertificateDefinition)
		assert.Equal(t, defs.Results[0].ID, created.CertificateDefinition.ID)
		productID = created.ID
	})

	t.Run("Create product without price", func(t *testing.T) {
		_, err := e.app.Products.Create(ctx, product.WritePayload{
			Type:          product.TypeEnrollment,
			Title:         "Free enrollment",
			CallToAction:  "Enroll",
			PriceCurrency: "EUR",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, apperror.FieldsOf(err), "price")
	})

	t.Run("Create product with unknown contract definition", func(t *testing.T) {
		price := 50.0
		_, err := e.app.Products.Create(ctx, product.WritePayload{
			Type:                 product.TypeCredential,
			Title:                "Broken product",
			CallToAction:         "Enroll",
			Price:                &price,
			PriceCurrency:        "EUR",
			ContractDefinitionID: "3fa85f64-5717-4562-b3fc-2c963f66afa6",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, apperror.FieldsOf(err), "contract_definition_id")
	})

	t.Run("Create offering", func(t *testing.T) {
		courses, err := e.app.Courses.List(ctx, resource.ListParams{})
		require.NoError(t, err)
		require.NotEmpty(t, courses.Results)
		parent := courses.Results[0]
		require.NotEmpty(t, parent.Organizations)

		created, err := e.app.Offerings.Create(ctx, offering.WritePayload{
			CourseID:        parent.ID,
			ProductID:       productID,
			OrganizationIDs: []string{parent.Organizations[0].ID},
		})
		require.NoError(t, err)
		assert.Equal(t, parent.Code, created.Course.Code)
		assert.Equal(t, productID, created.Product.ID)
		offeringID = created.ID
	})

	t.Run("Filter offerings by product", func(t *testing.T) {
		page, err := e.app.Offerings.List(ctx, resource.ListParams{
			Query: offering.Filters{ProductIDs: []string{productID}}.Query(),
		})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, offeringID, page.Results[0].ID)
	})

	t.Run("Batch order lifecycle", func(t *testing.T) {
		staff := false
		owners, err := e.app.Users.List(ctx, resource.ListParams{
			Query: user.Filters{IsStaff: &staff}.Query(),
		})
		require.NoError(t, err)
		require.NotEmpty(t, owners.Results)

		created, err := e.app.BatchOrders.Create(ctx, batchorder.WritePayload{
			OwnerID:              owners.Results[0].ID,
			OfferingID:           offeringID,
			CompanyName:          "Globex Corporation",
			IdentificationNumber: "73282932000074",
			NbSeats:              12,
		})
		require.NoError(t, err)
		assert.Equal(t, batchorder.StatePending, created.State)
		assert.Equal(t, 12*299.0, created.Total)

		confirmed, err := e.app.BatchOrders.ConfirmPayment(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, batchorder.StateCompleted, confirmed.State)

		// a completed batch order cannot be paid twice
		_, err = e.app.BatchOrders.ConfirmPayment(ctx, created.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, apperror.FieldsOf(err), "state")
	})
}

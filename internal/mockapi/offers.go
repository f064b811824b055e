package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openfun/joanie-sub003/internal/offering"
	"github.com/openfun/joanie-sub003/internal/product"
)

// registerProducts wires the products endpoints.
func registerProducts(g *gin.RouterGroup, store *Store) {
	col := store.Products
	spec := listSpec[product.Product]{
		search: func(p product.Product, needle string) bool {
			return containsFold(p.Title, needle)
		},
		filters: map[string]func(product.Product, []string) bool{
			"type": func(p product.Product, values []string) bool {
				return anyOf(p.Type, values)
			},
		},
	}

	grp := g.Group("/products")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload product.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item := product.Product{ID: uuid.NewString()}
		if !applyProduct(c, store, &item, payload) {
			return
		}
		col.Insert(item)
		c.JSON(http.StatusCreated, item)
	})

	grp.PATCH("/:id/", func(c *gin.Context) {
		item, found := col.Get(c.Param("id"))
		if !found {
			notFound(c)
			return
		}
		var payload product.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		if !applyProduct(c, store, &item, payload) {
			return
		}
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

func applyProduct(c *gin.Context, store *Store, item *product.Product, payload product.WritePayload) bool {
	item.Type = payload.Type
	item.Title = payload.Title
	item.Description = payload.Description
	item.CallToAction = payload.CallToAction
	item.Price = *payload.Price
	item.PriceCurrency = payload.PriceCurrency
	item.Instructions = payload.Instructions

	item.CertificateDefinition = nil
	if payload.CertificateDefinitionID != "" {
		def, found := store.CertificateDefinitions.Get(payload.CertificateDefinitionID)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{
				"certificate_definition_id": []string{"Not a valid certificate definition."},
			})
			return false
		}
		item.CertificateDefinition = &product.DefinitionRef{ID: def.ID, Title: def.Title}
	}

	item.ContractDefinition = nil
	if payload.ContractDefinitionID != "" {
		def, found := store.ContractDefinitions.Get(payload.ContractDefinitionID)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{
				"contract_definition_id": []string{"Not a valid contract definition."},
			})
			return false
		}
		item.ContractDefinition = &product.DefinitionRef{ID: def.ID, Title: def.Title}
	}
	return true
}

// registerOfferings wires the offerings endpoints.
func registerOfferings(g *gin.RouterGroup, store *Store) {
	col := store.Offerings
	spec := listSpec[offering.Offering]{
		search: func(o offering.Offering, needle string) bool {
			return containsFold(o.Course.Code, needle) ||
				containsFold(o.Course.Title, needle) ||
				containsFold(o.Product.Title, needle)
		},
		filters: map[string]func(offering.Offering, []string) bool{
			"course_ids": func(o offering.Offering, values []string) bool {
				return anyOf(o.Course.ID, values)
			},
			"product_ids": func(o offering.Offering, values []string) bool {
				return anyOf(o.Product.ID, values)
			},
		},
	}

	grp := g.Group("/offerings")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload offering.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item := offering.Offering{ID: uuid.NewString(), CanEdit: true}
		if !applyOffering(c, store, &item, payload) {
			return
		}
		col.Insert(item)
		c.JSON(http.StatusCreated, item)
	})

	grp.PATCH("/:id/", func(c *gin.Context) {
		item, found := col.Get(c.Param("id"))
		if !found {
			notFound(c)
			return
		}
		var payload offering.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		if !applyOffering(c, store, &item, payload) {
			return
		}
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

func applyOffering(c *gin.Context, store *Store, item *offering.Offering, payload offering.WritePayload) bool {
	parentCourse, found := store.Courses.Get(payload.CourseID)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"course_id": []string{"Not a valid course."}})
		return false
	}
	parentProduct, found := store.Products.Get(payload.ProductID)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"product_id": []string{"Not a valid product."}})
		return false
	}
	orgs := make([]offering.OrganizationRef, 0, len(payload.OrganizationIDs))
	for _, id := range payload.OrganizationIDs {
		org, found := store.Organizations.Get(id)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"organization_ids": []string{"Not a valid organization."}})
			return false
		}
		orgs = append(orgs, offering.OrganizationRef{ID: org.ID, Code: org.Code, Title: org.Title})
	}

	item.Course = offering.CourseRef{ID: parentCourse.ID, Code: parentCourse.Code, Title: parentCourse.Title}
	item.Product = offering.ProductRef{ID: parentProduct.ID, Title: parentProduct.Title, Type: parentProduct.Type}
	item.Organizations = orgs
	item.URI = "/courses/" + parentCourse.Code + "/products/" + parentProduct.ID + "/"
	return true
}

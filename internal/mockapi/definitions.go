package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openfun/joanie-sub003/internal/certificatedefinition"
	"github.com/openfun/joanie-sub003/internal/contractdefinition"
	"github.com/openfun/joanie-sub003/internal/quotedefinition"
)

func registerCertificateDefinitions(g *gin.RouterGroup, store *Store) {
	col := store.CertificateDefinitions
	spec := listSpec[certificatedefinition.CertificateDefinition]{
		search: func(d certificatedefinition.CertificateDefinition, needle string) bool {
			return containsFold(d.Name, needle) || containsFold(d.Title, needle)
		},
		filters: map[string]func(certificatedefinition.CertificateDefinition, []string) bool{
			"template": func(d certificatedefinition.CertificateDefinition, values []string) bool {
				return anyOf(d.Template, values)
			},
		},
	}

	grp := g.Group("/certificate-definitions")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload certificatedefinition.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item := certificatedefinition.CertificateDefinition{
			ID:          uuid.NewString(),
			Name:        payload.Name,
			Title:       payload.Title,
			Description: payload.Description,
			Template:    payload.Template,
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
		var payload certificatedefinition.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item.Name = payload.Name
		item.Title = payload.Title
		item.Description = payload.Description
		item.Template = payload.Template
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

func registerContractDefinitions(g *gin.RouterGroup, store *Store) {
	col := store.ContractDefinitions
	spec := listSpec[contractdefinition.ContractDefinition]{
		search: func(d contractdefinition.ContractDefinition, needle string) bool {
			return containsFold(d.Title, needle)
		},
		filters: map[string]func(contractdefinition.ContractDefinition, []string) bool{
			"language": func(d contractdefinition.ContractDefinition, values []string) bool {
				return anyOf(d.Language, values)
			},
		},
	}

	grp := g.Group("/contract-definitions")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload contractdefinition.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item := contractdefinition.ContractDefinition{ID: uuid.NewString()}
		applyContractDefinition(&item, payload)
		col.Insert(item)
		c.JSON(http.StatusCreated, item)
	})

	grp.PATCH("/:id/", func(c *gin.Context) {
		item, found := col.Get(c.Param("id"))
		if !found {
			notFound(c)
			return
		}
		var payload contractdefinition.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		applyContractDefinition(&item, payload)
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

func applyContractDefinition(item *contractdefinition.ContractDefinition, payload contractdefinition.WritePayload) {
	item.Title = payload.Title
	item.Description = payload.Description
	item.Body = payload.Body
	item.Appendix = payload.Appendix
	item.Language = payload.Language
	item.Name = payload.Name
}

func registerQuoteDefinitions(g *gin.RouterGroup, store *Store) {
	col := store.QuoteDefinitions
	spec := listSpec[quotedefinition.QuoteDefinition]{
		search: func(d quotedefinition.QuoteDefinition, needle string) bool {
			return containsFold(d.Title, needle)
		},
		filters: map[string]func(quotedefinition.QuoteDefinition, []string) bool{
			"language": func(d quotedefinition.QuoteDefinition, values []string) bool {
				return anyOf(d.Language, values)
			},
		},
	}

	grp := g.Group("/quote-definitions")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload quotedefinition.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item := quotedefinition.QuoteDefinition{
			ID:          uuid.NewString(),
			Title:       payload.Title,
			Description: payload.Description,
			Body:        payload.Body,
			Language:    payload.Language,
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
		var payload quotedefinition.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item.Title = payload.Title
		item.Description = payload.Description
		item.Body = payload.Body
		item.Language = payload.Language
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

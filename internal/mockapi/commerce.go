package mockapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openfun/joanie-sub003/internal/batchorder"
	"github.com/openfun/joanie-sub003/internal/order"
)

// registerOrders wires the orders endpoints. Orders cannot be created
// through the back office; the collection is read-only apart from the
// cancel and refund actions.
func registerOrders(g *gin.RouterGroup, store *Store) {
	col := store.Orders
	spec := listSpec[order.Order]{
		search: func(o order.Order, needle string) bool {
			return containsFold(o.Owner.Username, needle) ||
				containsFold(o.Owner.Email, needle) ||
				containsFold(o.Product.Title, needle)
		},
		filters: map[string]func(order.Order, []string) bool{
			"state": func(o order.Order, values []string) bool {
				return anyOf(o.State, values)
			},
			"product_ids": func(o order.Order, values []string) bool {
				return anyOf(o.Product.ID, values)
			},
			"organization_ids": func(o order.Order, values []string) bool {
				return o.Organization != nil && anyOf(o.Organization.ID, values)
			},
			"owner_ids": func(o order.Order, values []string) bool {
				return anyOf(o.Owner.ID, values)
			},
		},
	}

	grp := g.Group("/orders")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))

	grp.POST("/:id/cancel/", func(c *gin.Context) {
		item, found := col.Get(c.Param("id"))
		if !found {
			notFound(c)
			return
		}
		if item.State != order.StateDraft && item.State != order.StatePending {
			c.JSON(http.StatusBadRequest, gin.H{
				"state": []string{"Cannot cancel an order in state " + item.State + "."},
			})
			return
		}
		item.State = order.StateCanceled
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})

	grp.POST("/:id/refund/", func(c *gin.Context) {
		item, found := col.Get(c.Param("id"))
		if !found {
			notFound(c)
			return
		}
		if item.State != order.StateCompleted {
			c.JSON(http.StatusBadRequest, gin.H{
				"state": []string{"Only completed orders can be refunded."},
			})
			return
		}
		item.State = order.StateRefunded
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

// registerBatchOrders wires the batch orders endpoints.
func registerBatchOrders(g *gin.RouterGroup, store *Store) {
	col := store.BatchOrders
	spec := listSpec[batchorder.BatchOrder]{
		search: func(b batchorder.BatchOrder, needle string) bool {
			return containsFold(b.CompanyName, needle) || containsFold(b.Owner.Username, needle)
		},
		filters: map[string]func(batchorder.BatchOrder, []string) bool{
			"state": func(b batchorder.BatchOrder, values []string) bool {
				return anyOf(b.State, values)
			},
			"organization_ids": func(b batchorder.BatchOrder, values []string) bool {
				// The mock does not track the selling organization on
				// batch orders; the filter matches nothing rather than
				// failing, like an empty queryset.
				return false
			},
		},
	}

	grp := g.Group("/batch-orders")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload batchorder.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		owner, found := store.Users.Get(payload.OwnerID)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"owner_id": []string{"Not a valid user."}})
			return
		}
		off, found := store.Offerings.Get(payload.OfferingID)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"offering_id": []string{"Not a valid offering."}})
			return
		}
		unitPrice := 0.0
		if prod, found := store.Products.Get(off.Product.ID); found {
			unitPrice = prod.Price
		}

		item := batchorder.BatchOrder{
			ID:    uuid.NewString(),
			State: batchorder.StatePending,
			Owner: batchorder.OwnerRef{ID: owner.ID, Username: owner.Username, Email: owner.Email},
			Offering: batchorder.OfferingRef{
				ID:           off.ID,
				CourseCode:   off.Course.Code,
				ProductTitle: off.Product.Title,
			},
			CompanyName:          payload.CompanyName,
			IdentificationNumber: payload.IdentificationNumber,
			NbSeats:              payload.NbSeats,
			Total:                unitPrice * float64(payload.NbSeats),
			Currency:             "EUR",
			CreatedOn:            time.Now().UTC(),
		}
		col.Insert(item)
		c.JSON(http.StatusCreated, item)
	})

	grp.POST("/:id/confirm-payment/", func(c *gin.Context) {
		item, found := col.Get(c.Param("id"))
		if !found {
			notFound(c)
			return
		}
		if item.State != batchorder.StatePending && item.State != batchorder.StateQuoted {
			c.JSON(http.StatusBadRequest, gin.H{
				"state": []string{"Cannot confirm payment of a batch order in state " + item.State + "."},
			})
			return
		}
		item.State = batchorder.StateCompleted
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

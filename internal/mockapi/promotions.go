package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openfun/joanie-sub003/internal/discount"
	"github.com/openfun/joanie-sub003/internal/voucher"
)

// registerDiscounts wires the discounts endpoints.
func registerDiscounts(g *gin.RouterGroup, store *Store) {
	col := store.Discounts
	spec := listSpec[discount.Discount]{
		search: func(d discount.Discount, needle string) bool {
			return containsFold(d.Label(), needle)
		},
		filters: map[string]func(discount.Discount, []string) bool{},
	}

	grp := g.Group("/discounts")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload discount.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item := discount.Discount{
			ID:     uuid.NewString(),
			Amount: payload.Amount,
			Rate:   payload.Rate,
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
		var payload discount.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item.Amount = payload.Amount
		item.Rate = payload.Rate
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

// registerVouchers wires the vouchers endpoints.
func registerVouchers(g *gin.RouterGroup, store *Store) {
	col := store.Vouchers
	spec := listSpec[voucher.Voucher]{
		search: func(v voucher.Voucher, needle string) bool {
			return containsFold(v.Code, needle)
		},
		filters: map[string]func(voucher.Voucher, []string) bool{
			"discount_ids": func(v voucher.Voucher, values []string) bool {
				return anyOf(v.Discount.ID, values)
			},
		},
	}

	grp := g.Group("/vouchers")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload voucher.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		ref, ok := resolveDiscount(c, store, payload.DiscountID)
		if !ok {
			return
		}
		code := payload.Code
		if code == "" {
			code = generateVoucherCode()
		}
		item := voucher.Voucher{
			ID:            uuid.NewString(),
			Code:          code,
			Discount:      ref,
			MultipleUse:   payload.MultipleUse,
			MultipleUsers: payload.MultipleUsers,
			CreatedOn:     time.Now().UTC(),
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
		var payload voucher.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		ref, ok := resolveDiscount(c, store, payload.DiscountID)
		if !ok {
			return
		}
		if payload.Code != "" {
			item.Code = payload.Code
		}
		item.Discount = ref
		item.MultipleUse = payload.MultipleUse
		item.MultipleUsers = payload.MultipleUsers
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

func resolveDiscount(c *gin.Context, store *Store, id string) (voucher.DiscountRef, bool) {
	d, found := store.Discounts.Get(id)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"discount_id": []string{"Not a valid discount."}})
		return voucher.DiscountRef{}, false
	}
	return voucher.DiscountRef{ID: d.ID, Amount: d.Amount, Rate: d.Rate}, true
}

func generateVoucherCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/openfun/joanie-sub003/internal/app"
	"github.com/openfun/joanie-sub003/internal/batchorder"
	"github.com/openfun/joanie-sub003/internal/certificatedefinition"
	"github.com/openfun/joanie-sub003/internal/contractdefinition"
	"github.com/openfun/joanie-sub003/internal/course"
	"github.com/openfun/joanie-sub003/internal/courserun"
	"github.com/openfun/joanie-sub003/internal/discount"
	"github.com/openfun/joanie-sub003/internal/listing"
	"github.com/openfun/joanie-sub003/internal/offering"
	"github.com/openfun/joanie-sub003/internal/order"
	"github.com/openfun/joanie-sub003/internal/organization"
	"github.com/openfun/joanie-sub003/internal/pkg/response"
	"github.com/openfun/joanie-sub003/internal/product"
	"github.com/openfun/joanie-sub003/internal/quotedefinition"
	"github.com/openfun/joanie-sub003/internal/resource"
	"github.com/openfun/joanie-sub003/internal/user"
	"github.com/openfun/joanie-sub003/internal/voucher"
)

// row is the presentation shape every resource is flattened into, so
// one table binding serves all of them.
type row struct {
	id    string
	cells []string
}

// rowSource adapts a typed repository into a listing source of rows.
type rowSource[T any] struct {
	src   listing.Source[T]
	cells func(T) row
}

func (s rowSource[T]) List(ctx context.Context, params resource.ListParams) (*response.Paginated[row], error) {
	page, err := s.src.List(ctx, params)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(page.Results))
	for _, item := range page.Results {
		rows = append(rows, s.cells(item))
	}
	return &response.Paginated[row]{
		Count:    page.Count,
		Next:     page.Next,
		Previous: page.Previous,
		Results:  rows,
	}, nil
}

// binding declares how one resource renders: its table columns and the
// source producing its rows.
type binding struct {
	name    string
	columns []table.Column
	source  func(c *app.Container) listing.Source[row]
}

func adapt[T any](src listing.Source[T], cells func(T) row) listing.Source[row] {
	return rowSource[T]{src: src, cells: cells}
}

// bindings maps the resource argument of list/browse to its rendering.
var bindings = map[string]binding{
	"organizations": {
		name: "organizations",
		columns: []table.Column{
			{Title: "Code", Width: 12}, {Title: "Title", Width: 42}, {Title: "Country", Width: 8},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.Organizations, func(o organization.Organization) row {
				return row{id: o.ID, cells: []string{o.Code, o.Title, o.Country}}
			})
		},
	},
	"courses": {
		name: "courses",
		columns: []table.Column{
			{Title: "Code", Width: 10}, {Title: "Title", Width: 42}, {Title: "Organizations", Width: 24},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.Courses, func(item course.Course) row {
				codes := make([]string, 0, len(item.Organizations))
				for _, org := range item.Organizations {
					codes = append(codes, org.Code)
				}
				return row{id: item.ID, cells: []string{item.Code, item.Title, strings.Join(codes, ", ")}}
			})
		},
	},
	"course-runs": {
		name: "course runs",
		columns: []table.Column{
			{Title: "Course", Width: 10}, {Title: "Title", Width: 24},
			{Title: "Start", Width: 12}, {Title: "End", Width: 12}, {Title: "State", Width: 16},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.CourseRuns, func(r courserun.CourseRun) row {
				return row{id: r.ID, cells: []string{
					r.Course.Code, r.Title, formatDate(r.Start), formatDate(r.End), r.State.Text,
				}}
			})
		},
	},
	"products": {
		name: "products",
		columns: []table.Column{
			{Title: "Title", Width: 42}, {Title: "Type", Width: 12}, {Title: "Price", Width: 12},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.Products, func(p product.Product) row {
				return row{id: p.ID, cells: []string{
					p.Title, p.Type, fmt.Sprintf("%.2f %s", p.Price, p.PriceCurrency),
				}}
			})
		},
	},
	"offerings": {
		name: "offerings",
		columns: []table.Column{
			{Title: "Course", Width: 10}, {Title: "Product", Width: 40}, {Title: "Organizations", Width: 24},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.Offerings, func(o offering.Offering) row {
				codes := make([]string, 0, len(o.Organizations))
				for _, org := range o.Organizations {
					codes = append(codes, org.Code)
				}
				return row{id: o.ID, cells: []string{o.Course.Code, o.Product.Title, strings.Join(codes, ", ")}}
			})
		},
	},
	"orders": {
		name: "orders",
		columns: []table.Column{
			{Title: "Owner", Width: 16}, {Title: "Product", Width: 34},
			{Title: "State", Width: 10}, {Title: "Total", Width: 12}, {Title: "Created", Width: 12},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.Orders, func(o order.Order) row {
				return row{id: o.ID, cells: []string{
					o.Owner.Username, o.Product.Title, o.State,
					fmt.Sprintf("%.2f %s", o.Total, o.Currency),
					o.CreatedOn.Format("2006-01-02"),
				}}
			})
		},
	},
	"batch-orders": {
		name: "batch orders",
		columns: []table.Column{
			{Title: "Company", Width: 24}, {Title: "Offering", Width: 30},
			{Title: "Seats", Width: 6}, {Title: "State", Width: 10}, {Title: "Total", Width: 12},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.BatchOrders, func(b batchorder.BatchOrder) row {
				return row{id: b.ID, cells: []string{
					b.CompanyName, b.Offering.ProductTitle,
					strconv.Itoa(b.NbSeats), b.State,
					fmt.Sprintf("%.2f %s", b.Total, b.Currency),
				}}
			})
		},
	},
	"vouchers": {
		name: "vouchers",
		columns: []table.Column{
			{Title: "Code", Width: 16}, {Title: "Discount", Width: 12},
			{Title: "Multiple use", Width: 12}, {Title: "Orders", Width: 8},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.Vouchers, func(v voucher.Voucher) row {
				return row{id: v.ID, cells: []string{
					v.Code, discountLabel(v.Discount.Amount, v.Discount.Rate),
					strconv.FormatBool(v.MultipleUse), strconv.Itoa(v.OrdersCount),
				}}
			})
		},
	},
	"discounts": {
		name: "discounts",
		columns: []table.Column{
			{Title: "Discount", Width: 14}, {Title: "Used", Width: 8},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.Discounts, func(d discount.Discount) row {
				return row{id: d.ID, cells: []string{d.Label(), strconv.Itoa(d.IsUsed)}}
			})
		},
	},
	"certificate-definitions": {
		name: "certificate definitions",
		columns: []table.Column{
			{Title: "Name", Width: 24}, {Title: "Title", Width: 36}, {Title: "Template", Width: 12},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.CertificateDefinitions, func(d certificatedefinition.CertificateDefinition) row {
				return row{id: d.ID, cells: []string{d.Name, d.Title, d.Template}}
			})
		},
	},
	"contract-definitions": {
		name: "contract definitions",
		columns: []table.Column{
			{Title: "Title", Width: 36}, {Title: "Template", Width: 28}, {Title: "Language", Width: 10},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.ContractDefinitions, func(d contractdefinition.ContractDefinition) row {
				return row{id: d.ID, cells: []string{d.Title, d.Name, d.Language}}
			})
		},
	},
	"quote-definitions": {
		name: "quote definitions",
		columns: []table.Column{
			{Title: "Title", Width: 40}, {Title: "Language", Width: 10},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.QuoteDefinitions, func(d quotedefinition.QuoteDefinition) row {
				return row{id: d.ID, cells: []string{d.Title, d.Language}}
			})
		},
	},
	"users": {
		name: "users",
		columns: []table.Column{
			{Title: "Username", Width: 18}, {Title: "Full name", Width: 24},
			{Title: "Email", Width: 28}, {Title: "Staff", Width: 6},
		},
		source: func(c *app.Container) listing.Source[row] {
			return adapt(c.Users, func(u user.User) row {
				return row{id: u.ID, cells: []string{
					u.Username, u.FullName, u.Email, strconv.FormatBool(u.IsStaff),
				}}
			})
		},
	},
}

// resourceNames lists the accepted resource arguments, sorted for help
// texts and error messages.
func resourceNames() []string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

func discountLabel(amount, rate *float64) string {
	if rate != nil {
		return fmt.Sprintf("-%d%%", int(*rate*100))
	}
	if amount != nil {
		return fmt.Sprintf("-%.2f", *amount)
	}
	return "-"
}

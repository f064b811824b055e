package mockapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openfun/joanie-sub003/internal/batchorder"
	"github.com/openfun/joanie-sub003/internal/certificatedefinition"
	"github.com/openfun/joanie-sub003/internal/contractdefinition"
	"github.com/openfun/joanie-sub003/internal/course"
	"github.com/openfun/joanie-sub003/internal/courserun"
	"github.com/openfun/joanie-sub003/internal/discount"
	"github.com/openfun/joanie-sub003/internal/offering"
	"github.com/openfun/joanie-sub003/internal/order"
	"github.com/openfun/joanie-sub003/internal/organization"
	"github.com/openfun/joanie-sub003/internal/product"
	"github.com/openfun/joanie-sub003/internal/quotedefinition"
	"github.com/openfun/joanie-sub003/internal/user"
	"github.com/openfun/joanie-sub003/internal/voucher"
)

// seedID derives a deterministic UUID from a fixture name, so seeded
// data keeps the same ids across restarts and test runs.
func seedID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://joanie.test/"+name)).String()
}

// Seed fills the store with a coherent fixture set: organizations
// carrying courses, products offered on them, orders in every state,
// and enough rows on each collection to paginate.
func Seed(store *Store) {
	seededAt := time.Date(2024, 9, 2, 9, 0, 0, 0, time.UTC)

	// Accounts
	staff := user.User{
		ID: seedID("users/admin"), Username: "admin",
		FullName: "Admin FUN", Email: "admin@fun-mooc.fr",
		IsStaff: true, IsSuperuser: true,
	}
	store.Users.Insert(staff)
	learners := make([]user.User, 0, 6)
	for i := 1; i <= 6; i++ {
		u := user.User{
			ID:       seedID(fmt.Sprintf("users/learner-%d", i)),
			Username: fmt.Sprintf("learner_%02d", i),
			FullName: fmt.Sprintf("Learner %02d", i),
			Email:    fmt.Sprintf("learner%02d@example.org", i),
		}
		learners = append(learners, u)
		store.Users.Insert(u)
	}

	// Organizations
	orgSpecs := []struct{ code, title, country string }{
		{"UPS", "Université Paris-Saclay", "FR"},
		{"ULIEGE", "Université de Liège", "BE"},
		{"EPFL", "École Polytechnique Fédérale de Lausanne", "CH"},
		{"MINES", "Mines Paris - PSL", "FR"},
	}
	orgs := make([]organization.Organization, 0, len(orgSpecs))
	for _, s := range orgSpecs {
		o := organization.Organization{
			ID:             seedID("organizations/" + s.code),
			Code:           s.code,
			Title:          s.title,
			Country:        s.country,
			Representative: "Registrar Office",
			ContactEmail:   "contact@" + s.code + ".example",
		}
		orgs = append(orgs, o)
		store.Organizations.Insert(o)
	}

	// Courses, two per organization
	courses := make([]course.Course, 0, len(orgs)*2)
	for i, org := range orgs {
		for j := 1; j <= 2; j++ {
			code := fmt.Sprintf("%05d", i*2+j)
			c := course.Course{
				ID:     seedID("courses/" + code),
				Code:   code,
				Title:  fmt.Sprintf("How to train your model %s", code),
				Effort: "PT40H",
				Organizations: []course.OrganizationRef{
					{ID: org.ID, Code: org.Code, Title: org.Title},
				},
			}
			courses = append(courses, c)
			store.Courses.Insert(c)
		}
	}

	// Course runs, one open and one archived per course
	for _, c := range courses {
		openStart := seededAt.AddDate(0, 0, 7)
		openEnd := seededAt.AddDate(0, 3, 0)
		enrollStart := seededAt.AddDate(0, 0, -7)
		enrollEnd := seededAt.AddDate(0, 1, 0)
		run := courserun.CourseRun{
			ID:              seedID("course-runs/" + c.Code + "-session-1"),
			ResourceLink:    "https://lms.example.org/courses/" + c.Code + "/session01/",
			Title:           "Session 1",
			Course:          courserun.CourseRef{ID: c.ID, Code: c.Code, Title: c.Title},
			Start:           &openStart,
			End:             &openEnd,
			EnrollmentStart: &enrollStart,
			EnrollmentEnd:   &enrollEnd,
			Languages:       []string{"fr", "en"},
			IsGradable:      true,
			IsListed:        true,
		}
		run.State = computeRunState(run)
		store.CourseRuns.Insert(run)

		oldStart := seededAt.AddDate(-1, 0, 0)
		oldEnd := seededAt.AddDate(0, -6, 0)
		archived := courserun.CourseRun{
			ID:           seedID("course-runs/" + c.Code + "-session-0"),
			ResourceLink: "https://lms.example.org/courses/" + c.Code + "/session00/",
			Title:        "Session 0",
			Course:       courserun.CourseRef{ID: c.ID, Code: c.Code, Title: c.Title},
			Start:        &oldStart,
			End:          &oldEnd,
			Languages:    []string{"fr"},
			IsListed:     false,
		}
		archived.State = computeRunState(archived)
		store.CourseRuns.Insert(archived)
	}

	// Definitions
	certDef := certificatedefinition.CertificateDefinition{
		ID:       seedID("certificate-definitions/default"),
		Name:     "certificate-default",
		Title:    "Certificate of achievement",
		Template: certificatedefinition.TemplateCertificate,
	}
	store.CertificateDefinitions.Insert(certDef)
	store.CertificateDefinitions.Insert(certificatedefinition.CertificateDefinition{
		ID:       seedID("certificate-definitions/degree"),
		Name:     "degree-default",
		Title:    "University degree",
		Template: certificatedefinition.TemplateDegree,
	})

	contractDef := contractdefinition.ContractDefinition{
		ID:       seedID("contract-definitions/default"),
		Title:    "Training agreement",
		Body:     "## Terms\nThe learner agrees to follow the course.",
		Language: "fr-fr",
		Name:     "contract_definition_default",
	}
	store.ContractDefinitions.Insert(contractDef)

	store.QuoteDefinitions.Insert(quotedefinition.QuoteDefinition{
		ID:       seedID("quote-definitions/default"),
		Title:    "Company quote",
		Body:     "## Quote\nValid for thirty days.",
		Language: "fr-fr",
	})

	// Products
	prices := []float64{100, 250, 0, 480}
	types := []string{product.TypeCredential, product.TypeCredential, product.TypeEnrollment, product.TypeCertificate}
	products := make([]product.Product, 0, 4)
	for i := 0; i < 4; i++ {
		p := product.Product{
			ID:            seedID(fmt.Sprintf("products/%d", i+1)),
			Type:          types[i],
			Title:         fmt.Sprintf("Become a machine learning expert vol.%d", i+1),
			CallToAction:  "Purchase now",
			Price:         prices[i],
			PriceCurrency: "EUR",
		}
		if p.Type == product.TypeCredential {
			p.CertificateDefinition = &product.DefinitionRef{ID: certDef.ID, Title: certDef.Title}
			p.ContractDefinition = &product.DefinitionRef{ID: contractDef.ID, Title: contractDef.Title}
		}
		products = append(products, p)
		store.Products.Insert(p)
	}

	// Offerings, one per product on a matching course
	offerings := make([]offering.Offering, 0, len(products))
	for i, p := range products {
		c := courses[i%len(courses)]
		org := orgs[i%len(orgs)]
		off := offering.Offering{
			ID:      seedID(fmt.Sprintf("offerings/%d", i+1)),
			Course:  offering.CourseRef{ID: c.ID, Code: c.Code, Title: c.Title},
			Product: offering.ProductRef{ID: p.ID, Title: p.Title, Type: p.Type},
			Organizations: []offering.OrganizationRef{
				{ID: org.ID, Code: org.Code, Title: org.Title},
			},
			URI:     "/courses/" + c.Code + "/products/" + p.ID + "/",
			CanEdit: true,
		}
		offerings = append(offerings, off)
		store.Offerings.Insert(off)
	}

	// Discounts and vouchers
	ten := 10.0
	fifth := 0.2
	half := 0.5
	discounts := []discount.Discount{
		{ID: seedID("discounts/amount-10"), Amount: &ten},
		{ID: seedID("discounts/rate-20"), Rate: &fifth},
		{ID: seedID("discounts/rate-50"), Rate: &half},
	}
	for _, d := range discounts {
		store.Discounts.Insert(d)
	}
	for i, code := range []string{"WELCOME10", "SPRING20", "STAFF50"} {
		d := discounts[i]
		store.Vouchers.Insert(voucher.Voucher{
			ID:          seedID("vouchers/" + code),
			Code:        code,
			Discount:    voucher.DiscountRef{ID: d.ID, Amount: d.Amount, Rate: d.Rate},
			MultipleUse: i > 0,
			CreatedOn:   seededAt,
		})
	}

	// Orders across every state
	states := []string{
		order.StateCompleted, order.StatePending, order.StateCompleted,
		order.StateDraft, order.StateCanceled,
	}
	for i := 0; i < 15; i++ {
		owner := learners[i%len(learners)]
		p := products[i%len(products)]
		org := orgs[i%len(orgs)]
		store.Orders.Insert(order.Order{
			ID:           seedID(fmt.Sprintf("orders/%d", i+1)),
			State:        states[i%len(states)],
			Owner:        order.OwnerRef{ID: owner.ID, Username: owner.Username, FullName: owner.FullName, Email: owner.Email},
			Product:      order.ProductRef{ID: p.ID, Title: p.Title},
			Organization: &order.OrganizationRef{ID: org.ID, Code: org.Code, Title: org.Title},
			Total:        p.Price,
			Currency:     "EUR",
			CreatedOn:    seededAt.AddDate(0, 0, -i),
		})
	}

	// Batch orders
	for i, state := range []string{batchorder.StatePending, batchorder.StateCompleted} {
		off := offerings[i%len(offerings)]
		store.BatchOrders.Insert(batchorder.BatchOrder{
			ID:    seedID(fmt.Sprintf("batch-orders/%d", i+1)),
			State: state,
			Owner: batchorder.OwnerRef{ID: learners[i].ID, Username: learners[i].Username, Email: learners[i].Email},
			Offering: batchorder.OfferingRef{
				ID:           off.ID,
				CourseCode:   off.Course.Code,
				ProductTitle: off.Product.Title,
			},
			CompanyName:          fmt.Sprintf("ACME Corp %d", i+1),
			IdentificationNumber: fmt.Sprintf("8343722000%02d", i+1),
			NbSeats:              10 * (i + 1),
			Total:                1000 * float64(i+1),
			Currency:             "EUR",
			CreatedOn:            seededAt,
		})
	}
}

package mockapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openfun/joanie-sub003/internal/course"
	"github.com/openfun/joanie-sub003/internal/courserun"
	"github.com/openfun/joanie-sub003/internal/organization"
)

// registerOrganizations wires the organizations endpoints.
func registerOrganizations(g *gin.RouterGroup, store *Store) {
	col := store.Organizations
	spec := listSpec[organization.Organization]{
		search: func(o organization.Organization, needle string) bool {
			return containsFold(o.Code, needle) || containsFold(o.Title, needle)
		},
		filters: map[string]func(organization.Organization, []string) bool{
			"country": func(o organization.Organization, values []string) bool {
				return anyOf(o.Country, values)
			},
		},
	}

	grp := g.Group("/organizations")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload organization.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		item := organization.Organization{ID: uuid.NewString()}
		applyOrganization(&item, payload)
		col.Insert(item)
		c.JSON(http.StatusCreated, item)
	})

	grp.PATCH("/:id/", func(c *gin.Context) {
		item, found := col.Get(c.Param("id"))
		if !found {
			notFound(c)
			return
		}

		// Logo uploads arrive as multipart data, form edits as JSON.
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			file, err := c.FormFile("logo")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"logo": []string{"No file was submitted."}})
				return
			}
			item.Logo = &organization.Image{
				Filename: file.Filename,
				Src:      "/media/organizations/" + item.ID + "/" + file.Filename,
				Size:     file.Size,
			}
			col.Replace(item)
			c.JSON(http.StatusOK, item)
			return
		}

		var payload organization.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		applyOrganization(&item, payload)
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

func applyOrganization(item *organization.Organization, payload organization.WritePayload) {
	item.Code = payload.Code
	item.Title = payload.Title
	item.Representative = payload.Representative
	item.EnterpriseCode = payload.EnterpriseCode
	item.ActivityCategoryCode = payload.ActivityCategoryCode
	item.ContactEmail = payload.ContactEmail
	item.ContactPhone = payload.ContactPhone
	item.DPOEmail = payload.DPOEmail
	item.Country = payload.Country
}

// registerCourses wires the courses endpoints.
func registerCourses(g *gin.RouterGroup, store *Store) {
	col := store.Courses
	spec := listSpec[course.Course]{
		search: func(c course.Course, needle string) bool {
			return containsFold(c.Code, needle) || containsFold(c.Title, needle)
		},
		filters: map[string]func(course.Course, []string) bool{
			"organization_ids": func(c course.Course, values []string) bool {
				for _, org := range c.Organizations {
					if anyOf(org.ID, values) {
						return true
					}
				}
				return false
			},
		},
	}

	grp := g.Group("/courses")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload course.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		orgs, ok := resolveCourseOrganizations(c, store, payload.OrganizationIDs)
		if !ok {
			return
		}
		item := course.Course{
			ID:            uuid.NewString(),
			Code:          payload.Code,
			Title:         payload.Title,
			Effort:        payload.Effort,
			Organizations: orgs,
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

		if strings.HasPrefix(c.ContentType(), "multipart/") {
			file, err := c.FormFile("cover")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"cover": []string{"No file was submitted."}})
				return
			}
			item.Cover = &course.Image{
				Filename: file.Filename,
				Src:      "/media/courses/" + item.ID + "/" + file.Filename,
				Size:     file.Size,
			}
			col.Replace(item)
			c.JSON(http.StatusOK, item)
			return
		}

		var payload course.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		orgs, ok := resolveCourseOrganizations(c, store, payload.OrganizationIDs)
		if !ok {
			return
		}
		item.Code = payload.Code
		item.Title = payload.Title
		item.Effort = payload.Effort
		item.Organizations = orgs
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

func resolveCourseOrganizations(c *gin.Context, store *Store, ids []string) ([]course.OrganizationRef, bool) {
	refs := make([]course.OrganizationRef, 0, len(ids))
	for _, id := range ids {
		org, found := store.Organizations.Get(id)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{
				"organization_ids": []string{strconv.Quote(id) + " is not a valid organization."},
			})
			return nil, false
		}
		refs = append(refs, course.OrganizationRef{ID: org.ID, Code: org.Code, Title: org.Title})
	}
	return refs, true
}

// registerCourseRuns wires the course runs endpoints.
func registerCourseRuns(g *gin.RouterGroup, store *Store) {
	col := store.CourseRuns
	spec := listSpec[courserun.CourseRun]{
		search: func(r courserun.CourseRun, needle string) bool {
			return containsFold(r.Title, needle) || containsFold(r.ResourceLink, needle)
		},
		filters: map[string]func(courserun.CourseRun, []string) bool{
			"course_ids": func(r courserun.CourseRun, values []string) bool {
				return anyOf(r.Course.ID, values)
			},
			"is_gradable": func(r courserun.CourseRun, values []string) bool {
				return anyOf(strconv.FormatBool(r.IsGradable), values)
			},
			"is_listed": func(r courserun.CourseRun, values []string) bool {
				return anyOf(strconv.FormatBool(r.IsListed), values)
			},
		},
	}

	grp := g.Group("/course-runs")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
	grp.DELETE("/:id/", deleteHandler(col))

	grp.POST("/", func(c *gin.Context) {
		var payload courserun.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		parent, found := store.Courses.Get(payload.CourseID)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"course_id": []string{"Not a valid course."}})
			return
		}
		item := courserun.CourseRun{ID: uuid.NewString()}
		applyCourseRun(&item, parent, payload)
		col.Insert(item)
		c.JSON(http.StatusCreated, item)
	})

	grp.PATCH("/:id/", func(c *gin.Context) {
		item, found := col.Get(c.Param("id"))
		if !found {
			notFound(c)
			return
		}
		var payload courserun.WritePayload
		if !bindAndValidate(c, &payload) {
			return
		}
		parent, found := store.Courses.Get(payload.CourseID)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"course_id": []string{"Not a valid course."}})
			return
		}
		applyCourseRun(&item, parent, payload)
		col.Replace(item)
		c.JSON(http.StatusOK, item)
	})
}

func applyCourseRun(item *courserun.CourseRun, parent course.Course, payload courserun.WritePayload) {
	item.Course = courserun.CourseRef{ID: parent.ID, Code: parent.Code, Title: parent.Title}
	item.ResourceLink = payload.ResourceLink
	item.Title = payload.Title
	item.Start = payload.Start
	item.End = payload.End
	item.EnrollmentStart = payload.EnrollmentStart
	item.EnrollmentEnd = payload.EnrollmentEnd
	item.Languages = payload.Languages
	item.IsGradable = payload.IsGradable
	item.IsListed = payload.IsListed
	item.State = computeRunState(*item)
}

// computeRunState derives the catalog call-to-action state from the
// run's enrollment window. The real API orders states by priority;
// the mock only distinguishes the three cases list pages display.
func computeRunState(run courserun.CourseRun) courserun.State {
	now := time.Now()

	open := run.EnrollmentStart != nil && run.EnrollmentEnd != nil &&
		now.After(*run.EnrollmentStart) && now.Before(*run.EnrollmentEnd)
	if open {
		cta := "enroll now"
		return courserun.State{Priority: 0, Text: "forever open", CallToAction: &cta, Datetime: run.EnrollmentEnd}
	}
	if run.End != nil && now.After(*run.End) {
		return courserun.State{Priority: 6, Text: "archived", Datetime: run.End}
	}
	return courserun.State{Priority: 3, Text: "starting soon", Datetime: run.Start}
}

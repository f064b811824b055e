package mockapi

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openfun/joanie-sub003/internal/user"
)

// registerUsers wires the read-only users endpoints backing the owner
// and member pickers.
func registerUsers(g *gin.RouterGroup, store *Store) {
	col := store.Users
	spec := listSpec[user.User]{
		search: func(u user.User, needle string) bool {
			return containsFold(u.Username, needle) ||
				containsFold(u.FullName, needle) ||
				containsFold(u.Email, needle)
		},
		filters: map[string]func(user.User, []string) bool{
			"is_staff": func(u user.User, values []string) bool {
				return anyOf(strconv.FormatBool(u.IsStaff), values)
			},
		},
	}

	grp := g.Group("/users")
	grp.GET("/", listHandler(col, spec))
	grp.GET("/:id/", retrieveHandler(col))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/classpulse/classpulse-api/internal/models"
)

func newRoleRouter(defaultRole models.Role, restricted []models.Role) (*gin.Engine, *models.Role) {
	gin.SetMode(gin.TestMode)
	var seen models.Role
	r := gin.New()
	r.Use(Role(defaultRole))
	group := r.Group("")
	if restricted != nil {
		group.Use(RequireRoles(restricted...))
	}
	group.GET("/probe", func(c *gin.Context) {
		seen = RoleValue(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRoleHeaderResolved(t *testing.T) {
	r, seen := newRoleRouter(models.RoleTeacher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(RoleHeader, "parent")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleParent, *seen)
}

func TestRoleFallsBackToDefault(t *testing.T) {
	r, seen := newRoleRouter(models.RoleStudent, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, models.RoleStudent, *seen)
}

func TestRoleInvalidHeaderUsesDefault(t *testing.T) {
	r, seen := newRoleRouter(models.RoleTeacher, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(RoleHeader, "superuser")
	r.ServeHTTP(w, req)

	assert.Equal(t, models.RoleTeacher, *seen)
}

func TestRequireRolesForbidsOthers(t *testing.T) {
	r, _ := newRoleRouter(models.RoleTeacher, []models.Role{models.RoleTeacher})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(RoleHeader, "student")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsListed(t *testing.T) {
	r, _ := newRoleRouter(models.RoleTeacher, []models.Role{models.RoleTeacher})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(RoleHeader, "teacher")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

package admin

import (
	"strings"

	handlershared "github.com/panaderia-next/internal/http/handlers/shared"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

func getStaffID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "staff_id", "error.staff_id_invalid", "error.staff_id_type_invalid")
}

// staffActor builds the service-layer actor from the authenticated
// request context. It never fails: RBAC already ran, so a missing role
// just yields an actor the policy layer will reject.
func staffActor(c *gin.Context) service.Actor {
	actor := service.Actor{}
	if id, ok := c.Get("staff_id"); ok {
		if staffID, ok := id.(uint); ok {
			actor.StaffID = staffID
		}
	}
	if role, ok := c.Get("staff_role"); ok {
		if r, ok := role.(string); ok {
			actor.Role = strings.TrimSpace(r)
		}
	}
	return actor
}

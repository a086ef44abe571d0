package public

import (
	handlershared "github.com/panaderia-next/internal/http/handlers/shared"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

func getCustomerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "customer_id", "error.customer_id_invalid", "error.customer_id_type_invalid")
}

func customerActor(customerID uint) service.Actor {
	return service.Actor{CustomerID: customerID}
}

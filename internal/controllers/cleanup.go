package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeleteAll wipes the whole backend. Exposed so local deployments can
// start over; the frontend asks twice before calling it.
func (co Controller) DeleteAll(c *gin.Context) {
	if err := co.factory.ClearAll(); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

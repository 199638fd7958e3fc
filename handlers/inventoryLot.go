package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

// Lots are read-only over HTTP. The ledger only moves through purchase,
// sale and transfer workflows.

func GetInventoryLot(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "GetInventoryLot", err)
		return
	}
	lot, err := models.GetInventoryLot(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetInventoryLot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lot": lot})
}

func ListInventoryLot(c *gin.Context) {
	lots, err := models.ListInventoryLot(c.Request.Context(), queryPtr(c, "inventory"), queryPtr(c, "product"))
	if err != nil {
		respondError(c, "ListInventoryLot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lots": lots})
}

func ListInventoryLotByLotId(c *gin.Context) {
	lots, err := models.GetInventoryLotsByLotId(c.Request.Context(), c.Param("lotId"))
	if err != nil {
		respondError(c, "ListInventoryLotByLotId", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lots": lots})
}

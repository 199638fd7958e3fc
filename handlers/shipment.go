package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

func CreateShipment(c *gin.Context) {
	var input models.NewShipment
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	shipment, err := models.CreateShipment(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateShipment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "shipment created", "shipment": shipment})
}

func GetShipment(c *gin.Context) {
	shipment, err := models.GetShipmentByShipmentId(c.Request.Context(), c.Param("shipmentId"))
	if err != nil {
		respondError(c, "GetShipment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipment": shipment})
}

func ListShipment(c *gin.Context) {
	var status *models.ShipmentStatus
	if raw := queryPtr(c, "status"); raw != nil {
		s := models.ShipmentStatus(*raw)
		status = &s
	}
	shipments, err := models.ListShipment(c.Request.Context(), queryPtr(c, "bill_id"), status)
	if err != nil {
		respondError(c, "ListShipment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipments": shipments})
}

func UpdateShipment(c *gin.Context) {
	var input models.UpdateShipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	shipment, err := models.UpdateShipment(c.Request.Context(), c.Param("shipmentId"), &input)
	if err != nil {
		respondError(c, "UpdateShipment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shipment updated", "shipment": shipment})
}

func DeleteShipment(c *gin.Context) {
	shipment, err := models.DeleteShipment(c.Request.Context(), c.Param("shipmentId"))
	if err != nil {
		respondError(c, "DeleteShipment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shipment deleted", "shipment": shipment})
}

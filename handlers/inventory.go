package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

func CreateInventory(c *gin.Context) {
	var input models.NewInventory
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	inventory, err := models.CreateInventory(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateInventory", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "inventory created", "inventory": inventory})
}

func GetInventory(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "GetInventory", err)
		return
	}
	inventory, err := models.GetInventory(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetInventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": inventory})
}

func ListInventory(c *gin.Context) {
	inventories, err := models.ListInventory(c.Request.Context(), queryPtr(c, "name"))
	if err != nil {
		respondError(c, "ListInventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventories": inventories})
}

func UpdateInventory(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "UpdateInventory", err)
		return
	}
	var input models.NewInventory
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	inventory, err := models.UpdateInventory(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateInventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory updated", "inventory": inventory})
}

func DeleteInventory(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "DeleteInventory", err)
		return
	}
	inventory, err := models.DeleteInventory(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteInventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inventory deleted", "inventory": inventory})
}

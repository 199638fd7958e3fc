package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

func CreatePurchase(c *gin.Context) {
	var input models.NewPurchase
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	purchase, err := models.CreatePurchase(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreatePurchase", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "purchase created", "purchase": purchase})
}

func GetPurchase(c *gin.Context) {
	purchase, err := models.GetPurchaseByMrId(c.Request.Context(), c.Param("mrId"))
	if err != nil {
		respondError(c, "GetPurchase", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}

func ListPurchase(c *gin.Context) {
	purchases, err := models.ListPurchase(c.Request.Context(), queryPtr(c, "mr_id"))
	if err != nil {
		respondError(c, "ListPurchase", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

func UpdatePurchase(c *gin.Context) {
	var input models.UpdatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	purchase, err := models.UpdatePurchase(c.Request.Context(), c.Param("mrId"), &input)
	if err != nil {
		respondError(c, "UpdatePurchase", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "purchase updated", "purchase": purchase})
}

func DeletePurchase(c *gin.Context) {
	purchase, err := models.DeletePurchase(c.Request.Context(), c.Param("mrId"))
	if err != nil {
		respondError(c, "DeletePurchase", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "purchase deleted", "purchase": purchase})
}

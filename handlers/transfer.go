package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

func CreateTransfer(c *gin.Context) {
	var input models.NewTransfer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	transfer, err := models.CreateTransfer(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateTransfer", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "transfer created", "transfer": transfer})
}

func GetTransfer(c *gin.Context) {
	transfer, err := models.GetTransferByTrfId(c.Request.Context(), c.Param("trfId"))
	if err != nil {
		respondError(c, "GetTransfer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfer": transfer})
}

func ListTransfer(c *gin.Context) {
	transfers, err := models.ListTransfer(c.Request.Context(), queryPtr(c, "trf_id"))
	if err != nil {
		respondError(c, "ListTransfer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfers": transfers})
}

func UpdateTransfer(c *gin.Context) {
	var input models.UpdateTransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	transfer, err := models.UpdateTransfer(c.Request.Context(), c.Param("trfId"), &input)
	if err != nil {
		respondError(c, "UpdateTransfer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transfer updated", "transfer": transfer})
}

func DeleteTransfer(c *gin.Context) {
	transfer, err := models.DeleteTransfer(c.Request.Context(), c.Param("trfId"))
	if err != nil {
		respondError(c, "DeleteTransfer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transfer deleted", "transfer": transfer})
}

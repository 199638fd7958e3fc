package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

func CreateSale(c *gin.Context) {
	var input models.NewSale
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	sale, err := models.CreateSale(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateSale", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "sale created", "sale": sale})
}

func GetSale(c *gin.Context) {
	sale, err := models.GetSaleByBillId(c.Request.Context(), c.Param("billId"))
	if err != nil {
		respondError(c, "GetSale", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": sale})
}

func ListSale(c *gin.Context) {
	var status *models.SaleStatus
	if raw := queryPtr(c, "status"); raw != nil {
		s := models.SaleStatus(*raw)
		status = &s
	}
	sales, err := models.ListSale(c.Request.Context(), queryPtr(c, "bill_id"), status)
	if err != nil {
		respondError(c, "ListSale", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

func UpdateSale(c *gin.Context) {
	var input models.UpdateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	sale, err := models.UpdateSale(c.Request.Context(), c.Param("billId"), &input)
	if err != nil {
		respondError(c, "UpdateSale", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sale updated", "sale": sale})
}

func DeleteSale(c *gin.Context) {
	sale, err := models.DeleteSale(c.Request.Context(), c.Param("billId"))
	if err != nil {
		respondError(c, "DeleteSale", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sale deleted", "sale": sale})
}

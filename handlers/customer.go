package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

func CreateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	customer, err := models.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateCustomer", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "customer created", "customer": customer})
}

func GetCustomer(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "GetCustomer", err)
		return
	}
	customer, err := models.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetCustomer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func ListCustomer(c *gin.Context) {
	customers, err := models.ListCustomer(c.Request.Context(), queryPtr(c, "name"))
	if err != nil {
		respondError(c, "ListCustomer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func UpdateCustomer(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "UpdateCustomer", err)
		return
	}
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	customer, err := models.UpdateCustomer(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateCustomer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer updated", "customer": customer})
}

func DeleteCustomer(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "DeleteCustomer", err)
		return
	}
	customer, err := models.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteCustomer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted", "customer": customer})
}

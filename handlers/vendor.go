package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

func CreateVendor(c *gin.Context) {
	var input models.NewVendor
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	vendor, err := models.CreateVendor(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateVendor", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "vendor created", "vendor": vendor})
}

func GetVendor(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "GetVendor", err)
		return
	}
	vendor, err := models.GetVendor(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetVendor", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

func ListVendor(c *gin.Context) {
	vendors, err := models.ListVendor(c.Request.Context(), queryPtr(c, "name"))
	if err != nil {
		respondError(c, "ListVendor", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

func UpdateVendor(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "UpdateVendor", err)
		return
	}
	var input models.NewVendor
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	vendor, err := models.UpdateVendor(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateVendor", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vendor updated", "vendor": vendor})
}

func DeleteVendor(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "DeleteVendor", err)
		return
	}
	vendor, err := models.DeleteVendor(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteVendor", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vendor deleted", "vendor": vendor})
}

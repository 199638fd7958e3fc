package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

func CreateProduct(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	product, err := models.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "product created", "product": product})
}

func GetProduct(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "GetProduct", err)
		return
	}
	product, err := models.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func ListProduct(c *gin.Context) {
	products, err := models.ListProduct(c.Request.Context(), queryPtr(c, "name"))
	if err != nil {
		respondError(c, "ListProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func UpdateProduct(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "UpdateProduct", err)
		return
	}
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	product, err := models.UpdateProduct(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated", "product": product})
}

func DeleteProduct(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		respondError(c, "DeleteProduct", err)
		return
	}
	product, err := models.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted", "product": product})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/logistics_backend/middlewares"
	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

// RegisterRoutes wires the resource endpoints onto the authenticated group.
// Reads are open to every authenticated role; writes need admin or manager.
func RegisterRoutes(api *gin.RouterGroup) {
	write := middlewares.RequireRole(models.RoleAdmin, models.RoleManager)

	customers := api.Group("/customers")
	{
		customers.GET("", ListCustomer)
		customers.GET("/:id", GetCustomer)
		customers.POST("", write, CreateCustomer)
		customers.PATCH("/:id", write, UpdateCustomer)
		customers.DELETE("/:id", write, DeleteCustomer)
	}

	vendors := api.Group("/vendors")
	{
		vendors.GET("", ListVendor)
		vendors.GET("/:id", GetVendor)
		vendors.POST("", write, CreateVendor)
		vendors.PATCH("/:id", write, UpdateVendor)
		vendors.DELETE("/:id", write, DeleteVendor)
	}

	products := api.Group("/products")
	{
		products.GET("", ListProduct)
		products.GET("/:id", GetProduct)
		products.POST("", write, CreateProduct)
		products.PATCH("/:id", write, UpdateProduct)
		products.DELETE("/:id", write, DeleteProduct)
	}

	inventories := api.Group("/inventories")
	{
		inventories.GET("", ListInventory)
		inventories.GET("/:id", GetInventory)
		inventories.POST("", write, CreateInventory)
		inventories.PATCH("/:id", write, UpdateInventory)
		inventories.DELETE("/:id", write, DeleteInventory)
	}

	lots := api.Group("/lots")
	{
		lots.GET("", ListInventoryLot)
		lots.GET("/:id", GetInventoryLot)
		lots.GET("/by-lot-id/:lotId", ListInventoryLotByLotId)
	}

	purchases := api.Group("/purchases")
	{
		purchases.GET("", ListPurchase)
		purchases.GET("/:mrId", GetPurchase)
		purchases.POST("", write, CreatePurchase)
		purchases.PATCH("/:mrId", write, UpdatePurchase)
		purchases.DELETE("/:mrId", write, DeletePurchase)
	}

	sales := api.Group("/sales")
	{
		sales.GET("", ListSale)
		sales.GET("/:billId", GetSale)
		sales.POST("", write, CreateSale)
		sales.PATCH("/:billId", write, UpdateSale)
		sales.DELETE("/:billId", write, DeleteSale)
	}

	transfers := api.Group("/transfers")
	{
		transfers.GET("", ListTransfer)
		transfers.GET("/:trfId", GetTransfer)
		transfers.POST("", write, CreateTransfer)
		transfers.PATCH("/:trfId", write, UpdateTransfer)
		transfers.DELETE("/:trfId", write, DeleteTransfer)
	}

	shipments := api.Group("/shipments")
	{
		shipments.GET("", ListShipment)
		shipments.GET("/:shipmentId", GetShipment)
		shipments.POST("", write, CreateShipment)
		shipments.PATCH("/:shipmentId", write, UpdateShipment)
		shipments.DELETE("/:shipmentId", write, DeleteShipment)
	}
}

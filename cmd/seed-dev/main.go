// seed-dev populates a development database with reference data and a small
// stock position so the API is usable straight after startup.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-dev
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/models"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	vendor, err := models.CreateVendor(ctx, &models.NewVendor{
		Name:  "Acme Supply Co",
		Email: "orders@acmesupply.example",
		Phone: "+95 9 555 0100",
	})
	if err != nil {
		fail("create vendor", err)
	}

	customer, err := models.CreateCustomer(ctx, &models.NewCustomer{
		Name:    "Globex Trading",
		Email:   "purchasing@globex.example",
		Address: "12 Strand Rd",
		City:    "Yangon",
		Country: "Myanmar",
	})
	if err != nil {
		fail("create customer", err)
	}

	for _, name := range []string{"Main Warehouse", "Airport Depot"} {
		if _, err := models.CreateInventory(ctx, &models.NewInventory{Name: name, City: "Yangon"}); err != nil {
			fail("create inventory "+name, err)
		}
	}

	products := []models.NewProduct{
		{Name: "Widget", Sku: "WID-001", UnitPrice: decimal.NewFromInt(10)},
		{Name: "Gadget", Sku: "GAD-001", UnitPrice: decimal.NewFromInt(20)},
		{Name: "Sprocket", Sku: "SPR-001", UnitPrice: decimal.NewFromInt(5)},
	}
	for i := range products {
		if _, err := models.CreateProduct(ctx, &products[i]); err != nil {
			fail("create product "+products[i].Name, err)
		}
	}

	thirty := decimal.NewFromInt(30)
	purchase, err := models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-SEED-1",
		VendorId:          vendor.ID,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 100, UnitPrice: decimal.NewFromInt(10), DiscountPct: &thirty},
			{ProductName: "Gadget", Quantity: 50, UnitPrice: decimal.NewFromInt(20)},
			{ProductName: "Sprocket", Quantity: 200, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	if err != nil {
		fail("create purchase", err)
	}

	fmt.Printf("seeded vendor=%d customer=%d purchase=%s total=%s\n",
		vendor.ID, customer.ID, purchase.MrId, purchase.TotalPrice.String())
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}

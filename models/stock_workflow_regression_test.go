package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
	"bitbucket.org/mmdatafocus/logistics_backend/models"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

// seedReferenceData creates the vendor, customer, two inventories and two
// products every workflow test builds on.
func seedReferenceData(t *testing.T, ctx context.Context) (vendorId, customerId int) {
	t.Helper()

	vendor, err := models.CreateVendor(ctx, &models.NewVendor{Name: "Acme Supply", Email: "sales@acme.test"})
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}
	customer, err := models.CreateCustomer(ctx, &models.NewCustomer{Name: "Globex", Email: "po@globex.test"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	for _, name := range []string{"Main Warehouse", "Secondary Warehouse"} {
		if _, err := models.CreateInventory(ctx, &models.NewInventory{Name: name}); err != nil {
			t.Fatalf("CreateInventory(%s): %v", name, err)
		}
	}
	for _, name := range []string{"Widget", "Gadget"} {
		if _, err := models.CreateProduct(ctx, &models.NewProduct{Name: name, UnitPrice: decimal.NewFromInt(10)}); err != nil {
			t.Fatalf("CreateProduct(%s): %v", name, err)
		}
	}
	return vendor.ID, customer.ID
}

func fetchLot(t *testing.T, ctx context.Context, lotId, inventory, product string) *models.InventoryLot {
	t.Helper()
	var lot models.InventoryLot
	err := config.GetDB().WithContext(ctx).
		Where("lot_id = ? AND LOWER(inventory_location) = LOWER(?) AND LOWER(product_name) = LOWER(?)",
			lotId, inventory, product).
		First(&lot).Error
	if err != nil {
		t.Fatalf("fetch lot %s/%s/%s: %v", lotId, inventory, product, err)
	}
	return &lot
}

func TestPurchaseCreatesFreshLotsAndComputesTotal(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := context.Background()
	vendorId, _ := seedReferenceData(t, ctx)

	thirty := decimal.NewFromInt(30)
	purchase, err := models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-1001",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 10, UnitPrice: decimal.NewFromInt(10), DiscountPct: &thirty},
			{ProductName: "Gadget", Quantity: 5, UnitPrice: decimal.NewFromInt(20)},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	// 10*10 with 30% off = 70, plus 5*20 = 100.
	if purchase.TotalPrice.Cmp(decimal.NewFromInt(170)) != 0 {
		t.Fatalf("expected total_price=170; got %s", purchase.TotalPrice.String())
	}

	widgetLot := fetchLot(t, ctx, "MR-1001", "Main Warehouse", "Widget")
	if widgetLot.Quantity != 10 {
		t.Fatalf("expected widget lot qty=10; got %d", widgetLot.Quantity)
	}
	gadgetLot := fetchLot(t, ctx, "MR-1001", "Main Warehouse", "Gadget")
	if gadgetLot.Quantity != 5 {
		t.Fatalf("expected gadget lot qty=5; got %d", gadgetLot.Quantity)
	}

	// A second receipt of the same product opens a fresh lot, it never merges.
	if _, err := models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-1002",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 3, UnitPrice: decimal.NewFromInt(10)},
		},
	}); err != nil {
		t.Fatalf("CreatePurchase(MR-1002): %v", err)
	}
	second := fetchLot(t, ctx, "MR-1002", "Main Warehouse", "Widget")
	if second.Quantity != 3 {
		t.Fatalf("expected second widget lot qty=3; got %d", second.Quantity)
	}
	first := fetchLot(t, ctx, "MR-1001", "Main Warehouse", "Widget")
	if first.Quantity != 10 {
		t.Fatalf("first widget lot changed; got %d", first.Quantity)
	}

	// Reusing a receipt id is a conflict.
	_, err = models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-1001",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details:           []models.NewPurchaseDetail{{ProductName: "Widget", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	if !errors.Is(err, utils.ErrorDuplicateRecord) {
		t.Fatalf("expected duplicate record error; got %v", err)
	}

	// A duplicate product line inside one receipt collides with the fresh
	// lot created for the first line and aborts the whole purchase.
	_, err = models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-1003",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
			{ProductName: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate line purchase to fail")
	}
	if _, err := models.GetPurchaseByMrId(ctx, "MR-1003"); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected MR-1003 rolled back; got %v", err)
	}
}

func TestPurchaseAdjustmentBounds(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := context.Background()
	vendorId, _ := seedReferenceData(t, ctx)

	if _, err := models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-2001",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 10, UnitPrice: decimal.NewFromInt(10)},
		},
	}); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	adj := decimal.NewFromInt(30)
	updated, err := models.UpdatePurchase(ctx, "MR-2001", &models.UpdatePurchaseInput{Adjustment: &adj})
	if err != nil {
		t.Fatalf("UpdatePurchase: %v", err)
	}
	if updated.TotalPrice.Cmp(decimal.NewFromInt(70)) != 0 {
		t.Fatalf("expected total_price=70 after adjustment; got %s", updated.TotalPrice.String())
	}

	over := decimal.NewFromInt(150)
	if _, err := models.UpdatePurchase(ctx, "MR-2001", &models.UpdatePurchaseInput{Adjustment: &over}); !errors.Is(err, utils.ErrorInvalidAdjustment) {
		t.Fatalf("expected invalid adjustment for 150; got %v", err)
	}
	negative := decimal.NewFromInt(-5)
	if _, err := models.UpdatePurchase(ctx, "MR-2001", &models.UpdatePurchaseInput{Adjustment: &negative}); !errors.Is(err, utils.ErrorInvalidAdjustment) {
		t.Fatalf("expected invalid adjustment for -5; got %v", err)
	}
}

func TestSaleConsumesStockAllOrNothing(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := context.Background()
	vendorId, customerId := seedReferenceData(t, ctx)

	if _, err := models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-3001",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 10, UnitPrice: decimal.NewFromInt(10)},
			{ProductName: "Gadget", Quantity: 5, UnitPrice: decimal.NewFromInt(20)},
		},
	}); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	// Location casing differs from the ledger rows on purpose.
	sale, err := models.CreateSale(ctx, &models.NewSale{
		BillId:            "BILL-1",
		CustomerId:        customerId,
		InventoryLocation: "MAIN warehouse",
		ShippingAddress:   "1 Harbour Rd",
		Details: []models.NewSaleDetail{
			{ProductName: "widget", Quantity: 4, UnitPrice: decimal.NewFromInt(15)},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if sale.TotalAmount.Cmp(decimal.NewFromInt(60)) != 0 {
		t.Fatalf("expected total_amount=60; got %s", sale.TotalAmount.String())
	}
	if len(sale.Details) != 1 || sale.Details[0].LotId != "MR-3001" {
		t.Fatalf("expected sale line fulfilled from lot MR-3001; got %+v", sale.Details)
	}
	if lot := fetchLot(t, ctx, "MR-3001", "Main Warehouse", "Widget"); lot.Quantity != 6 {
		t.Fatalf("expected widget lot qty=6 after sale; got %d", lot.Quantity)
	}

	// One fulfillable line plus one that is not: nothing may move.
	_, err = models.CreateSale(ctx, &models.NewSale{
		BillId:            "BILL-2",
		CustomerId:        customerId,
		InventoryLocation: "Main Warehouse",
		ShippingAddress:   "1 Harbour Rd",
		Details: []models.NewSaleDetail{
			{ProductName: "Gadget", Quantity: 2, UnitPrice: decimal.NewFromInt(25)},
			{ProductName: "Widget", Quantity: 999, UnitPrice: decimal.NewFromInt(15)},
		},
	})
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected no-stock failure; got %v", err)
	}
	if lot := fetchLot(t, ctx, "MR-3001", "Main Warehouse", "Gadget"); lot.Quantity != 5 {
		t.Fatalf("gadget lot must be untouched after rollback; got %d", lot.Quantity)
	}
	if _, err := models.GetSaleByBillId(ctx, "BILL-2"); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected BILL-2 rolled back; got %v", err)
	}

	// Bill ids are unique.
	_, err = models.CreateSale(ctx, &models.NewSale{
		BillId:            "BILL-1",
		CustomerId:        customerId,
		InventoryLocation: "Main Warehouse",
		ShippingAddress:   "1 Harbour Rd",
		Details: []models.NewSaleDetail{
			{ProductName: "Widget", Quantity: 1, UnitPrice: decimal.NewFromInt(15)},
		},
	})
	if !errors.Is(err, utils.ErrorDuplicateRecord) {
		t.Fatalf("expected duplicate bill_id error; got %v", err)
	}

	// Deleting a sale does not restore stock.
	if _, err := models.DeleteSale(ctx, "BILL-1"); err != nil {
		t.Fatalf("DeleteSale: %v", err)
	}
	if lot := fetchLot(t, ctx, "MR-3001", "Main Warehouse", "Widget"); lot.Quantity != 6 {
		t.Fatalf("sale delete must not restore stock; got %d", lot.Quantity)
	}
}

func TestTransferMovesQuantityAndDeleteReverses(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := context.Background()
	vendorId, _ := seedReferenceData(t, ctx)

	if _, err := models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-4001",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 10, UnitPrice: decimal.NewFromInt(10)},
		},
	}); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	if _, err := models.CreateTransfer(ctx, &models.NewTransfer{
		TrfId:                "TRF-1",
		SourceInventory:      "Main Warehouse",
		DestinationInventory: "Secondary Warehouse",
		Details: []models.NewTransferDetail{
			{LotId: "MR-4001", ProductName: "Widget", Quantity: 4},
		},
	}); err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}

	src := fetchLot(t, ctx, "MR-4001", "Main Warehouse", "Widget")
	dst := fetchLot(t, ctx, "MR-4001", "Secondary Warehouse", "Widget")
	if src.Quantity != 6 || dst.Quantity != 4 {
		t.Fatalf("expected 6/4 split after transfer; got %d/%d", src.Quantity, dst.Quantity)
	}
	if src.Quantity+dst.Quantity != 10 {
		t.Fatalf("transfer must conserve quantity; got %d", src.Quantity+dst.Quantity)
	}

	// Same source and destination is rejected case-insensitively.
	if _, err := models.CreateTransfer(ctx, &models.NewTransfer{
		TrfId:                "TRF-2",
		SourceInventory:      "Main Warehouse",
		DestinationInventory: "MAIN warehouse",
		Details: []models.NewTransferDetail{
			{LotId: "MR-4001", ProductName: "Widget", Quantity: 1},
		},
	}); !errors.Is(err, utils.ErrorInvalidInput) {
		t.Fatalf("expected same-inventory rejection; got %v", err)
	}

	// Insufficient quantity at source fails whole transfer.
	if _, err := models.CreateTransfer(ctx, &models.NewTransfer{
		TrfId:                "TRF-3",
		SourceInventory:      "Main Warehouse",
		DestinationInventory: "Secondary Warehouse",
		Details: []models.NewTransferDetail{
			{LotId: "MR-4001", ProductName: "Widget", Quantity: 999},
		},
	}); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected insufficient stock failure; got %v", err)
	}

	// Delete moves the destination lot's current quantity back to source.
	if _, err := models.DeleteTransfer(ctx, "TRF-1"); err != nil {
		t.Fatalf("DeleteTransfer: %v", err)
	}
	src = fetchLot(t, ctx, "MR-4001", "Main Warehouse", "Widget")
	dst = fetchLot(t, ctx, "MR-4001", "Secondary Warehouse", "Widget")
	if src.Quantity != 10 || dst.Quantity != 0 {
		t.Fatalf("expected 10/0 after transfer delete; got %d/%d", src.Quantity, dst.Quantity)
	}
}

// A transfer delete moves back whatever the destination lot holds NOW, not
// what the transfer originally moved. Stock consumed at the destination in
// the meantime stays consumed.
func TestTransferDeleteMovesCurrentDestinationQuantity(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := context.Background()
	vendorId, customerId := seedReferenceData(t, ctx)

	if _, err := models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-6001",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 10, UnitPrice: decimal.NewFromInt(10)},
		},
	}); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	if _, err := models.CreateTransfer(ctx, &models.NewTransfer{
		TrfId:                "TRF-20",
		SourceInventory:      "Main Warehouse",
		DestinationInventory: "Secondary Warehouse",
		Details: []models.NewTransferDetail{
			{LotId: "MR-6001", ProductName: "Widget", Quantity: 6},
		},
	}); err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}

	// Sell part of the destination lot before reversing the transfer.
	if _, err := models.CreateSale(ctx, &models.NewSale{
		BillId:            "BILL-20",
		CustomerId:        customerId,
		InventoryLocation: "Secondary Warehouse",
		ShippingAddress:   "1 Harbour Rd",
		Details: []models.NewSaleDetail{
			{ProductName: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(15)},
		},
	}); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if dst := fetchLot(t, ctx, "MR-6001", "Secondary Warehouse", "Widget"); dst.Quantity != 4 {
		t.Fatalf("expected destination qty=4 after sale; got %d", dst.Quantity)
	}

	if _, err := models.DeleteTransfer(ctx, "TRF-20"); err != nil {
		t.Fatalf("DeleteTransfer: %v", err)
	}

	// Only the remaining 4 units come back: 4 at source + 4 moved back = 8.
	src := fetchLot(t, ctx, "MR-6001", "Main Warehouse", "Widget")
	dst := fetchLot(t, ctx, "MR-6001", "Secondary Warehouse", "Widget")
	if src.Quantity != 8 || dst.Quantity != 0 {
		t.Fatalf("expected 8/0 after delete of partially consumed transfer; got %d/%d", src.Quantity, dst.Quantity)
	}
}

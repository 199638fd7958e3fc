package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/logistics_backend/models"
	"bitbucket.org/mmdatafocus/logistics_backend/utils"
)

func TestShipmentLifecycle(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := context.Background()
	vendorId, customerId := seedReferenceData(t, ctx)

	if _, err := models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-5001",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 10, UnitPrice: decimal.NewFromInt(10)},
		},
	}); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}
	if _, err := models.CreateSale(ctx, &models.NewSale{
		BillId:            "BILL-10",
		CustomerId:        customerId,
		InventoryLocation: "Main Warehouse",
		ShippingAddress:   "1 Harbour Rd",
		Details: []models.NewSaleDetail{
			{ProductName: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(15)},
		},
	}); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	// Shipments must reference an existing sale.
	if _, err := models.CreateShipment(ctx, &models.NewShipment{
		ShipmentId: "SHP-0",
		BillId:     "BILL-MISSING",
	}); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected missing sale rejection; got %v", err)
	}

	shipment, err := models.CreateShipment(ctx, &models.NewShipment{
		ShipmentId: "SHP-1",
		BillId:     "BILL-10",
		Carrier:    "DHL",
	})
	if err != nil {
		t.Fatalf("CreateShipment: %v", err)
	}
	if shipment.Status != models.ShipmentStatusPending {
		t.Fatalf("expected new shipment pending; got %s", shipment.Status)
	}
	if shipment.ShippedAt != nil || shipment.DeliveredAt != nil {
		t.Fatalf("timestamps must be unset on creation")
	}

	inTransit := models.ShipmentStatusInTransit
	shipment, err = models.UpdateShipment(ctx, "SHP-1", &models.UpdateShipmentInput{Status: &inTransit})
	if err != nil {
		t.Fatalf("UpdateShipment(in_transit): %v", err)
	}
	if shipment.ShippedAt == nil {
		t.Fatalf("expected shipped_at stamped on in_transit")
	}

	delivered := models.ShipmentStatusDelivered
	shipment, err = models.UpdateShipment(ctx, "SHP-1", &models.UpdateShipmentInput{Status: &delivered})
	if err != nil {
		t.Fatalf("UpdateShipment(delivered): %v", err)
	}
	if shipment.DeliveredAt == nil {
		t.Fatalf("expected delivered_at stamped on delivered")
	}

	if _, err := models.DeleteShipment(ctx, "SHP-1"); err != nil {
		t.Fatalf("DeleteShipment: %v", err)
	}
	if _, err := models.GetShipmentByShipmentId(ctx, "SHP-1"); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected shipment gone; got %v", err)
	}
}

// Shipments reference sales by bill_id, so a bill rename must carry its
// shipments along and a sale with shipments must refuse deletion.
func TestSaleRenameAndDeleteKeepShipmentsConsistent(t *testing.T) {
	setupIntegrationEnv(t)
	ctx := context.Background()
	vendorId, customerId := seedReferenceData(t, ctx)

	if _, err := models.CreatePurchase(ctx, &models.NewPurchase{
		MrId:              "MR-7001",
		VendorId:          vendorId,
		InventoryLocation: "Main Warehouse",
		Details: []models.NewPurchaseDetail{
			{ProductName: "Widget", Quantity: 10, UnitPrice: decimal.NewFromInt(10)},
		},
	}); err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}
	if _, err := models.CreateSale(ctx, &models.NewSale{
		BillId:            "BILL-30",
		CustomerId:        customerId,
		InventoryLocation: "Main Warehouse",
		ShippingAddress:   "1 Harbour Rd",
		Details: []models.NewSaleDetail{
			{ProductName: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(15)},
		},
	}); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if _, err := models.CreateShipment(ctx, &models.NewShipment{
		ShipmentId: "SHP-30",
		BillId:     "BILL-30",
		Carrier:    "DHL",
	}); err != nil {
		t.Fatalf("CreateShipment: %v", err)
	}

	// Renaming the bill carries the shipment reference along.
	newBill := "BILL-31"
	if _, err := models.UpdateSale(ctx, "BILL-30", &models.UpdateSaleInput{BillId: &newBill}); err != nil {
		t.Fatalf("UpdateSale(rename): %v", err)
	}
	shipment, err := models.GetShipmentByShipmentId(ctx, "SHP-30")
	if err != nil {
		t.Fatalf("GetShipmentByShipmentId: %v", err)
	}
	if shipment.BillId != "BILL-31" {
		t.Fatalf("expected shipment to follow renamed bill; got %s", shipment.BillId)
	}

	// A sale with shipments cannot be deleted.
	if _, err := models.DeleteSale(ctx, "BILL-31"); !errors.Is(err, utils.ErrorResourceInUse) {
		t.Fatalf("expected resource-in-use rejection; got %v", err)
	}

	// Once the shipment is gone the sale can go too.
	if _, err := models.DeleteShipment(ctx, "SHP-30"); err != nil {
		t.Fatalf("DeleteShipment: %v", err)
	}
	if _, err := models.DeleteSale(ctx, "BILL-31"); err != nil {
		t.Fatalf("DeleteSale after shipment removal: %v", err)
	}
	if _, err := models.GetSaleByBillId(ctx, "BILL-31"); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected sale gone; got %v", err)
	}
}

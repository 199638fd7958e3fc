package models

import (
	"log"

	"bitbucket.org/mmdatafocus/logistics_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Customer{}, &Vendor{},
		&Product{}, &Inventory{}, &InventoryLot{},
		&Purchase{}, &PurchaseDetail{},
		&Sale{}, &SaleDetail{},
		&Transfer{}, &TransferDetail{},
		&Shipment{},
	)
	if err != nil {
		log.Fatal(err)
	}
}

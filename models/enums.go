package models

/* roles resolved by the auth collaborator */

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

type SaleStatus string

const (
	SaleStatusProcessing SaleStatus = "processing"
	SaleStatusShipped    SaleStatus = "shipped"
	SaleStatusDelivered  SaleStatus = "delivered"
	SaleStatusCancelled  SaleStatus = "cancelled"
)

type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

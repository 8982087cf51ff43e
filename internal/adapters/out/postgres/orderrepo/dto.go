package orderrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Number       string         `gorm:"type:varchar(20);not null"`
	Instructions string         `gorm:"type:text;not null;default:''"`
	TotalMinor   int64          `gorm:"type:bigint;not null"`
	Status       int            `gorm:"type:smallint;not null;index"`
	PlacedAt     time.Time      `gorm:"type:timestamptz;not null;index"`
	StaffID      string         `gorm:"type:varchar(64);not null"`
	StaffName    string         `gorm:"type:varchar(255);not null"`
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Position       int            `gorm:"type:int;not null"`
	Name           string         `gorm:"type:varchar(255);not null"`
	UnitPriceMinor int64          `gorm:"type:bigint;not null"`
	Quantity       int            `gorm:"type:int;not null"`
	Condiments     []CondimentDTO `gorm:"type:jsonb;serializer:json"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// CondimentDTO is stored inside order_items.condiments as JSON.
type CondimentDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(o.Items()))

	for i, item := range o.Items() {
		condiments := make([]CondimentDTO, 0, len(item.Condiments()))
		for _, c := range item.Condiments() {
			condiments = append(condiments, CondimentDTO{ID: c.ID(), Name: c.Name()})
		}

		items = append(items, OrderItemDTO{
			OrderID:        orderID,
			Position:       i,
			Name:           item.Name(),
			UnitPriceMinor: item.UnitPrice().Minor(),
			Quantity:       item.Quantity(),
			Condiments:     condiments,
		})
	}

	return OrderDTO{
		ID:           orderID,
		Number:       o.Number(),
		Instructions: o.Instructions(),
		TotalMinor:   o.Total().Minor(),
		Status:       int(o.Status()),
		PlacedAt:     o.PlacedAt(),
		StaffID:      o.Staff().ID(),
		StaffName:    o.Staff().Name(),
		Items:        items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		condiments := make([]order.Condiment, 0, len(itemDTO.Condiments))
		for _, c := range itemDTO.Condiments {
			condiment, condErr := order.NewCondiment(c.ID, c.Name)
			if condErr != nil {
				return nil, condErr
			}
			condiments = append(condiments, condiment)
		}

		price, priceErr := kernel.NewMoney(itemDTO.UnitPriceMinor)
		if priceErr != nil {
			return nil, priceErr
		}

		item, itemErr := order.NewItem(itemDTO.Name, price, itemDTO.Quantity, condiments)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.TotalMinor)
	if err != nil {
		return nil, err
	}

	staff, err := order.NewStaff(dto.StaffID, dto.StaffName)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		items,
		dto.Instructions,
		total,
		order.Status(dto.Status),
		dto.PlacedAt,
		staff,
	)
}

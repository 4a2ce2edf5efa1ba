package order

import "orders/internal/entities"

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}
	return &entities.Order{
		ID:        o.ID.String(),
		UserID:    o.UserID,
		Status:    entities.OrderStatusType(o.Status),
		LineItems: ToDomainLineItems(o.LineItems),
		Amount:    o.Amount,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func ToDomainList(models []OrderDB) []entities.Order {
	res := make([]entities.Order, 0, len(models))
	for i := range models {
		res = append(res, *ToDomain(&models[i]))
	}
	return res
}

func ToDomainLineItems(items []LineItemDB) []entities.LineItem {
	res := make([]entities.LineItem, 0, len(items))
	for _, it := range items {
		res = append(res, entities.LineItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return res
}

func FromDomainLineItems(items []entities.LineItem) []LineItemDB {
	res := make([]LineItemDB, 0, len(items))
	for _, it := range items {
		res = append(res, LineItemDB{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return res
}

func FromDomainModify(m *entities.OrderModify) *OrderModifyDB {
	if m == nil {
		return nil
	}
	modifyDB := &OrderModifyDB{}

	if m.Status != nil {
		status := m.Status.String()
		modifyDB.Status = &status
	}
	if m.LineItems != nil {
		items := FromDomainLineItems(*m.LineItems)
		modifyDB.LineItems = &items
	}
	if m.Amount != nil {
		amount := *m.Amount
		modifyDB.Amount = &amount
	}

	return modifyDB
}

func statusStrings(statuses []entities.OrderStatusType) []string {
	res := make([]string, 0, len(statuses))
	for _, s := range statuses {
		res = append(res, s.String())
	}
	return res
}

package http

import (
	"time"

	"orderdesk/internal/core/application/liveview"
	"orderdesk/internal/core/domain/model/cart"
	"orderdesk/internal/core/domain/model/menu"
	"orderdesk/internal/core/domain/model/order"
)

type errorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Reason    string `json:"reason,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

type menuItemView struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Price             int64  `json:"price"`
	PriceLabel        string `json:"priceLabel"`
	RequiresCondiment bool   `json:"requiresCondiment"`
}

type menuCategoryView struct {
	Category string         `json:"category"`
	Label    string         `json:"label"`
	Items    []menuItemView `json:"items"`
}

type condimentView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type menuView struct {
	Categories []menuCategoryView `json:"categories"`
	Condiments []condimentView    `json:"condiments"`
}

type cartLineView struct {
	ItemID     int      `json:"itemId"`
	Name       string   `json:"name"`
	UnitPrice  int64    `json:"unitPrice"`
	Quantity   int      `json:"quantity"`
	Condiments []string `json:"condiments"`
	Subtotal   int64    `json:"subtotal"`
}

type pickerView struct {
	State           string `json:"state"`
	PendingItemID   int    `json:"pendingItemId,omitempty"`
	PendingItemName string `json:"pendingItemName,omitempty"`
	Chosen          []int  `json:"chosen"`
}

type cartView struct {
	ID           string         `json:"id"`
	OrderNumber  string         `json:"orderNumber"`
	Instructions string         `json:"instructions"`
	Lines        []cartLineView `json:"lines"`
	Total        int64          `json:"total"`
	TotalLabel   string         `json:"totalLabel"`
	Picker       pickerView     `json:"picker"`
}

type selectResultView struct {
	AwaitingCondiments bool     `json:"awaitingCondiments"`
	Cart               cartView `json:"cart"`
}

type toggleResultView struct {
	Chosen         []int    `json:"chosen"`
	MaximumReached bool     `json:"maximumReached"`
	Cart           cartView `json:"cart"`
}

type orderItemView struct {
	Name       string   `json:"name"`
	UnitPrice  int64    `json:"unitPrice"`
	Quantity   int      `json:"quantity"`
	Condiments []string `json:"condiments"`
	Subtotal   int64    `json:"subtotal"`
}

type orderView struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Items        []orderItemView `json:"items"`
	Instructions string          `json:"instructions"`
	Total        int64           `json:"total"`
	TotalLabel   string          `json:"totalLabel"`
	Status       string          `json:"status"`
	PlacedAt     time.Time       `json:"placedAt"`
	StaffID      string          `json:"staffId"`
}

type advanceView struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type countsView struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Placed    int `json:"placed"`
	Completed int `json:"completed"`
}

type cardView struct {
	Order       orderView `json:"order"`
	PlacedAgo   string    `json:"placedAgo"`
	PlacedAt    string    `json:"placedAt"`
	StatusLabel string    `json:"statusLabel"`
	StatusColor string    `json:"statusColor"`
	ActionLabel string    `json:"actionLabel"`
	CanAdvance  bool      `json:"canAdvance"`
}

type boardView struct {
	Filter      string     `json:"filter"`
	Counts      countsView `json:"counts"`
	Cards       []cardView `json:"cards"`
	Stale       bool       `json:"stale"`
	StaleReason string     `json:"staleReason,omitempty"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

func toMenuView(catalog *menu.Catalog) menuView {
	view := menuView{
		Categories: make([]menuCategoryView, 0),
		Condiments: make([]condimentView, 0, len(catalog.Condiments())),
	}

	for _, group := range catalog.ByCategory() {
		items := make([]menuItemView, 0, len(group.Items))
		for _, item := range group.Items {
			items = append(items, menuItemView{
				ID:                int(item.ID()),
				Name:              item.Name(),
				Description:       item.Description(),
				Price:             item.Price().Minor(),
				PriceLabel:        item.Price().String(),
				RequiresCondiment: item.RequiresCondiment(),
			})
		}
		view.Categories = append(view.Categories, menuCategoryView{
			Category: group.Category.String(),
			Label:    group.Category.Label(),
			Items:    items,
		})
	}

	for _, c := range catalog.Condiments() {
		view.Condiments = append(view.Condiments, condimentView{ID: int(c.ID()), Name: c.Name()})
	}
	return view
}

func toCartView(id string, c *cart.Cart, b *cart.Builder) (cartView, error) {
	total, err := c.Total()
	if err != nil {
		return cartView{}, err
	}

	view := cartView{
		ID:           id,
		OrderNumber:  c.Number(),
		Instructions: c.Instructions(),
		Lines:        make([]cartLineView, 0, c.Len()),
		Total:        total.Minor(),
		TotalLabel:   total.String(),
		Picker:       pickerView{State: b.PickerState().String(), Chosen: []int{}},
	}

	for _, line := range c.Lines() {
		subtotal, err := line.Subtotal()
		if err != nil {
			return cartView{}, err
		}
		condiments := make([]string, 0, len(line.Condiments()))
		for _, cond := range line.Condiments() {
			condiments = append(condiments, cond.Name())
		}
		view.Lines = append(view.Lines, cartLineView{
			ItemID:     int(line.ItemID()),
			Name:       line.Name(),
			UnitPrice:  line.UnitPrice().Minor(),
			Quantity:   line.Quantity(),
			Condiments: condiments,
			Subtotal:   subtotal.Minor(),
		})
	}

	if pending, ok := b.Pending(); ok {
		view.Picker.PendingItemID = int(pending.Item.ID())
		view.Picker.PendingItemName = pending.Item.Name()
		for _, cond := range pending.Chosen {
			view.Picker.Chosen = append(view.Picker.Chosen, int(cond.ID()))
		}
	}

	return view, nil
}

func toIDs(ids []menu.ItemID) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out
}

func toOrderView(o *order.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		var subtotal int64
		if s, err := item.Subtotal(); err == nil {
			subtotal = s.Minor()
		}
		items = append(items, orderItemView{
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice().Minor(),
			Quantity:   item.Quantity(),
			Condiments: item.CondimentNames(),
			Subtotal:   subtotal,
		})
	}

	return orderView{
		ID:           o.ID().String(),
		Number:       o.Number(),
		Items:        items,
		Instructions: o.Instructions(),
		Total:        o.Total().Minor(),
		TotalLabel:   o.Total().String(),
		Status:       o.Status().String(),
		PlacedAt:     o.PlacedAt(),
		StaffID:      o.Staff().ID(),
	}
}

func toBoardView(b liveview.Board) boardView {
	cards := make([]cardView, 0, len(b.Cards))
	for _, card := range b.Cards {
		cards = append(cards, cardView{
			Order:       toOrderView(card.Order),
			PlacedAgo:   card.PlacedAgo,
			PlacedAt:    card.PlacedAt,
			StatusLabel: card.StatusLabel,
			StatusColor: card.StatusColor,
			ActionLabel: card.ActionLabel,
			CanAdvance:  card.CanAdvance,
		})
	}

	return boardView{
		Filter: b.Filter.String(),
		Counts: countsView{
			All:       b.Counts.All,
			Pending:   b.Counts.Pending,
			Placed:    b.Counts.Placed,
			Completed: b.Counts.Completed,
		},
		Cards:       cards,
		Stale:       b.Stale,
		StaleReason: b.StaleReason,
		GeneratedAt: b.GeneratedAt,
	}
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"orderdesk/internal/core/application/carts"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/cart"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/menu"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ViewerObserver is told when live board viewers come and go.
type ViewerObserver interface {
	ViewerAttached()
	ViewerDetached()
}

type nopViewerObserver struct{}

func (nopViewerObserver) ViewerAttached() {}
func (nopViewerObserver) ViewerDetached() {}

// Server holds the HTTP handlers. Cart operations run inside the session so
// each cart sees one request at a time.
type Server struct {
	catalog  *menu.Catalog
	carts    *carts.Registry
	store    ports.OrderStore
	location *time.Location
	viewers  ViewerObserver
	logger   *slog.Logger

	// Command handlers
	submitOrderHandler        *commands.SubmitOrderCommandHandler
	advanceOrderStatusHandler *commands.AdvanceOrderStatusCommandHandler

	// Query handlers
	getOrderBoardHandler queries.GetOrderBoardQueryHandler
}

func NewServer(
	catalog *menu.Catalog,
	registry *carts.Registry,
	store ports.OrderStore,
	submitOrderHandler *commands.SubmitOrderCommandHandler,
	advanceOrderStatusHandler *commands.AdvanceOrderStatusCommandHandler,
	getOrderBoardHandler queries.GetOrderBoardQueryHandler,
	location *time.Location,
	viewers ViewerObserver,
	logger *slog.Logger,
) (*Server, error) {
	if catalog == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	if registry == nil {
		return nil, errs.NewValueIsRequiredError("cart registry")
	}
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if submitOrderHandler == nil {
		return nil, errs.NewValueIsRequiredError("submit order handler")
	}
	if advanceOrderStatusHandler == nil {
		return nil, errs.NewValueIsRequiredError("advance order status handler")
	}
	if location == nil {
		location = time.Local
	}
	if viewers == nil {
		viewers = nopViewerObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		catalog:                   catalog,
		carts:                     registry,
		store:                     store,
		location:                  location,
		viewers:                   viewers,
		logger:                    logger.With("component", "http"),
		submitOrderHandler:        submitOrderHandler,
		advanceOrderStatusHandler: advanceOrderStatusHandler,
		getOrderBoardHandler:      getOrderBoardHandler,
	}, nil
}

// GetMenu handles GET /api/v1/menu.
func (s *Server) GetMenu(c echo.Context) error {
	return c.JSON(http.StatusOK, toMenuView(s.catalog))
}

type orderNumberRequest struct {
	OrderNumber string `json:"orderNumber"`
}

// StartCart handles POST /api/v1/carts.
func (s *Server) StartCart(c echo.Context) error {
	staff, ok := staffFrom(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req orderNumberRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	session, err := s.carts.Start(staff, req.OrderNumber)
	if err != nil {
		return writeError(c, err)
	}

	var view cartView
	if err := session.Do(func(ct *cart.Cart, b *cart.Builder) error {
		var viewErr error
		view, viewErr = toCartView(session.ID().String(), ct, b)
		return viewErr
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetCart handles GET /api/v1/carts/{cartId}.
func (s *Server) GetCart(c echo.Context) error {
	return s.withCart(c, http.StatusOK, func(*cart.Cart, *cart.Builder) error { return nil })
}

// DiscardCart handles DELETE /api/v1/carts/{cartId}.
func (s *Server) DiscardCart(c echo.Context) error {
	session, err := s.session(c)
	if err != nil {
		return writeError(c, err)
	}
	s.carts.Discard(session.ID())
	return c.NoContent(http.StatusNoContent)
}

// SetOrderNumber handles PUT /api/v1/carts/{cartId}/order-number.
func (s *Server) SetOrderNumber(c echo.Context) error {
	var req orderNumberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return s.withCart(c, http.StatusOK, func(ct *cart.Cart, b *cart.Builder) error {
		return b.SetOrderNumber(ct, req.OrderNumber)
	})
}

type selectItemRequest struct {
	ItemID int `json:"itemId"`
}

// SelectItem handles POST /api/v1/carts/{cartId}/items.
func (s *Server) SelectItem(c echo.Context) error {
	var req selectItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	session, err := s.session(c)
	if err != nil {
		return writeError(c, err)
	}

	var resp selectResultView
	if err := session.Do(func(ct *cart.Cart, b *cart.Builder) error {
		result, selErr := b.SelectItem(ct, menu.ItemID(req.ItemID))
		if selErr != nil {
			return selErr
		}
		view, viewErr := toCartView(session.ID().String(), ct, b)
		resp = selectResultView{AwaitingCondiments: result.AwaitingCondiments, Cart: view}
		return viewErr
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

type changeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ChangeQuantity handles PUT /api/v1/carts/{cartId}/items/{itemId}.
func (s *Server) ChangeQuantity(c echo.Context) error {
	itemID, err := bindItemID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req changeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return s.withCart(c, http.StatusOK, func(ct *cart.Cart, b *cart.Builder) error {
		return b.ChangeQuantity(ct, itemID, req.Quantity)
	})
}

// RemoveItem handles DELETE /api/v1/carts/{cartId}/items/{itemId}.
func (s *Server) RemoveItem(c echo.Context) error {
	itemID, err := bindItemID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return s.withCart(c, http.StatusOK, func(ct *cart.Cart, b *cart.Builder) error {
		b.RemoveItem(ct, itemID)
		return nil
	})
}

type toggleCondimentRequest struct {
	CondimentID int `json:"condimentId"`
}

// ToggleCondiment handles POST /api/v1/carts/{cartId}/selection/toggle.
func (s *Server) ToggleCondiment(c echo.Context) error {
	var req toggleCondimentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	session, err := s.session(c)
	if err != nil {
		return writeError(c, err)
	}

	var resp toggleResultView
	if err := session.Do(func(ct *cart.Cart, b *cart.Builder) error {
		result, toggleErr := b.ToggleCondiment(menu.ItemID(req.CondimentID))
		if toggleErr != nil {
			return toggleErr
		}
		view, viewErr := toCartView(session.ID().String(), ct, b)
		resp = toggleResultView{Chosen: toIDs(result.Chosen), MaximumReached: result.MaximumReached, Cart: view}
		return viewErr
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

type confirmCondimentsRequest struct {
	CondimentIDs []int `json:"condimentIds"`
}

// ConfirmCondiments handles POST /api/v1/carts/{cartId}/selection/confirm.
// Without condimentIds the choices toggled so far are confirmed.
func (s *Server) ConfirmCondiments(c echo.Context) error {
	var req confirmCondimentsRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	return s.withCart(c, http.StatusOK, func(ct *cart.Cart, b *cart.Builder) error {
		if req.CondimentIDs == nil {
			return b.ConfirmSelection(ct)
		}
		pending, ok := b.Pending()
		if !ok {
			return errs.NewValidationError(errs.ReasonNoPendingSelection)
		}
		chosen := make([]menu.ItemID, 0, len(req.CondimentIDs))
		for _, id := range req.CondimentIDs {
			chosen = append(chosen, menu.ItemID(id))
		}
		return b.ConfirmCondiments(ct, pending.Item.ID(), chosen)
	})
}

// CancelSelection handles DELETE /api/v1/carts/{cartId}/selection.
func (s *Server) CancelSelection(c echo.Context) error {
	return s.withCart(c, http.StatusOK, func(_ *cart.Cart, b *cart.Builder) error {
		b.CancelSelection()
		return nil
	})
}

type instructionsRequest struct {
	Instructions string `json:"instructions"`
}

// SetInstructions handles PUT /api/v1/carts/{cartId}/instructions.
func (s *Server) SetInstructions(c echo.Context) error {
	var req instructionsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return s.withCart(c, http.StatusOK, func(ct *cart.Cart, b *cart.Builder) error {
		b.SetInstructions(ct, req.Instructions)
		return nil
	})
}

// ResetCart handles POST /api/v1/carts/{cartId}/reset.
func (s *Server) ResetCart(c echo.Context) error {
	return s.withCart(c, http.StatusOK, func(ct *cart.Cart, b *cart.Builder) error {
		b.Reset(ct)
		return nil
	})
}

// SubmitCart handles POST /api/v1/carts/{cartId}/submit. The cart is left
// as it was; clients reset it explicitly once the order is confirmed.
func (s *Server) SubmitCart(c echo.Context) error {
	session, err := s.session(c)
	if err != nil {
		return writeError(c, err)
	}

	var stored *order.Order
	if err := session.Do(func(ct *cart.Cart, _ *cart.Builder) error {
		cmd, cmdErr := commands.NewSubmitOrderCommand(ct, session.Owner())
		if cmdErr != nil {
			return cmdErr
		}
		var handleErr error
		stored, handleErr = s.submitOrderHandler.Handle(c.Request().Context(), cmd)
		return handleErr
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toOrderView(stored))
}

// GetOrderBoard handles GET /api/v1/orders.
func (s *Server) GetOrderBoard(c echo.Context) error {
	query, err := queries.NewGetOrderBoardQuery(c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}

	board, err := s.getOrderBoardHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBoardView(board))
}

// AdvanceOrderStatus handles POST /api/v1/orders/{orderId}/advance.
func (s *Server) AdvanceOrderStatus(c echo.Context) error {
	orderID, err := bindUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID)
	if err != nil {
		return writeError(c, err)
	}

	status, err := s.advanceOrderStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, advanceView{ID: orderID.String(), Status: status.String()})
}

// session resolves the cartId path parameter to a session of the caller.
// Carts of other staff members are reported as missing.
func (s *Server) session(c echo.Context) (*carts.Session, error) {
	id, err := bindUUID(c, "cartId")
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("cartId", err)
	}

	session, err := s.carts.Get(id)
	if err != nil {
		return nil, err
	}

	if staff, ok := staffFrom(c); ok && staff.ID() != session.Owner().ID() {
		return nil, errs.NewObjectNotFoundError("cart", id.String())
	}
	return session, nil
}

// withCart runs fn inside the session and answers with the resulting cart.
func (s *Server) withCart(c echo.Context, status int, fn func(*cart.Cart, *cart.Builder) error) error {
	session, err := s.session(c)
	if err != nil {
		return writeError(c, err)
	}

	var view cartView
	if err := session.Do(func(ct *cart.Cart, b *cart.Builder) error {
		if fnErr := fn(ct, b); fnErr != nil {
			return fnErr
		}
		var viewErr error
		view, viewErr = toCartView(session.ID().String(), ct, b)
		return viewErr
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(status, view)
}

func bindUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	if err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}); err != nil {
		return kernel.UUID{}, err
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err := id.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	return id, nil
}

func bindItemID(c echo.Context) (menu.ItemID, error) {
	var id int
	if err := runtime.BindStyledParameterWithOptions("simple", "itemId", c.Param("itemId"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}); err != nil {
		return 0, err
	}
	return menu.ItemID(id), nil
}

package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter wires the handlers, request validation, basic auth, Swagger UI
// and the metrics endpoint into an echo instance. metrics may be nil.
func NewRouter(ctx context.Context, server *Server, creds Credentials, metrics http.Handler) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerSwagger(doc); err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	api := e.Group("/api/v1", basicAuth(creds), validate)

	api.GET("/menu", server.GetMenu)

	api.POST("/carts", server.StartCart)
	api.GET("/carts/:cartId", server.GetCart)
	api.DELETE("/carts/:cartId", server.DiscardCart)
	api.PUT("/carts/:cartId/order-number", server.SetOrderNumber)
	api.POST("/carts/:cartId/items", server.SelectItem)
	api.PUT("/carts/:cartId/items/:itemId", server.ChangeQuantity)
	api.DELETE("/carts/:cartId/items/:itemId", server.RemoveItem)
	api.POST("/carts/:cartId/selection/toggle", server.ToggleCondiment)
	api.POST("/carts/:cartId/selection/confirm", server.ConfirmCondiments)
	api.DELETE("/carts/:cartId/selection", server.CancelSelection)
	api.PUT("/carts/:cartId/instructions", server.SetInstructions)
	api.POST("/carts/:cartId/reset", server.ResetCart)
	api.POST("/carts/:cartId/submit", server.SubmitCart)

	api.GET("/orders", server.GetOrderBoard)
	api.POST("/orders/:orderId/advance", server.AdvanceOrderStatus)
	api.GET("/board", server.StreamBoard)

	return e, nil
}

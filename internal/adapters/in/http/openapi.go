package http

import (
	"context"
	_ "embed"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

var registerSwaggerOnce sync.Once

// swaggerDoc serves the embedded document to echo-swagger.
type swaggerDoc struct {
	doc string
}

func (d swaggerDoc) ReadDoc() string {
	return d.doc
}

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

func registerSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerSwaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{doc: string(raw)})
	})
	return nil
}

// requestValidator checks every request the document describes. Requests
// for undescribed paths (health, metrics, swagger) pass through untouched.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	// Route matching must not depend on the host the server is reached at.
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, errorResponse{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
			}

			return next(c)
		}
	}, nil
}

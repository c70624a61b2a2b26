package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SpecURL is where the router serves the OpenAPI document.
const SpecURL = "/openapi.yml"

// Handler serves Swagger UI pointed at the OpenAPI document.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(SpecURL),
		httpSwagger.DocExpansion("list"),
	)
}

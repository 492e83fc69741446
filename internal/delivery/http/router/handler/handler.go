// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"bistro/internal/delivery/http/response"
	"bistro/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// pageFromQuery reads the page/limit query parameters. Malformed or missing
// values come back as zero, which Normalize later maps to the defaults; bad
// pagination input degrades instead of erroring.
func pageFromQuery(c echo.Context) repository.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("limit"))

	return repository.Page{Number: page, Size: size}
}

// paginated maps a repository page to the response envelope's pager shape.
func paginated[T any](result *repository.PageResult[T]) response.Paginated {
	return response.Paginated{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		Size:       result.Size,
		TotalPages: result.TotalPages(),
	}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

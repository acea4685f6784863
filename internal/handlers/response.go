package handlers

import (
	"github.com/anonto42/yatube/backend/internal/feed"
	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

func getUserIDFromContext(c echo.Context) uint {
	return middleware.ViewerID(c)
}

func success(data interface{}) echo.Map {
	return echo.Map{"success": true, "data": data}
}

func pageMeta(p *feed.Page, pageSize int) echo.Map {
	return echo.Map{
		"currentPage":     p.Number,
		"totalPages":      p.TotalPages,
		"totalItems":      p.Total,
		"itemsPerPage":    pageSize,
		"hasNextPage":     p.HasNext,
		"hasPreviousPage": p.HasPrevious,
	}
}

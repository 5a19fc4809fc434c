package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xricefarmer/bloglist-server/internal/repository"
)

// TestingHandler exposes the reset endpoint the end-to-end suite calls
// before each scenario. The route is only registered when APP_ENV is
// "test" (see router.RegisterTesting), so a production deployment never
// carries it.
type TestingHandler struct {
	Reset *repository.ResetRepo
}

func NewTestingHandler(reset *repository.ResetRepo) *TestingHandler {
	if reset == nil {
		panic("nil repository passed to NewTestingHandler")
	}
	return &TestingHandler{Reset: reset}
}

// ResetAll handles POST /api/testing/reset: wipe every store and return
// 204 so the suite can seed a fresh fixture set.
func (h *TestingHandler) ResetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Reset.ResetAll(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/favorites"
)

// AddFavoriteRequest is the payload for saving a location.
type AddFavoriteRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// initFavoritesRoutes registers the favorites endpoints.
func (c *Controller) initFavoritesRoutes() {
	favoritesGroup := c.Group.Group("/favorites")

	favoritesGroup.GET("", c.ListFavorites)
	favoritesGroup.POST("", c.AddFavorite)
	favoritesGroup.DELETE("/:name", c.RemoveFavorite)
}

// ListFavorites handles GET /api/v1/favorites
func (c *Controller) ListFavorites(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.Favorites.List())
}

// AddFavorite handles POST /api/v1/favorites
func (c *Controller) AddFavorite(ctx echo.Context) error {
	var req AddFavoriteRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, errors.Newf("invalid request body: %w", err).
			Component("api").
			Category(errors.CategoryValidation).
			Build())
	}

	if err := c.Favorites.Add(favorites.FavoriteLocation{Name: req.Name, Country: req.Country}); err != nil {
		return c.HandleError(ctx, err)
	}

	c.apiLogger.Info("Favorite saved", "name", req.Name, "country", req.Country)
	return ctx.JSON(http.StatusCreated, c.Favorites.List())
}

// RemoveFavorite handles DELETE /api/v1/favorites/:name
func (c *Controller) RemoveFavorite(ctx echo.Context) error {
	name := ctx.Param("name")
	if err := c.Favorites.Remove(name); err != nil {
		return c.HandleError(ctx, err)
	}

	c.apiLogger.Info("Favorite removed", "name", name)
	return ctx.JSON(http.StatusOK, c.Favorites.List())
}

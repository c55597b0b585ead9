package routers

import (
	"wellness-availability-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachBlockRoutes(router chi.Router, c *controllers.BlockController) {
	router.Get("/blocks", c.ListBlocks)
	router.Post("/blocks", c.CreateBlock)
	router.Delete("/blocks/{blockID}", c.DeleteBlock)
}

package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"catalog/internal/dto"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	facade   *services.ProductFacade
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(facade *services.ProductFacade) *ProductHandler {
	return &ProductHandler{
		facade:   facade,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns every product.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.facade.List(c.UserContext())
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return failure(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	product, err := h.facade.GetByID(c.UserContext(), id)
	if err != nil {
		log.Printf("Error getting product %d: %v", id, err)
		return failure(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product and responds with 201.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, ok, err := h.parseBody(c)
	if !ok {
		return err
	}

	created, err := h.facade.Create(c.UserContext(), *input)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return failure(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct replaces a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	input, ok, err := h.parseBody(c)
	if !ok {
		return err
	}

	updated, err := h.facade.Update(c.UserContext(), id, *input)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return failure(c, err, "Could not update product")
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	if err := h.facade.Delete(c.UserContext(), id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return failure(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product with ID %d deleted successfully", id),
	})
}

// parseBody decodes and validates a product body. When ok is false the 400
// response has already been written and err is the result of writing it.
func (h *ProductHandler) parseBody(c *fiber.Ctx) (input *dto.ProductView, ok bool, err error) {
	var body dto.ProductView
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return nil, false, badRequest(c, "Invalid request body", err)
	}

	if err := h.validate.Struct(body); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, false, badRequest(c, "Validation failed", err)
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return nil, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return &body, true, nil
}

func productID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, strconv.IntSize)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// failure maps facade errors to a status code.
func failure(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

package http

import (
	"mime"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/location-manager/internal/application/dto"
	"github.com/jhoicas/location-manager/internal/application/export"
	"github.com/jhoicas/location-manager/internal/application/ledger"
	"github.com/jhoicas/location-manager/internal/application/usecase"
)

const shopNotFound = "local no encontrado"

// ShopHandler maneja las peticiones HTTP para Shop, sus entradas y su descarga.
type ShopHandler struct {
	uc      *usecase.ShopUseCase
	entries *ledger.EntryUseCase
	export  *export.ShopExportUseCase
}

// NewShopHandler construye el handler.
func NewShopHandler(uc *usecase.ShopUseCase, entries *ledger.EntryUseCase, exp *export.ShopExportUseCase) *ShopHandler {
	return &ShopHandler{uc: uc, entries: entries, export: exp}
}

// Create godoc
// @Summary      Crear local
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShopRequest  true  "Datos del local"
// @Success      201   {object}  dto.ShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, shopNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener local por ID
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del local"
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [get]
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, shopNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar locales
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShopListResponse
// @Router       /api/shops [get]
func (h *ShopHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, shopNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar local
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del local"
// @Param        body  body  dto.UpdateShopRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [put]
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, shopNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar local (y sus entradas)
// @Tags         shops
// @Security     Bearer
// @Param        id   path  string  true  "ID del local"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [delete]
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, shopNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Entries godoc
// @Summary      Entradas de un local
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del local"
// @Success      200  {object}  dto.EntryListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id}/entries [get]
func (h *ShopHandler) Entries(c *fiber.Ctx) error {
	out, err := h.entries.ListByShop(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, shopNotFound)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar datos del local
// @Description  Documento del local con todas sus entradas. json (por defecto), pdf, xlsx o xml.
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Produce      application/xml
// @Param        id      path   string  true   "ID del local"
// @Param        format  query  string  false  "json | pdf | xlsx | xml"
// @Success      200  {object}  dto.ShopData
// @Success      304
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id}/shop-data-download [get]
func (h *ShopHandler) Download(c *fiber.Ctx) error {
	doc, err := h.export.Download(c.UserContext(), c.Params("id"), c.Query("format"))
	if err != nil {
		return writeError(c, err, shopNotFound)
	}
	c.Set(fiber.HeaderETag, doc.ETag)
	if c.Get(fiber.HeaderIfNoneMatch) == doc.ETag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	return c.Send(doc.Content)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/application/serviceorder"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// ServiceHandler maneja las peticiones HTTP de órdenes de servicio (protegido).
type ServiceHandler struct {
	uc *serviceorder.LifecycleUseCase
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc *serviceorder.LifecycleUseCase) *ServiceHandler {
	return &ServiceHandler{uc: uc}
}

func toServiceResponse(o *entity.ServiceOrder) dto.ServiceResponse {
	resp := dto.ServiceResponse{
		ID:                    o.ID,
		CustomerID:            o.CustomerID,
		WatchBrand:            o.WatchBrand,
		WatchModel:            o.WatchModel,
		WatchDescription:      o.WatchDescription,
		Issue:                 o.Issue,
		Cost:                  o.Cost,
		Status:                o.Status,
		FinalCost:             o.FinalCost,
		WarrantyMonths:        o.WarrantyMonths,
		ActualDelivery:        o.ActualDelivery,
		CompletionDescription: o.CompletionDescription,
		CreatedAt:             o.CreatedAt,
	}
	for _, n := range o.Notes {
		resp.Notes = append(resp.Notes, dto.ServiceNoteResponse{
			ID:        n.ID,
			Text:      n.Text,
			AddedBy:   n.AddedBy,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp
}

func serviceError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrInvalidStatus:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "estado inválido"})
	case domain.ErrInvalidTransition:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden de servicio no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Create godoc
// @Summary      Recibir una reparación en taller
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequest  true  "customer_id, watchBrand, issue, cost"
// @Success      201   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toServiceResponse(order))
}

// List godoc
// @Summary      Listar órdenes de servicio
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  false  "filtrar por cliente"
// @Param        status       query  string  false  "pending | in-progress | on-hold | completed | cancelled"
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), repository.ServiceOrderFilter{
		CustomerID: c.Query("customer_id"),
		Status:     c.Query("status"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toServiceResponse(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una orden con sus notas
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [get]
func (h *ServiceHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toServiceResponse(order))
}

// UpdateStatus godoc
// @Summary      Transicionar el estado de una orden
// @Description  completed no se alcanza por aquí: usar /complete, que exige los datos de cierre.
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services/{id}/status [patch]
func (h *ServiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status, GetUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toServiceResponse(order))
}

// Complete godoc
// @Summary      Completar una orden
// @Description  Fija costo final, garantía y entrega; el costo pasa a sumar al netValue del cliente.
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la orden"
// @Param        body  body  dto.CompleteServiceRequest  true  "description, finalCost, warrantyPeriod, actualDelivery"
// @Success      200   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services/{id}/complete [post]
func (h *ServiceHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toServiceResponse(order))
}

// AddNote godoc
// @Summary      Anexar una nota a la orden
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la orden"
// @Param        body  body  dto.AddNoteRequest  true  "text"
// @Success      201   {object}  dto.ServiceNoteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services/{id}/notes [post]
func (h *ServiceHandler) AddNote(c *fiber.Ctx) error {
	var in dto.AddNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	note, err := h.uc.AddNote(c.Context(), c.Params("id"), in.Text, GetUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ServiceNoteResponse{
		ID:        note.ID,
		Text:      note.Text,
		AddedBy:   note.AddedBy,
		CreatedAt: note.CreatedAt,
	})
}

// Reassign godoc
// @Summary      Reasignar la orden a otro cliente
// @Description  Recalcula las cuentas del cliente anterior y del nuevo.
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la orden"
// @Param        body  body  dto.ReassignRequest  true  "customer_id destino"
// @Success      200   {object}  dto.ServiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services/{id}/reassign [post]
func (h *ServiceHandler) Reassign(c *fiber.Ctx) error {
	var in dto.ReassignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Reassign(c.Context(), c.Params("id"), in.CustomerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toServiceResponse(order))
}

// Delete godoc
// @Summary      Eliminar una orden
// @Description  Recalcula la cuenta del cliente sobre las órdenes restantes.
// @Tags         services
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [delete]
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

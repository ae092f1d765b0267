package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/model"
	"storefront/internal/service"
)

// ContactHandler handles the contact form and its admin inbox.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactMessageResponse wraps one message under the "message" key.
type ContactMessageResponse struct {
	Message *model.ContactMessage `json:"message"`
}

// ContactSubmitResponse acknowledges a submission.
type ContactSubmitResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *model.ContactMessage `json:"data"`
}

// ContactMessagesResponse wraps the inbox.
type ContactMessagesResponse struct {
	Messages []model.ContactMessage `json:"messages"`
}

// SendMessage godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body service.ContactInput true "Message"
// @Success 201 {object} ContactSubmitResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /contact/send-message [post]
func (h *ContactHandler) SendMessage(c echo.Context) error {
	var req service.ContactInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	var createdBy string
	if claims := claimsOf(c); claims != nil {
		createdBy = claims.UserID
	}

	msg, err := h.contactService.SubmitMessage(c.Request().Context(), req, createdBy)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ContactSubmitResponse{
		Success: true,
		Message: "Message sent successfully",
		Data:    msg,
	})
}

// ListMessages godoc
// @Summary List contact messages
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ContactMessagesResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /contact/all-messages [get]
func (h *ContactHandler) ListMessages(c echo.Context) error {
	msgs, err := h.contactService.ListMessages(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ContactMessagesResponse{Messages: msgs})
}

// GetMessage godoc
// @Summary Get a contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} ContactMessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /contact/{id} [get]
func (h *ContactHandler) GetMessage(c echo.Context) error {
	msg, err := h.contactService.GetMessage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ContactMessageResponse{Message: msg})
}

// DeleteMessage godoc
// @Summary Delete a contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /contact/delete/{id} [delete]
func (h *ContactHandler) DeleteMessage(c echo.Context) error {
	if err := h.contactService.DeleteMessage(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Message deleted successfully",
	})
}

package controller

import (
	"dayflow/core/controller"
	"dayflow/core/errors"
	"dayflow/modules/schedule/dto"
	"dayflow/modules/schedule/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ScheduleController handles scheduling HTTP requests
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

// NewScheduleController creates a new controller
func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
	}
}

// CreateEvent handles POST /events
func (c *ScheduleController) CreateEvent(ctx echo.Context) error {
	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	result, appErr := c.ScheduleService.CreateEvent(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// GetEvent handles GET /events/:id
func (c *ScheduleController) GetEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}
	result, appErr := c.ScheduleService.GetEvent(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListEvents handles GET /events?from=&to=
func (c *ScheduleController) ListEvents(ctx echo.Context) error {
	var win dto.WindowRequest
	if err := ctx.Bind(&win); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid window parameters")
	}
	result, appErr := c.ScheduleService.ListEvents(ctx.Request().Context(), win.From, win.To)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateEvent handles PUT /events/:id
func (c *ScheduleController) UpdateEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}
	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	result, appErr := c.ScheduleService.UpdateEvent(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// DeleteEvent handles DELETE /events/:id
func (c *ScheduleController) DeleteEvent(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}
	if appErr := c.ScheduleService.DeleteEvent(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// CreateTimeBlock handles POST /time-blocks
func (c *ScheduleController) CreateTimeBlock(ctx echo.Context) error {
	var req dto.CreateTimeBlockRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	result, appErr := c.ScheduleService.CreateTimeBlock(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Time block created successfully")
}

// GetTimeBlock handles GET /time-blocks/:id
func (c *ScheduleController) GetTimeBlock(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid time block ID")
	}
	result, appErr := c.ScheduleService.GetTimeBlock(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateTimeBlock handles PUT /time-blocks/:id
func (c *ScheduleController) UpdateTimeBlock(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid time block ID")
	}
	var req dto.UpdateTimeBlockRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	result, appErr := c.ScheduleService.UpdateTimeBlock(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Time block updated successfully")
}

// DeleteTimeBlock handles DELETE /time-blocks/:id
func (c *ScheduleController) DeleteTimeBlock(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid time block ID")
	}
	if appErr := c.ScheduleService.DeleteTimeBlock(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Time block deleted successfully")
}

// Occurrences handles GET /occurrences?from=&to=
func (c *ScheduleController) Occurrences(ctx echo.Context) error {
	var win dto.WindowRequest
	if err := ctx.Bind(&win); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid window parameters")
	}
	result, appErr := c.ScheduleService.ExpandOccurrences(ctx.Request().Context(), win.From, win.To)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Conflicts handles POST /conflicts
func (c *ScheduleController) Conflicts(ctx echo.Context) error {
	var req dto.ConflictsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	result, appErr := c.ScheduleService.DetectConflicts(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Availability handles POST /availability
func (c *ScheduleController) Availability(ctx echo.Context) error {
	var req dto.AvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	result, appErr := c.ScheduleService.FindAvailability(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Suggestions handles POST /suggestions
func (c *ScheduleController) Suggestions(ctx echo.Context) error {
	var req dto.SuggestionsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	result, appErr := c.ScheduleService.SuggestSlots(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Suggestions found")
}

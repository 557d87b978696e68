// Package http provides the inbound REST adapter. It translates HTTP
// requests into commands and queries and maps domain errors to status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"jewelflow/internal/core/application/usecases/commands"
	"jewelflow/internal/core/application/usecases/queries"
	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/core/ports"
	"jewelflow/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CustomValidator adapts go-playground/validator to echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator creates a request validator for the HTTP server.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Server implements the REST API for the workshop.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	claimTaskHandler    commands.ClaimTaskCommandHandler
	releaseTaskHandler  commands.ReleaseTaskCommandHandler
	completeTaskHandler commands.CompleteTaskCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	// Query handlers
	listOrdersHandler       queries.ListOrdersQueryHandler
	listPendingTasksHandler queries.ListPendingTasksQueryHandler
	getStageLoadHandler     queries.GetStageLoadQueryHandler

	evidenceStorage ports.EvidenceStorage
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	claimTaskHandler commands.ClaimTaskCommandHandler,
	releaseTaskHandler commands.ReleaseTaskCommandHandler,
	completeTaskHandler commands.CompleteTaskCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	listPendingTasksHandler queries.ListPendingTasksQueryHandler,
	getStageLoadHandler queries.GetStageLoadQueryHandler,
	evidenceStorage ports.EvidenceStorage,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		claimTaskHandler:        claimTaskHandler,
		releaseTaskHandler:      releaseTaskHandler,
		completeTaskHandler:     completeTaskHandler,
		cancelOrderHandler:      cancelOrderHandler,
		listOrdersHandler:       listOrdersHandler,
		listPendingTasksHandler: listPendingTasksHandler,
		getStageLoadHandler:     getStageLoadHandler,
		evidenceStorage:         evidenceStorage,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewCustomValidator()

	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.GET("/tasks", s.GetTasks)
	v1.POST("/tasks/:id/claim", s.ClaimTask)
	v1.POST("/tasks/:id/release", s.ReleaseTask)
	v1.POST("/tasks/:id/complete", s.CompleteTask)
	v1.GET("/dashboard/stages", s.GetStageLoad)
}

// errorResponse is the uniform error body of the API.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// createOrderRequest is the payload for registering a new order.
type createOrderRequest struct {
	ClientName  string     `json:"client_name" validate:"required"`
	ClientPhone string     `json:"client_phone" validate:"required"`
	ClientEmail string     `json:"client_email" validate:"omitempty,email"`
	ProductName string     `json:"product_name" validate:"required"`
	Material    string     `json:"material" validate:"required"`
	Purity      string     `json:"purity"`
	Weight      string     `json:"weight" validate:"required"`
	Quantity    int        `json:"quantity" validate:"required,min=1"`
	Deadline    *time.Time `json:"deadline"`
	Notes       string     `json:"notes"`
}

// workerRequest carries the acting worker for claim and release operations.
type workerRequest struct {
	Worker string `json:"worker" validate:"required"`
}

type orderResponse struct {
	ID             string     `json:"id"`
	OrderNo        string     `json:"order_no"`
	ClientName     string     `json:"client_name"`
	ClientPhone    string     `json:"client_phone"`
	ClientEmail    string     `json:"client_email,omitempty"`
	ProductName    string     `json:"product_name"`
	Material       string     `json:"material"`
	Purity         string     `json:"purity,omitempty"`
	Weight         string     `json:"weight"`
	Quantity       int        `json:"quantity"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Stage          string     `json:"stage"`
	Status         string     `json:"status"`
	AssignedWorker string     `json:"assigned_worker,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	Version        int64      `json:"version"`
}

type taskResponse struct {
	OrderID        string     `json:"order_id"`
	OrderNo        string     `json:"order_no"`
	ProductName    string     `json:"product_name"`
	ClientName     string     `json:"client_name"`
	Material       string     `json:"material"`
	Stage          string     `json:"stage"`
	AssignedWorker string     `json:"assigned_worker,omitempty"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date,omitempty"`
}

type stageLoadResponse struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	material, err := order.MaterialFromString(req.Material)
	if err != nil {
		return badRequest(ctx, "Invalid material: "+err.Error())
	}

	purity := order.PurityNone
	if req.Purity != "" {
		if purity, err = order.PurityFromString(req.Purity); err != nil {
			return badRequest(ctx, "Invalid purity: "+err.Error())
		}
	}

	weight, err := decimal.NewFromString(req.Weight)
	if err != nil {
		return badRequest(ctx, "Invalid weight: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Spec{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ProductName: req.ProductName,
		Material:    material,
		Purity:      purity,
		Weight:      weight,
		Quantity:    req.Quantity,
		Deadline:    req.Deadline,
		Notes:       req.Notes,
	})
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	orderNo, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"order_no": orderNo})
}

// GetOrders handles GET /api/v1/orders - lists orders with optional search
// and stage filters.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewListOrdersQuery(
		ctx.QueryParam("q"),
		ctx.QueryParam("stage"),
	)

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve orders")
	}

	response := make([]orderResponse, len(orders))
	for i, o := range orders {
		response[i] = orderResponse{
			ID:             o.ID.String(),
			OrderNo:        o.OrderNo,
			ClientName:     o.ClientName,
			ClientPhone:    o.ClientPhone,
			ClientEmail:    o.ClientEmail,
			ProductName:    o.ProductName,
			Material:       o.Material,
			Purity:         o.Purity,
			Weight:         o.Weight.String(),
			Quantity:       o.Quantity,
			Deadline:       o.Deadline,
			Notes:          o.Notes,
			Stage:          o.Stage,
			Status:         o.Status,
			AssignedWorker: o.AssignedWorker,
			CreatedAt:      o.CreatedAt,
			Version:        o.Version,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid cancel request: "+err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to cancel order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTasks handles GET /api/v1/tasks - lists pending tasks ordered by
// urgency, with optional stage and worker filters.
func (s *Server) GetTasks(ctx echo.Context) error {
	query := queries.NewListPendingTasksQuery(
		ctx.QueryParam("stage"),
		ctx.QueryParam("worker"),
	)

	tasks, err := s.listPendingTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve tasks")
	}

	response := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		response[i] = taskResponse{
			OrderID:        t.OrderID.String(),
			OrderNo:        t.OrderNo,
			ProductName:    t.ProductName,
			ClientName:     t.ClientName,
			Material:       t.MaterialLabel,
			Stage:          t.Stage,
			AssignedWorker: t.AssignedWorker,
			Priority:       t.Priority,
			DueDate:        t.DueDate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimTask handles POST /api/v1/tasks/:id/claim.
func (s *Server) ClaimTask(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var req workerRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewClaimTaskCommand(orderID, req.Worker)
	if err != nil {
		return badRequest(ctx, "Invalid claim request: "+err.Error())
	}

	if err = s.claimTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to claim task")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseTask handles POST /api/v1/tasks/:id/release.
func (s *Server) ReleaseTask(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var req workerRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewReleaseTaskCommand(orderID, req.Worker)
	if err != nil {
		return badRequest(ctx, "Invalid release request: "+err.Error())
	}

	if err = s.releaseTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to release task")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteTask handles POST /api/v1/tasks/:id/complete. The request is a
// multipart form carrying the worker, the optional QC outcome and the
// mandatory photo. The photo is stored first; the completion transaction
// persists its reference together with the advancement.
func (s *Server) CompleteTask(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	worker := ctx.FormValue("worker")
	if worker == "" {
		return badRequest(ctx, "worker is required")
	}

	qcOutcome := order.QCOutcomeNone
	if raw := ctx.FormValue("qc_outcome"); raw != "" {
		if qcOutcome, err = order.QCOutcomeFromString(raw); err != nil {
			return badRequest(ctx, "Invalid qc_outcome: "+err.Error())
		}
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, order.ErrEvidenceIsRequired.Error())
	}

	photo, err := fileHeader.Open()
	if err != nil {
		return respondError(ctx, http.StatusInternalServerError, "Failed to read evidence photo")
	}
	defer photo.Close()

	// Find the order's current stage so the storage key is stable across
	// completion retries.
	stage, err := s.currentStage(ctx, orderID)
	if err != nil {
		return domainError(ctx, err, "Failed to complete task")
	}

	evidenceRef, err := s.evidenceStorage.Store(
		ctx.Request().Context(),
		orderID,
		stage,
		photo,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		return respondError(ctx, http.StatusInternalServerError, "Failed to store evidence photo")
	}

	cmd, err := commands.NewCompleteTaskCommand(orderID, worker, evidenceRef, qcOutcome)
	if err != nil {
		return domainError(ctx, err, "Invalid completion request")
	}

	if err = s.completeTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to complete task")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStageLoad handles GET /api/v1/dashboard/stages.
func (s *Server) GetStageLoad(ctx echo.Context) error {
	loads, err := s.getStageLoadHandler.Handle(ctx.Request().Context(), queries.NewGetStageLoadQuery())
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve stage load")
	}

	response := make([]stageLoadResponse, len(loads))
	for i, l := range loads {
		response[i] = stageLoadResponse{Stage: l.Stage, Count: l.Count}
	}

	return ctx.JSON(http.StatusOK, response)
}

// currentStage resolves the current stage of an order for evidence storage.
func (s *Server) currentStage(ctx echo.Context, orderID kernel.UUID) (order.Stage, error) {
	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListOrdersQuery("", ""))
	if err != nil {
		return order.StageUnknown, err
	}
	for _, o := range orders {
		if o.ID.IsEqual(orderID) {
			return order.StageFromString(o.Stage)
		}
	}
	return order.StageUnknown, errs.NewObjectNotFoundError("orderID", orderID)
}

func badRequest(ctx echo.Context, message string) error {
	return respondError(ctx, http.StatusBadRequest, message)
}

func respondError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, errorResponse{Code: code, Message: message})
}

// domainError maps domain errors to HTTP status codes.
func domainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, commands.ErrNoOrderFound):
		return respondError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrTaskAlreadyClaimed), errors.Is(err, errs.ErrVersionConflict):
		return respondError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrTerminalStage), errors.Is(err, order.ErrInvalidTransition):
		return respondError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrEvidenceIsRequired),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respondError(ctx, http.StatusBadRequest, err.Error())
	default:
		return respondError(ctx, http.StatusInternalServerError, fallback)
	}
}

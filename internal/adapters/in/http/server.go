// Package http exposes the order dispatch API over echo. Handlers translate
// requests into commands and queries, and map domain errors onto HTTP status
// codes; all business rules live below this layer.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/p-thanks/RouteX/internal/core/application/usecases/commands"
	"github.com/p-thanks/RouteX/internal/core/application/usecases/queries"
	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/domain/services"
	"github.com/p-thanks/RouteX/internal/observability"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
)

// Server wires HTTP routes to the application's command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	registerDriverHandler        commands.RegisterDriverCommandHandler
	dispatchOrderHandler         commands.DispatchOrderCommandHandler
	reportLocationHandler        commands.ReportLocationCommandHandler
	markPickedUpHandler          commands.MarkPickedUpCommandHandler
	markInTransitHandler         commands.MarkInTransitCommandHandler
	completeDeliveryHandler      commands.CompleteDeliveryCommandHandler
	cancelOrderHandler           commands.CancelOrderCommandHandler
	failOrderHandler             commands.FailOrderCommandHandler
	rateDriverHandler            commands.RateDriverCommandHandler
	setDriverAvailabilityHandler commands.SetDriverAvailabilityCommandHandler
	addPromoCodeHandler          commands.AddPromoCodeCommandHandler

	// Query handlers
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler
	getActiveOrdersHandler  queries.GetActiveOrdersQueryHandler

	pricing *services.PricingEngine
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	registerDriverHandler commands.RegisterDriverCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	markPickedUpHandler commands.MarkPickedUpCommandHandler,
	markInTransitHandler commands.MarkInTransitCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	failOrderHandler commands.FailOrderCommandHandler,
	rateDriverHandler commands.RateDriverCommandHandler,
	setDriverAvailabilityHandler commands.SetDriverAvailabilityCommandHandler,
	addPromoCodeHandler commands.AddPromoCodeCommandHandler,
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	pricing *services.PricingEngine,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		registerDriverHandler:        registerDriverHandler,
		dispatchOrderHandler:         dispatchOrderHandler,
		reportLocationHandler:        reportLocationHandler,
		markPickedUpHandler:          markPickedUpHandler,
		markInTransitHandler:         markInTransitHandler,
		completeDeliveryHandler:      completeDeliveryHandler,
		cancelOrderHandler:           cancelOrderHandler,
		failOrderHandler:             failOrderHandler,
		rateDriverHandler:            rateDriverHandler,
		setDriverAvailabilityHandler: setDriverAvailabilityHandler,
		addPromoCodeHandler:          addPromoCodeHandler,
		getOrderTrackingHandler:      getOrderTrackingHandler,
		getActiveOrdersHandler:       getActiveOrdersHandler,
		pricing:                      pricing,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/dispatch", s.DispatchOrder)
	api.POST("/orders/:id/pickup", s.MarkPickedUp)
	api.POST("/orders/:id/transit", s.MarkInTransit)
	api.POST("/orders/:id/deliver", s.CompleteDelivery)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/fail", s.FailOrder)
	api.POST("/orders/:id/rating", s.RateDriver)
	api.GET("/orders/:id/tracking", s.GetOrderTracking)

	api.POST("/drivers", s.RegisterDriver)
	api.POST("/drivers/:id/location", s.ReportLocation)
	api.PUT("/drivers/:id/availability", s.SetDriverAvailability)
	api.GET("/drivers/:id/orders", s.GetActiveOrders)

	api.POST("/quotes", s.GetQuote)
	api.POST("/promos", s.AddPromoCode)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// MetricsMiddleware counts requests by method, route and status.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			err := next(ctx)
			status := ctx.Response().Status
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				}
			}
			observability.HTTPRequestsTotal.WithLabelValues(
				ctx.Request().Method, ctx.Path(), strconv.Itoa(status)).Inc()
			return err
		}
	}
}

// CreateOrder handles POST /api/v1/orders - places a new delivery order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	pickup, err := toWaypoint(request.Pickup)
	if err != nil {
		return badRequest(ctx, "Invalid pickup: "+err.Error())
	}
	dropoff, err := toWaypoint(request.Dropoff)
	if err != nil {
		return badRequest(ctx, "Invalid dropoff: "+err.Error())
	}

	packageType, err := order.PackageTypeFromString(request.Package.Type)
	if err != nil {
		return badRequest(ctx, "Invalid package type: "+request.Package.Type)
	}
	pkg, err := order.NewPackageInfo(packageType, request.Package.WeightKg,
		request.Package.Description, request.Package.Dimensions, request.Package.SpecialInstructions)
	if err != nil {
		return badRequest(ctx, "Invalid package: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, pickup, dropoff, pkg,
		request.PromoCode, request.ScheduledPickupAt, request.ScheduledDeliveryAt)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch - assigns a driver.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// MarkPickedUp handles POST /api/v1/orders/:id/pickup.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewMarkPickedUpCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.markPickedUpHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// MarkInTransit handles POST /api/v1/orders/:id/transit.
func (s *Server) MarkInTransit(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewMarkInTransitCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.markInTransitHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CompleteDelivery handles POST /api/v1/orders/:id/deliver.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	// The body is optional: proof fields default to empty.
	var request CompleteDeliveryRequest
	if ctx.Request().ContentLength > 0 {
		if err = ctx.Bind(&request); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID,
		request.SignatureURL, request.PhotoURL, request.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// FailOrder handles POST /api/v1/orders/:id/fail.
func (s *Server) FailOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request FailOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFailOrderCommand(orderID, request.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.failOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// RateDriver handles POST /api/v1/orders/:id/rating.
func (s *Server) RateDriver(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request RateDriverRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRateDriverCommand(orderID, request.Rating)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.rateDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetOrderTracking handles GET /api/v1/orders/:id/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	tracking, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := TrackingResponse{
		OrderID:          tracking.OrderID.String(),
		Number:           tracking.Number,
		Status:           tracking.Status,
		PickupAddress:    tracking.PickupAddress,
		DropoffAddress:   tracking.DropoffAddress,
		DistanceKm:       tracking.DistanceKm,
		EstimatedMinutes: tracking.EstimatedMinutes,
		PriceTotal:       tracking.PriceTotal,
		Events:           make([]TrackingEventResponse, 0, len(tracking.Events)),
	}
	if tracking.DriverID != nil {
		id := tracking.DriverID.String()
		response.DriverID = &id
	}
	for _, event := range tracking.Events {
		response.Events = append(response.Events, TrackingEventResponse{
			Status:     event.Status,
			Lat:        event.Lat,
			Lon:        event.Lon,
			Note:       event.Note,
			OccurredAt: event.OccurredAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterDriver handles POST /api/v1/drivers.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var request RegisterDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicleType, err := driver.VehicleTypeFromString(request.VehicleType)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle type: "+request.VehicleType)
	}

	cmd, err := commands.NewRegisterDriverCommand(request.Name, request.Phone, vehicleType, request.VehiclePlate)
	if err != nil {
		return badRequest(ctx, "Invalid driver data: "+err.Error())
	}

	registered, err := s.registerDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, DriverResponse{
		ID:           registered.ID().String(),
		Name:         registered.Name(),
		Phone:        registered.Phone(),
		VehicleType:  registered.VehicleType().String(),
		VehiclePlate: registered.VehiclePlate(),
		Status:       registered.Status().String(),
		Rating:       registered.Rating(),
	})
}

// ReportLocation handles POST /api/v1/drivers/:id/location.
func (s *Server) ReportLocation(ctx echo.Context) error {
	driverID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var request ReportLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	point, err := kernel.NewGeoPoint(request.Lat, request.Lon)
	if err != nil {
		return badRequest(ctx, "Invalid coordinates: "+err.Error())
	}

	reportedAt := time.Now()
	if request.ReportedAt != nil {
		reportedAt = *request.ReportedAt
	}

	cmd, err := commands.NewReportLocationCommand(driverID, point, reportedAt)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.reportLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// SetDriverAvailability handles PUT /api/v1/drivers/:id/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context) error {
	driverID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var request SetAvailabilityRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(driverID, request.Online)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.setDriverAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetActiveOrders handles GET /api/v1/drivers/:id/orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	driverID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	query, err := queries.NewGetActiveOrdersQuery(driverID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	activeOrders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]ActiveOrderResponse, 0, len(activeOrders))
	for _, active := range activeOrders {
		response = append(response, ActiveOrderResponse{
			OrderID:          active.OrderID.String(),
			Number:           active.Number,
			Status:           active.Status,
			PickupAddress:    active.PickupAddress,
			PickupLat:        active.PickupLat,
			PickupLon:        active.PickupLon,
			DropoffAddress:   active.DropoffAddress,
			DropoffLat:       active.DropoffLat,
			DropoffLon:       active.DropoffLon,
			DistanceKm:       active.DistanceKm,
			EstimatedMinutes: active.EstimatedMinutes,
			PriceTotal:       active.PriceTotal,
			CreatedAt:        active.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetQuote handles POST /api/v1/quotes - prices a prospective order.
func (s *Server) GetQuote(ctx echo.Context) error {
	var request QuoteRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pickup, err := kernel.NewGeoPoint(request.PickupLat, request.PickupLon)
	if err != nil {
		return badRequest(ctx, "Invalid pickup coordinates: "+err.Error())
	}
	dropoff, err := kernel.NewGeoPoint(request.DropoffLat, request.DropoffLon)
	if err != nil {
		return badRequest(ctx, "Invalid dropoff coordinates: "+err.Error())
	}

	distanceKm, err := pickup.DistanceKm(dropoff)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	quote, err := s.pricing.Quote(distanceKm, request.WeightKg, request.PromoCode, time.Now())
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, QuoteResponse{
		Price:             toPriceResponse(quote.Price),
		DistanceKm:        quote.DistanceKm,
		EstimatedMinutes:  quote.EstimatedMinutes,
		EstimatedDuration: quote.EstimatedDuration,
	})
}

// AddPromoCode handles POST /api/v1/promos - registers a promo code.
func (s *Server) AddPromoCode(ctx echo.Context) error {
	var request AddPromoCodeRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddPromoCodeCommand(request.Code, request.Fraction)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addPromoCodeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail maps domain errors onto HTTP status codes.
func fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrNoDriverAvailable):
		status = http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func toWaypoint(request WaypointRequest) (order.Waypoint, error) {
	point, err := kernel.NewGeoPoint(request.Lat, request.Lon)
	if err != nil {
		return order.Waypoint{}, err
	}

	contact, err := order.NewContact(request.ContactName, request.ContactPhone)
	if err != nil {
		return order.Waypoint{}, err
	}

	return order.NewWaypoint(request.Address, point, contact)
}

func toPriceResponse(price order.PriceBreakdown) PriceResponse {
	return PriceResponse{
		Base:            price.Base(),
		DistanceCharge:  price.DistanceCharge(),
		WeightSurcharge: price.WeightSurcharge(),
		PeakSurcharge:   price.PeakSurcharge(),
		Discount:        price.Discount(),
		Total:           price.Total(),
		PromoCode:       price.PromoCode(),
	}
}

func toOrderResponse(created *order.Order) OrderResponse {
	return OrderResponse{
		ID:                  created.ID().String(),
		Number:              created.Number(),
		Status:              created.Status().String(),
		Price:               toPriceResponse(created.Price()),
		DistanceKm:          created.DistanceKm(),
		EstimatedMinutes:    created.EstimatedMinutes(),
		ScheduledPickupAt:   created.ScheduledPickupAt(),
		ScheduledDeliveryAt: created.ScheduledDeliveryAt(),
		CreatedAt:           created.CreatedAt(),
	}
}

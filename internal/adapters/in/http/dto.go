package http

import "time"

// ErrorResponse is the uniform error envelope for all API endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WaypointRequest carries one address with its coordinates and contact.
type WaypointRequest struct {
	Address      string  `json:"address"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	ContactName  string  `json:"contact_name"`
	ContactPhone string  `json:"contact_phone"`
}

// PackageRequest describes the parcel being sent. Dimensions and special
// instructions are optional free-form text.
type PackageRequest struct {
	Type                string  `json:"type"`
	WeightKg            float64 `json:"weight_kg"`
	Description         string  `json:"description"`
	Dimensions          string  `json:"dimensions,omitempty"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders. Missing scheduled
// times mean asap.
type CreateOrderRequest struct {
	CustomerID          string          `json:"customer_id"`
	Pickup              WaypointRequest `json:"pickup"`
	Dropoff             WaypointRequest `json:"dropoff"`
	Package             PackageRequest  `json:"package"`
	PromoCode           string          `json:"promo_code,omitempty"`
	ScheduledPickupAt   *time.Time      `json:"scheduled_pickup_time,omitempty"`
	ScheduledDeliveryAt *time.Time      `json:"scheduled_delivery_time,omitempty"`
}

// PriceResponse is the itemized price of an order or quote.
type PriceResponse struct {
	Base            float64 `json:"base"`
	DistanceCharge  float64 `json:"distance_charge"`
	WeightSurcharge float64 `json:"weight_surcharge"`
	PeakSurcharge   float64 `json:"peak_surcharge"`
	Discount        float64 `json:"discount"`
	Total           float64 `json:"total"`
	PromoCode       string  `json:"promo_code,omitempty"`
}

// OrderResponse is the representation of a created order.
type OrderResponse struct {
	ID                  string        `json:"id"`
	Number              string        `json:"number"`
	Status              string        `json:"status"`
	Price               PriceResponse `json:"price"`
	DistanceKm          float64       `json:"distance_km"`
	EstimatedMinutes    int           `json:"estimated_minutes"`
	ScheduledPickupAt   *time.Time    `json:"scheduled_pickup_time,omitempty"`
	ScheduledDeliveryAt *time.Time    `json:"scheduled_delivery_time,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
}

// RegisterDriverRequest is the body of POST /api/v1/drivers.
type RegisterDriverRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleType  string `json:"vehicle_type"`
	VehiclePlate string `json:"vehicle_plate"`
}

// DriverResponse is the representation of a registered driver.
type DriverResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	VehicleType  string  `json:"vehicle_type"`
	VehiclePlate string  `json:"vehicle_plate"`
	Status       string  `json:"status"`
	Rating       float64 `json:"rating"`
}

// ReportLocationRequest is the body of POST /api/v1/drivers/:id/location.
// ReportedAt is optional; a missing timestamp means "now".
type ReportLocationRequest struct {
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	ReportedAt *time.Time `json:"reported_at,omitempty"`
}

// SetAvailabilityRequest is the body of PUT /api/v1/drivers/:id/availability.
type SetAvailabilityRequest struct {
	Online bool `json:"online"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// FailOrderRequest is the body of POST /api/v1/orders/:id/fail.
type FailOrderRequest struct {
	Reason string `json:"reason"`
}

// CompleteDeliveryRequest is the body of POST /api/v1/orders/:id/deliver.
// All proof fields are optional.
type CompleteDeliveryRequest struct {
	SignatureURL string `json:"signature_url,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// RateDriverRequest is the body of POST /api/v1/orders/:id/rating.
type RateDriverRequest struct {
	Rating int `json:"rating"`
}

// QuoteRequest is the body of POST /api/v1/quotes. Quoting needs only the
// coordinates and the weight; no order is created.
type QuoteRequest struct {
	PickupLat  float64 `json:"pickup_lat"`
	PickupLon  float64 `json:"pickup_lon"`
	DropoffLat float64 `json:"dropoff_lat"`
	DropoffLon float64 `json:"dropoff_lon"`
	WeightKg   float64 `json:"weight_kg"`
	PromoCode  string  `json:"promo_code,omitempty"`
}

// QuoteResponse is the priced estimate for a prospective order.
type QuoteResponse struct {
	Price             PriceResponse `json:"price"`
	DistanceKm        float64       `json:"distance_km"`
	EstimatedMinutes  int           `json:"estimated_minutes"`
	EstimatedDuration string        `json:"estimated_duration"`
}

// AddPromoCodeRequest is the body of POST /api/v1/promos.
type AddPromoCodeRequest struct {
	Code     string  `json:"code"`
	Fraction float64 `json:"fraction"`
}

// TrackingEventResponse is one timeline entry of GET /api/v1/orders/:id/tracking.
type TrackingEventResponse struct {
	Status     string    `json:"status"`
	Lat        *float64  `json:"lat,omitempty"`
	Lon        *float64  `json:"lon,omitempty"`
	Note       string    `json:"note"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TrackingResponse is the order summary plus its timeline, newest first.
type TrackingResponse struct {
	OrderID          string                  `json:"order_id"`
	Number           string                  `json:"number"`
	Status           string                  `json:"status"`
	DriverID         *string                 `json:"driver_id,omitempty"`
	PickupAddress    string                  `json:"pickup_address"`
	DropoffAddress   string                  `json:"dropoff_address"`
	DistanceKm       float64                 `json:"distance_km"`
	EstimatedMinutes int                     `json:"estimated_minutes"`
	PriceTotal       float64                 `json:"price_total"`
	Events           []TrackingEventResponse `json:"events"`
}

// ActiveOrderResponse is one entry of GET /api/v1/drivers/:id/orders.
type ActiveOrderResponse struct {
	OrderID          string    `json:"order_id"`
	Number           string    `json:"number"`
	Status           string    `json:"status"`
	PickupAddress    string    `json:"pickup_address"`
	PickupLat        float64   `json:"pickup_lat"`
	PickupLon        float64   `json:"pickup_lon"`
	DropoffAddress   string    `json:"dropoff_address"`
	DropoffLat       float64   `json:"dropoff_lat"`
	DropoffLon       float64   `json:"dropoff_lon"`
	DistanceKm       float64   `json:"distance_km"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	PriceTotal       float64   `json:"price_total"`
	CreatedAt        time.Time `json:"created_at"`
}

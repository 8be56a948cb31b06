package httpServices

// routeResponse mirrors the subset of the OSRM route response the pricing
// path consumes. Distance is meters.
type routeResponse struct {
	Code   string  `json:"code"`
	Routes []route `json:"routes"`
}

type route struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

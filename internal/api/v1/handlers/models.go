package handlers

import (
	"time"

	"ulascansenturk/clima/internal/db/lookuplog"
	"ulascansenturk/clima/internal/lookup"
)

type WeatherRequest struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type WeatherResult struct {
	LocationName    string `json:"location_name"`
	TemperatureC    int    `json:"temperature_c"`
	TemperatureMinC int    `json:"temperature_min_c"`
	TemperatureMaxC int    `json:"temperature_max_c"`
	IconCode        string `json:"icon_code"`
	IconURL         string `json:"icon_url"`
}

type Notification struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

type WeatherResponse struct {
	Phase        string         `json:"phase"`
	Result       *WeatherResult `json:"result,omitempty"`
	Notification *Notification  `json:"notification,omitempty"`
}

type Error struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

type ErrorResponse struct {
	Errors []Error `json:"errors"`
}

func newWeatherResponse(snap lookup.Snapshot) WeatherResponse {
	resp := WeatherResponse{Phase: snap.Phase.String()}

	if snap.Result != nil {
		resp.Result = &WeatherResult{
			LocationName:    snap.Result.LocationName,
			TemperatureC:    snap.Result.TemperatureC,
			TemperatureMinC: snap.Result.TemperatureMinC,
			TemperatureMaxC: snap.Result.TemperatureMaxC,
			IconCode:        snap.Result.IconCode,
			IconURL:         snap.Result.IconURL(),
		}
	}

	if snap.Notification != nil {
		resp.Notification = &Notification{
			Kind:      snap.Notification.Kind.String(),
			Message:   snap.Notification.Message,
			ExpiresAt: snap.Notification.ExpiresAt,
		}
	}

	return resp
}

type LookupsResponse struct {
	Lookups []lookuplog.LookupRecord `json:"lookups"`
}

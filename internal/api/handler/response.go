package handler

import "github.com/labstack/echo/v4"

// apiResponse is the envelope returned by every endpoint, success or failure.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, apiResponse{Success: true, Message: message, Data: data})
}

func respondList(c echo.Context, status int, count int, data any) error {
	return c.JSON(status, apiResponse{Success: true, Count: &count, Data: data})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/mvarela/party-services/internal/roomsvc/registry"
)

type Handler struct {
	registry *registry.Registry
}

func NewHandler(reg *registry.Registry) *Handler {
	return &Handler{registry: reg}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "room service is running at port " + os.Getenv("ROOM_SERVICE_PORT"),
		Code:    200,
		Data:    map[string]int{"active_rooms": h.registry.Count()},
	}
	json.NewEncoder(w).Encode(rsp)
}

package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// weatherReport is the static sample served to the frontend.
type weatherReport struct {
	City        string `json:"city"`
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
}

var staticWeather = weatherReport{
	City:        "Berlin",
	Temperature: 12,
	Description: "Leicht bewölkt",
}

func handleWeather(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, staticWeather)
}

// handleDebugPath echoes how the request was routed.
func handleDebugPath(w http.ResponseWriter, r *http.Request) {
	template := ""
	if current := mux.CurrentRoute(r); current != nil {
		template, _ = current.GetPathTemplate()
	}
	writeText(w, http.StatusOK, fmt.Sprintf("requestURI=%s\npath=%s\nroute=%s", r.RequestURI, r.URL.Path, template))
}

func handleUp(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "OK")
}

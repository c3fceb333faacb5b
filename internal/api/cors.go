package api

import (
	"net/http"

	"github.com/gorilla/handlers"
)

func setupCorsOptions(origin string) []handlers.CORSOption {
	methods := handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions})
	headers := handlers.AllowedHeaders([]string{"Content-Type"})

	options := []handlers.CORSOption{methods, headers}
	if origin != "" {
		options = append(options, handlers.AllowedOrigins([]string{origin}), handlers.AllowCredentials())
	}

	return options
}

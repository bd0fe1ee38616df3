package middleware

import (
	"net/http"
	"strings"

	"hostel-management/pkg/utils"

	"github.com/go-chi/cors"
)

// CORS allows the configured origins. Origins may be separated by commas or spaces.
func CORS(cfg utils.CORSConfig) func(http.Handler) http.Handler {
	var origins []string
	for _, entry := range cfg.AllowedOrigins {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

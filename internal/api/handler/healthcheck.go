package handler

import (
	"net/http"
	"time"
)

type healthcheckResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}

func HealthcheckHandler(version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, healthcheckResponse{
			Status:  "ok",
			Version: version,
			Time:    time.Now().UTC(),
		})
	})
}

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bluemountain/brewdesk/internal/app"
	"github.com/bluemountain/brewdesk/internal/domain"
)

// siteResponse is the fixed wire shape of the public site endpoints. The
// deployed frontend switches on these exact fields, so they stay outside
// the versioned API.
type siteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type contactRequest struct {
	BusinessName  string `json:"businessName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Message       string `json:"message"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// RegisterSite mounts the public site endpoints on the router.
func RegisterSite(r chi.Router, svc *app.EnquiryService) {
	r.Post("/api/contact", handleContact(svc))
	r.Get("/api/health", handleHealth)
}

func handleContact(svc *app.EnquiryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeSiteJSON(w, http.StatusBadRequest, siteResponse{
				Success: false,
				Message: domain.MissingFieldsText,
			})
			return
		}

		_, err := svc.Submit(r.Context(), domain.Inquiry{
			BusinessName:  req.BusinessName,
			ContactPerson: req.ContactPerson,
			Email:         req.Email,
			Message:       req.Message,
		})
		if err != nil {
			status := domain.StatusFor(err)
			code := http.StatusInternalServerError
			if status.Kind == domain.StatusValidation {
				code = http.StatusBadRequest
			}
			writeSiteJSON(w, code, siteResponse{Success: false, Message: status.Text})
			return
		}

		writeSiteJSON(w, http.StatusOK, siteResponse{
			Success: true,
			Message: domain.SuccessText,
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "Server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func writeSiteJSON(w http.ResponseWriter, code int, resp siteResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

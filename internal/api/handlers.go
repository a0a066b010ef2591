/**
 * @description
 * This file defines the HTTP handlers for the account service's API
 * endpoints. Handlers are responsible for parsing requests, calling the
 * appropriate ledger service method, and translating domain errors into
 * stable response codes.
 *
 * @dependencies
 * - Standard Go libraries for HTTP, JSON, errors.
 * - The service's internal packages for app logic and domain errors.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/quickbank/account-service/internal/app"
	"github.com/quickbank/account-service/internal/domain"
)

// AccountHandler holds the dependencies for the account endpoints.
type AccountHandler struct {
	service *app.LedgerService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *app.LedgerService) *AccountHandler {
	return &AccountHandler{service: service}
}

// SignupRequest defines the expected JSON body for opening an account.
type SignupRequest struct {
	AccountNumber     string `json:"accountNumber"`
	AccountHolderName string `json:"accountHolderName"`
	PIN               string `json:"pin"`
	PhoneNumber       string `json:"phoneNumber"`
}

// LoginRequest defines the expected JSON body for authentication.
type LoginRequest struct {
	AccountNumber string `json:"accountNumber"`
	PIN           string `json:"pin"`
}

// AccountDetailsRequest defines the expected JSON body for a detail lookup.
type AccountDetailsRequest struct {
	AccountNumber string `json:"accountNumber"`
}

// WithdrawRequest defines the expected JSON body for a withdrawal.
type WithdrawRequest struct {
	AccountNumber string `json:"accountNumber"`
	Amount        int64  `json:"amount"`
}

// Signup handles the creation of a new account.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.service.Register(r.Context(), app.RegisterInput{
		AccountNumber:     req.AccountNumber,
		AccountHolderName: req.AccountHolderName,
		PIN:               req.PIN,
		PhoneNumber:       req.PhoneNumber,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully",
		"account": summary,
	})
}

// Login handles account number and PIN authentication.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.service.Authenticate(r.Context(), req.AccountNumber, req.PIN)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"account": summary,
	})
}

// AccountDetails handles the profile lookup for an account.
func (h *AccountHandler) AccountDetails(w http.ResponseWriter, r *http.Request) {
	var req AccountDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.service.GetDetails(r.Context(), req.AccountNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Withdraw handles debiting an account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updatedBalance, err := h.service.Withdraw(r.Context(), req.AccountNumber, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updatedBalance": updatedBalance,
	})
}

// writeDomainError maps a domain error to its stable status code. Anything
// outside the taxonomy becomes a generic internal error with no detail.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAmount):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateAccount):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrAccountNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientBalance):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrContention), errors.Is(err, domain.ErrStorageUnavailable):
		writeMessage(w, http.StatusServiceUnavailable, "Service busy, please try again")
	default:
		log.Printf("Unhandled error in handler: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeJSON is a helper to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

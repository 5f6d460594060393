package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrNotFound        = 1002
	ErrUnauthorized    = 1003
	ErrForbidden       = 1004
	ErrConflict        = 1005
	ErrTooManyRequests = 1006
	ErrBadRequest      = 1007
	ErrServiceUnavail  = 1008

	// Auth errors (2000-2999)
	ErrAuthInvalidState   = 2000
	ErrAuthExchangeFailed = 2001
	ErrAuthInvalidToken   = 2002
	ErrAuthTokenExpired   = 2003
	ErrAuthEmailExists    = 2004
	ErrAuthUserNotFound   = 2005
	ErrAuthNoCredentials  = 2006

	// User errors (3000-3999)
	ErrUserNotFound      = 3000
	ErrUserExists        = 3001
	ErrUserInvalidInput  = 3002
	ErrUserInvalidUpload = 3003

	// Search errors (4000-4999)
	ErrSearchMissingCredentials = 4000
	ErrSearchSynthesisParse     = 4001
	ErrSearchUpstream           = 4002
	ErrSearchQuotaExceeded      = 4003
	ErrSearchEmptyQuery         = 4004
	ErrSearchPromptTooLarge     = 4005

	// Email errors (5000-5999)
	ErrEmailSendFailed  = 5000
	ErrEmailReadFailed  = 5001
	ErrEmailInvalidAddr = 5002

	// Enrichment errors (6000-6999)
	ErrEnrichNotFound = 6000
	ErrEnrichUpstream = 6001
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrUnauthorized:    {ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	ErrForbidden:       {ErrForbidden, http.StatusForbidden, "Forbidden"},
	ErrConflict:        {ErrConflict, http.StatusConflict, "Resource conflict"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},
	ErrServiceUnavail:  {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},

	// Auth errors
	ErrAuthInvalidState:   {ErrAuthInvalidState, http.StatusBadRequest, "Invalid or expired authorization state"},
	ErrAuthExchangeFailed: {ErrAuthExchangeFailed, http.StatusInternalServerError, "Authorization code exchange failed"},
	ErrAuthInvalidToken:   {ErrAuthInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	ErrAuthTokenExpired:   {ErrAuthTokenExpired, http.StatusUnauthorized, "Token expired"},
	ErrAuthEmailExists:    {ErrAuthEmailExists, http.StatusConflict, "Email already registered"},
	ErrAuthUserNotFound:   {ErrAuthUserNotFound, http.StatusNotFound, "No account for this email"},
	ErrAuthNoCredentials:  {ErrAuthNoCredentials, http.StatusForbidden, "No stored Google credentials for user"},

	// User errors
	ErrUserNotFound:      {ErrUserNotFound, http.StatusNotFound, "User not found"},
	ErrUserExists:        {ErrUserExists, http.StatusConflict, "User already exists"},
	ErrUserInvalidInput:  {ErrUserInvalidInput, http.StatusBadRequest, "Invalid user input"},
	ErrUserInvalidUpload: {ErrUserInvalidUpload, http.StatusBadRequest, "Unsupported upload type"},

	// Search errors
	ErrSearchMissingCredentials: {ErrSearchMissingCredentials, http.StatusInternalServerError, "Search credentials not configured"},
	ErrSearchSynthesisParse:     {ErrSearchSynthesisParse, http.StatusInternalServerError, "Query synthesis returned unparseable output"},
	ErrSearchUpstream:           {ErrSearchUpstream, http.StatusInternalServerError, "Upstream search request failed"},
	ErrSearchQuotaExceeded:      {ErrSearchQuotaExceeded, http.StatusForbidden, "Search limit reached"},
	ErrSearchEmptyQuery:         {ErrSearchEmptyQuery, http.StatusBadRequest, "Search query is required"},
	ErrSearchPromptTooLarge:     {ErrSearchPromptTooLarge, http.StatusBadRequest, "Search query exceeds prompt budget"},

	// Email errors
	ErrEmailSendFailed:  {ErrEmailSendFailed, http.StatusInternalServerError, "Failed to send email"},
	ErrEmailReadFailed:  {ErrEmailReadFailed, http.StatusInternalServerError, "Failed to read mailbox"},
	ErrEmailInvalidAddr: {ErrEmailInvalidAddr, http.StatusBadRequest, "Invalid email address"},

	// Enrichment errors
	ErrEnrichNotFound: {ErrEnrichNotFound, http.StatusNotFound, "No contact email found"},
	ErrEnrichUpstream: {ErrEnrichUpstream, http.StatusInternalServerError, "Enrichment provider request failed"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsSuccess checks if the code represents success
func IsSuccess(code int) bool {
	return code == Success
}

// IsClientError checks if the code represents a client error (4xx)
func IsClientError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}

// IsServerError checks if the code represents a server error (5xx)
func IsServerError(code int) bool {
	return GetHTTPStatus(code) >= 500
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/hackfest/exports"
	"github.com/Dosada05/hackfest/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // ошибка программиста: передан не указатель
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusServiceUnavailable, message)
}

func notImplementedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusNotImplemented, message)
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var persistErr *services.PersistenceError

	switch {
	// Хранилище недоступно: регистрация не сохранена, можно повторить
	case errors.As(err, &persistErr):
		slog.ErrorContext(r.Context(), "store unavailable", slog.Any("error", err))
		serviceUnavailableResponse(w, r, "registration could not be saved, please try again")

	case errors.Is(err, services.ErrValidationFailed):
		errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrSubmissionInFlight):
		conflictResponse(w, r, err.Error())

	// Ошибки аутентификации
	case errors.Is(err, services.ErrAuthInvalidCredentials),
		errors.Is(err, services.ErrAuthenticationFailed):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrAdminNotConfigured),
		errors.Is(err, services.ErrMailDisabled):
		serviceUnavailableResponse(w, r, err.Error())

	// Экспорт
	case errors.Is(err, services.ErrExportNotEnabled):
		notImplementedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrUnknownExport),
		errors.Is(err, exports.ErrUnknownView),
		errors.Is(err, exports.ErrUnknownFormat):
		badRequestResponse(w, r, err)

	default:
		serverErrorResponse(w, r, err)
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/forgo/skirmish/api/internal/middleware"
	"github.com/forgo/skirmish/api/internal/model"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// DataResponse is the fixed envelope for every successful response
type DataResponse struct {
	Data interface{} `json:"data"`
}

// OKResponse acknowledges a mutation that has no document to return
type OKResponse struct {
	OK bool `json:"ok"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, DataResponse{Data: data})
}

// WriteOK writes {"data":{"ok":true}}
func WriteOK(w http.ResponseWriter) {
	WriteData(w, http.StatusOK, OKResponse{OK: true})
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// WriteServiceError maps err to a problem document. Unexpected errors are
// logged with the request id and answered with a generic detail.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	pd := MapServiceErrorWithContext(err, operation)
	if pd.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("operation", operation),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.Any("error", err),
		)
	}
	pd.Instance = r.URL.Path
	WriteError(w, pd)
}

// Request is implemented by every request body type
type Request interface {
	Validate() []model.FieldError
}

// errTrailingData is returned when the body holds more than one JSON value
var errTrailingData = errors.New("body must only contain a single JSON object")

// DecodeAndValidate decodes a single JSON object from the request body into
// req and checks its rules. Unknown keys and malformed JSON stop at a 400
// naming the problem. A value of the wrong JSON type is reported together
// with every rule violated by the fields that did decode.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, req Request) *model.ProblemDetails {
	err := decodeBody(w, r, req)

	var typeError *json.UnmarshalTypeError
	if err != nil && !(errors.As(err, &typeError) && typeError.Field != "") {
		return decodeProblem(err)
	}

	var fieldErrors []model.FieldError
	if typeError != nil {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   typeError.Field,
			Message: "must be of type " + jsonTypeName(typeError.Type.Kind().String()),
		})
	}
	for _, fe := range req.Validate() {
		// the mistyped field was left at its zero value
		if typeError != nil && fieldPathIndexes.ReplaceAllString(fe.Field, "") == typeError.Field {
			continue
		}
		fieldErrors = append(fieldErrors, fe)
	}

	if len(fieldErrors) > 0 {
		return model.NewValidationError(fieldErrors)
	}
	return nil
}

// fieldPathIndexes strips "[n]" so "socialLinks[1].url" compares equal to
// the decoder's "socialLinks.url"
var fieldPathIndexes = regexp.MustCompile(`\[\d+\]`)

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	// a type mismatch still decodes every other field
	if err := dec.Decode(v); err != nil {
		var typeError *json.UnmarshalTypeError
		if !errors.As(err, &typeError) {
			return err
		}
		if trailing := dec.Decode(&struct{}{}); !errors.Is(trailing, io.EOF) {
			return errTrailingData
		}
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func decodeProblem(err error) *model.ProblemDetails {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError

	switch {
	case errors.Is(err, errTrailingData):
		return model.NewBadRequestError(errTrailingData.Error())
	case errors.As(err, &syntaxError):
		return model.NewBadRequestError(fmt.Sprintf("body contains malformed JSON (at character %d)", syntaxError.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		return model.NewBadRequestError("body contains malformed JSON")
	case errors.As(err, &typeError):
		return model.NewBadRequestError(fmt.Sprintf("body contains an incorrect JSON type (at character %d)", typeError.Offset))
	case errors.Is(err, io.EOF):
		return model.NewBadRequestError("body must not be empty")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return model.NewBadRequestFieldError(field, "is not a recognized field")
	case errors.As(err, &maxBytesError):
		return model.NewBadRequestError(fmt.Sprintf("body must not be larger than %d bytes", maxBytesError.Limit))
	default:
		return model.NewBadRequestError("invalid request body")
	}
}

func jsonTypeName(kind string) string {
	switch kind {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "slice", "array":
		return "array"
	case "struct", "map":
		return "object"
	case "ptr":
		return "value"
	default:
		return "number"
	}
}

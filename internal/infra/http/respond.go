package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Spok95/furniture-db/internal/dberr"
	"github.com/Spok95/furniture-db/internal/export"
	"github.com/Spok95/furniture-db/internal/infra/logger"
)

type errorBody struct {
	Error  string   `json:"error"`
	Code   string   `json:"code"`
	Fields []string `json:"fields,omitempty"`
}

var validate = newValidator()

// newValidator называет поля в ошибках по json-тегам.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func statusOf(err error) int {
	if errors.Is(err, export.ErrEmpty) {
		return http.StatusNotFound
	}
	switch dberr.KindOf(err) {
	case dberr.KindConstraint:
		return http.StatusConflict
	case dberr.KindMalformed:
		return http.StatusBadRequest
	case dberr.KindConnection:
		return http.StatusServiceUnavailable
	case dberr.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func codeOf(err error) string {
	if errors.Is(err, export.ErrEmpty) {
		return string(dberr.KindNotFound)
	}
	return string(dberr.KindOf(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) requestLog(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context(), s.log)
}

// writeError отвечает {"error","code"}; 5xx дополнительно пишутся в лог.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.requestLog(r).Error("request failed", "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Code: codeOf(err)})
}

func (s *Server) badRequest(w http.ResponseWriter, msg string, fields ...string) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Error:  msg,
		Code:   string(dberr.KindMalformed),
		Fields: fields,
	})
}

// decodeBody читает JSON в dst и проверяет validate-теги.
// При ошибке ответ уже отправлен и возвращается false.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.badRequest(w, "invalid json: "+err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			s.badRequest(w, "validation failed", fields...)
			return false
		}
		s.badRequest(w, err.Error())
		return false
	}
	return true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.badRequest(w, "invalid id "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

// queryInt: целое из query; пустое значение даёт def.
func (s *Server) queryInt(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.badRequest(w, "invalid "+key+" "+strconv.Quote(raw))
		return 0, false
	}
	return n, true
}

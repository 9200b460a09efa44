package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidBody envuelve fallos de decode/validación del cuerpo.
var ErrInvalidBody = errors.New("invalid body")

const maxBodyBytes = 1 << 20

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator devuelve la instancia compartida (con reglas propias registradas).
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return IsHHMM(fl.Field().String())
		})
		_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
			return IsDate(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// WriteJSON escribe v con el status indicado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteError responde {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// Decode lee el body JSON en dst y valida los tags `validate`.
// dst puede ser un struct o un slice de structs.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidBody)
		}
		return fmt.Errorf("%w: invalid json", ErrInvalidBody)
	}
	if err := Validate(dst); err != nil {
		return err
	}
	return nil
}

// Validate aplica las reglas de validator sobre dst.
func Validate(dst any) error {
	rv := reflect.Indirect(reflect.ValueOf(dst))
	if rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			if err := Validate(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("%w (item %d)", err, i)
			}
		}
		return nil
	}

	err := Validator().Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidBody, describe(verrs[0]))
	}
	return fmt.Errorf("%w: %v", ErrInvalidBody, err)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	if field == "" {
		field = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "hhmm":
		return field + " must be HH:MM"
	case "ymd":
		return field + " must be YYYY-MM-DD"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "uuid", "uuid4":
		return field + " must be a uuid"
	default:
		return field + " is invalid (" + fe.Tag() + ")"
	}
}

const DateLayout = "2006-01-02"

// IsHHMM indica si s es una hora HH:MM de 24h con ceros a la izquierda.
func IsHHMM(s string) bool {
	return hhmmPattern.MatchString(s)
}

// IsDate indica si s es una fecha YYYY-MM-DD válida.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

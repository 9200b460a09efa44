package notifications

import (
	"sort"
	"strings"

	"pet-care-log/internal/platform/httpjson"
)

type Type string

const (
	TypeWalk    Type = "walk"
	TypeMeal    Type = "meal"
	TypeHealth  Type = "health"
	TypeGeneral Type = "general"
)

func (t Type) Valid() bool {
	switch t {
	case TypeWalk, TypeMeal, TypeHealth, TypeGeneral:
		return true
	default:
		return false
	}
}

// Setting: preferencia de recordatorio de un usuario para una categoría.
// Times es un conjunto de "HH:MM" (24h, con ceros) ordenado y sin duplicados.
type Setting struct {
	ID      string
	UserID  string
	Type    Type
	Enabled bool
	Times   []string
}

// HasTime indica si el setting dispara en el minuto hhmm.
func (s Setting) HasTime(hhmm string) bool {
	for _, t := range s.Times {
		if t == hhmm {
			return true
		}
	}
	return false
}

// NormalizeTimes valida cada valor y devuelve el conjunto ordenado.
func NormalizeTimes(in []string) ([]string, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		t := strings.TrimSpace(raw)
		if !httpjson.IsHHMM(t) {
			return nil, ErrInvalidTime
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-care-log/internal/adapters/storage/sqlstore"
	"pet-care-log/internal/middleware"
	"pet-care-log/internal/router"
)

type eventJSON struct {
	ID         string  `json:"id"`
	PetID      string  `json:"pet_id"`
	Type       string  `json:"type"`
	Date       string  `json:"date"`
	Note       string  `json:"note"`
	Completed  bool    `json:"completed"`
	Recurrence string  `json:"recurrence"`
	GroupID    *string `json:"group_id"`
}

func backends(t *testing.T) map[string]func() router.Repos {
	return map[string]func() router.Repos{
		"memory": router.MemoryRepos,
		"sqlite": func() router.Repos {
			s, err := sqlstore.Open(context.Background(), sqlstore.DialectSQLite, ":memory:")
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return router.SQLRepos(s)
		},
	}
}

func TestHTTP_EndToEnd_MembershipAndSeries(t *testing.T) {
	for name, repos := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(router.NewRouter(router.Options{Repos: repos()}))
			defer ts.Close()

			ownerID := "owner-1"
			memberID := "member-1"
			strangerID := "stranger-1"

			// 1) Owner crea mascota
			petID := createPet(t, ts.URL, ownerID, map[string]any{
				"name":       "Milo",
				"species":    "dog",
				"sex":        "male",
				"birth_date": "2021-04-02",
			})

			// 2) Un extraño no ve la mascota (404, no 403)
			if st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, strangerID, nil); st != http.StatusNotFound {
				t.Fatalf("expected 404 for stranger, got %d", st)
			}

			// 3) Owner agrega miembro
			if st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/members", ownerID, map[string]any{"user_id": memberID}); st != http.StatusCreated {
				t.Fatalf("expected 201 add member, got %d body=%s", st, body)
			}

			// 4) Miembro ve y edita el perfil
			if st, body := doReq(t, ts.URL, "PATCH", "/pets/"+petID, memberID, map[string]any{"name": "Milo II", "birth_date": nil}); st != http.StatusOK {
				t.Fatalf("expected 200 patch by member, got %d body=%s", st, body)
			} else {
				var out map[string]any
				_ = json.Unmarshal(body, &out)
				if out["name"] != "Milo II" {
					t.Fatalf("expected name updated, got %v", out["name"])
				}
				if _, has := out["birth_date"]; has {
					t.Fatalf("expected birth_date cleared, got %v", out["birth_date"])
				}
			}

			// 5) Miembro crea una serie trimestral
			series := createEvents(t, ts.URL, memberID, map[string]any{
				"pet_id":     petID,
				"type":       "vaccine",
				"date":       "2024-01-31",
				"note":       "rabia",
				"recurrence": "3m",
			})
			if len(series) != 4 {
				t.Fatalf("expected 4 events, got %d", len(series))
			}
			wantDates := []string{"2024-01-31", "2024-04-30", "2024-07-31", "2024-10-31"}
			for i, e := range series {
				if e.Date != wantDates[i] {
					t.Fatalf("event %d: expected date %s, got %s", i, wantDates[i], e.Date)
				}
				if e.GroupID == nil || *e.GroupID != *series[0].GroupID {
					t.Fatalf("event %d: expected shared group_id", i)
				}
			}
			groupID := *series[0].GroupID

			// 6) Extraño: listar 403, ver por id 404, editar grupo 404
			if st, _ := doReq(t, ts.URL, "GET", "/health-events/"+petID, strangerID, nil); st != http.StatusForbidden {
				t.Fatalf("expected 403 list by stranger, got %d", st)
			}
			if st, _ := doReq(t, ts.URL, "GET", "/health-events/id/"+series[1].ID, strangerID, nil); st != http.StatusNotFound {
				t.Fatalf("expected 404 get by stranger, got %d", st)
			}
			if st, _ := doReq(t, ts.URL, "PUT", "/health-events/group/"+groupID, strangerID, map[string]any{"completed": true}); st != http.StatusNotFound {
				t.Fatalf("expected 404 group update by stranger, got %d", st)
			}

			// 7) Editar grupo sin cambiar recurrence: fechas intactas
			{
				st, body := doReq(t, ts.URL, "PUT", "/health-events/group/"+groupID, ownerID, map[string]any{
					"note":       "rabia + refuerzo",
					"completed":  true,
					"recurrence": "3m",
				})
				if st != http.StatusOK {
					t.Fatalf("expected 200 group update, got %d body=%s", st, body)
				}
				var got []eventJSON
				_ = json.Unmarshal(body, &got)
				if len(got) != 4 {
					t.Fatalf("expected 4 events after group update, got %d", len(got))
				}
				for i, e := range got {
					if e.Date != wantDates[i] || e.Note != "rabia + refuerzo" || !e.Completed {
						t.Fatalf("unexpected event after blanket update: %+v", e)
					}
				}
			}

			// 8) Cambiar recurrence: serie regenerada desde la fecha ancla, mismo group_id
			{
				st, body := doReq(t, ts.URL, "PUT", "/health-events/group/"+groupID, ownerID, map[string]any{"recurrence": "1y"})
				if st != http.StatusOK {
					t.Fatalf("expected 200 regenerate, got %d body=%s", st, body)
				}
				var got []eventJSON
				_ = json.Unmarshal(body, &got)
				yearly := []string{"2024-01-31", "2025-01-31", "2026-01-31", "2027-01-31"}
				if len(got) != 4 {
					t.Fatalf("expected 4 regenerated events, got %d", len(got))
				}
				for i, e := range got {
					if e.Date != yearly[i] || e.Recurrence != "1y" || e.GroupID == nil || *e.GroupID != groupID {
						t.Fatalf("unexpected regenerated event %d: %+v", i, e)
					}
				}
				series = got
			}

			// 9) Evento suelto y filtro por tipo
			solo := createEvents(t, ts.URL, ownerID, map[string]any{
				"pet_id": petID,
				"type":   "vet_visit",
				"date":   "2024-03-10",
			})
			if len(solo) != 1 || solo[0].GroupID != nil {
				t.Fatalf("expected single loose event, got %+v", solo)
			}
			{
				st, body := doReq(t, ts.URL, "GET", "/health-events/"+petID+"?types=vet_visit", memberID, nil)
				if st != http.StatusOK {
					t.Fatalf("expected 200 list, got %d body=%s", st, body)
				}
				var got []eventJSON
				_ = json.Unmarshal(body, &got)
				if len(got) != 1 || got[0].ID != solo[0].ID {
					t.Fatalf("expected only the vet visit, got %+v", got)
				}
			}

			// 10) Borrar un miembro de la serie borra los 4; el suelto borra 1
			assertDeleted(t, ts.URL, ownerID, series[2].ID, 4)
			assertDeleted(t, ts.URL, ownerID, solo[0].ID, 1)

			{
				st, body := doReq(t, ts.URL, "GET", "/health-events/"+petID, ownerID, nil)
				if st != http.StatusOK || string(bytes.TrimSpace(body)) != "[]" {
					t.Fatalf("expected empty list, got %d body=%s", st, body)
				}
			}

			// 11) Owner no puede ser removido; miembro puede salir solo
			if st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID+"/members/"+ownerID, ownerID, nil); st != http.StatusBadRequest {
				t.Fatalf("expected 400 removing owner, got %d", st)
			}
			if st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID+"/members/"+memberID, memberID, nil); st != http.StatusNoContent {
				t.Fatalf("expected 204 self-removal, got %d", st)
			}
			if st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, memberID, nil); st != http.StatusNotFound {
				t.Fatalf("expected 404 after leaving, got %d", st)
			}
		})
	}
}

func TestHTTP_NotificationSettingsAndProfile(t *testing.T) {
	for name, repos := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(router.NewRouter(router.Options{Repos: repos()}))
			defer ts.Close()

			userID := "user-1"

			if st, _ := doReq(t, ts.URL, "GET", "/me", userID, nil); st != http.StatusNotFound {
				t.Fatalf("expected 404 before profile saved, got %d", st)
			}
			if st, body := doReq(t, ts.URL, "PUT", "/me", userID, map[string]any{"email": "Ana@Example.com", "name": "Ana"}); st != http.StatusOK {
				t.Fatalf("expected 200 saving profile, got %d body=%s", st, body)
			}
			if st, _ := doReq(t, ts.URL, "PUT", "/me", userID, map[string]any{"email": "nope"}); st != http.StatusBadRequest {
				t.Fatalf("expected 400 invalid email, got %d", st)
			}

			st, body := doReq(t, ts.URL, "POST", "/notification-settings", userID, []map[string]any{
				{"type": "meal", "enabled": true, "times": []string{"19:00", "12:00", "12:00"}},
				{"type": "walk", "enabled": false, "times": []string{"08:00"}},
			})
			if st != http.StatusOK {
				t.Fatalf("expected 200 replace settings, got %d body=%s", st, body)
			}

			st, body = doReq(t, ts.URL, "GET", "/notification-settings", userID, nil)
			if st != http.StatusOK {
				t.Fatalf("expected 200 list settings, got %d body=%s", st, body)
			}
			var got []struct {
				Type    string   `json:"type"`
				Enabled bool     `json:"enabled"`
				Times   []string `json:"times"`
			}
			_ = json.Unmarshal(body, &got)
			if len(got) != 2 {
				t.Fatalf("expected 2 settings, got %d", len(got))
			}
			for _, s := range got {
				if s.Type == "meal" && (len(s.Times) != 2 || s.Times[0] != "12:00") {
					t.Fatalf("expected normalized meal times, got %v", s.Times)
				}
			}

			if st, _ := doReq(t, ts.URL, "POST", "/notification-settings", userID, []map[string]any{
				{"type": "meal", "enabled": true, "times": []string{"7:00"}},
			}); st != http.StatusBadRequest {
				t.Fatalf("expected 400 invalid time, got %d", st)
			}

			// null no borra nada
			if st, _ := doReq(t, ts.URL, "POST", "/notification-settings", userID, json.RawMessage("null")); st != http.StatusBadRequest {
				t.Fatalf("expected 400 on null body, got %d", st)
			}
			_, body = doReq(t, ts.URL, "GET", "/notification-settings", userID, nil)
			_ = json.Unmarshal(body, &got)
			if len(got) != 2 {
				t.Fatalf("expected settings kept after null body, got %s", body)
			}

			// Reemplazo total: lista vacía borra todo
			if st, _ := doReq(t, ts.URL, "POST", "/notification-settings", userID, []map[string]any{}); st != http.StatusOK {
				t.Fatalf("expected 200 empty replace, got %d", st)
			}
			_, body = doReq(t, ts.URL, "GET", "/notification-settings", userID, nil)
			if string(bytes.TrimSpace(body)) != "[]" {
				t.Fatalf("expected no settings, got %s", body)
			}
		})
	}
}

func TestHTTP_RequiresIdentity(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/pets", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 on /health, got %d", st)
	}
}

func TestHTTP_InvalidRecurrenceIsRejected(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "u1", map[string]any{"name": "Kira"})
	st, body := doReq(t, ts.URL, "POST", "/health-events", "u1", map[string]any{
		"pet_id":     petID,
		"type":       "deworming",
		"date":       "2024-02-10",
		"recurrence": "2w",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid recurrence, got %d body=%s", st, body)
	}

	_, body = doReq(t, ts.URL, "GET", "/health-events/"+petID, "u1", nil)
	if string(bytes.TrimSpace(body)) != "[]" {
		t.Fatalf("expected nothing created, got %s", body)
	}
}

func TestHTTP_RateLimit(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{RateLimiter: middleware.NewRateLimiter(1, 2)}))
	defer ts.Close()

	codes := []int{}
	for i := 0; i < 3; i++ {
		st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
		codes = append(codes, st)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request limited, got %v", codes)
	}
}

// -------------------------
// Helpers
// -------------------------

func createPet(t *testing.T, baseURL, userID string, body map[string]any) string {
	t.Helper()

	st, respBody := doReq(t, baseURL, "POST", "/pets", userID, body)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(respBody))
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil || out.ID == "" {
		t.Fatalf("invalid create pet response: %s", string(respBody))
	}
	return out.ID
}

func createEvents(t *testing.T, baseURL, userID string, body map[string]any) []eventJSON {
	t.Helper()

	st, respBody := doReq(t, baseURL, "POST", "/health-events", userID, body)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create event, got %d body=%s", st, string(respBody))
	}
	var out []eventJSON
	if err := json.Unmarshal(respBody, &out); err != nil {
		t.Fatalf("invalid create event response: %s", string(respBody))
	}
	return out
}

func assertDeleted(t *testing.T, baseURL, userID, eventID string, want int) {
	t.Helper()

	st, body := doReq(t, baseURL, "DELETE", "/health-events/"+eventID, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 delete, got %d body=%s", st, string(body))
	}
	var out struct {
		Deleted int `json:"deleted"`
	}
	_ = json.Unmarshal(body, &out)
	if out.Deleted != want {
		t.Fatalf("expected %d deleted, got %d", want, out.Deleted)
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set(middleware.DebugUserHeader, debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

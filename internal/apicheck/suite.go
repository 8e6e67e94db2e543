package apicheck

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Options configures a Suite run.
type Options struct {
	BaseURL     string
	Username    string
	Password    string
	Timeout     time.Duration
	Retries     int
	Destructive bool
}

// Suite runs the fixed end-to-end check sequence against a live backend:
// health, login, public list, authenticated list, admin-protection probe,
// and an optional destructive CRUD cycle.
type Suite struct {
	opts   Options
	client *Client
	report *Report

	createdVehicleID string
}

func NewSuite(opts Options) *Suite {
	return &Suite{
		opts:   opts,
		client: NewClient(opts.BaseURL, opts.Timeout, opts.Retries),
		report: &Report{BaseURL: opts.BaseURL, Destructive: opts.Destructive},
	}
}

// Report returns the accumulated results.
func (s *Suite) Report() *Report {
	return s.report
}

func (s *Suite) log(test string, ok bool, msg string, extra interface{}) bool {
	if ok {
		log.Info().Str("test", test).Msg(msg)
	} else {
		log.Error().Str("test", test).Msg(msg)
	}
	return s.report.Add(test, ok, msg, extra)
}

// Run executes every check in order and reports overall success. A failed
// health probe or login does not abort the run; later steps that need the
// token fail on their own.
func (s *Suite) Run() bool {
	steps := []func() bool{
		s.checkHealth,
		s.checkLogin,
		s.checkPublicVehicles,
		s.checkAdminVehicles,
		s.checkAdminProtection,
		s.checkVehicleCRUD,
	}
	for _, step := range steps {
		step()
	}
	return s.report.AllPassed()
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (s *Suite) checkHealth() bool {
	status, _, err := s.client.Get("/health")
	if err != nil {
		return s.log("Health", false, fmt.Sprintf("request failed: %v", err), nil)
	}
	if status != http.StatusOK {
		return s.log("Health", false, fmt.Sprintf("unexpected status %d", status), nil)
	}
	return s.log("Health", true, "health endpoint responded 200", nil)
}

func (s *Suite) checkLogin() bool {
	status, body, err := s.client.Post("/auth/login", map[string]string{
		"username": s.opts.Username,
		"password": s.opts.Password,
	})
	if err != nil {
		return s.log("Admin Login", false, fmt.Sprintf("request failed: %v", err), nil)
	}
	if status != http.StatusOK {
		return s.log("Admin Login", false, fmt.Sprintf("HTTP %d: %s", status, truncate(body, 300)), nil)
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		Token       string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return s.log("Admin Login", false, "response is not valid JSON", nil)
	}
	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	if token == "" {
		return s.log("Admin Login", false, "no access_token in response", nil)
	}

	s.client.SetToken(token)
	return s.log("Admin Login", true, "authenticated as admin", nil)
}

func (s *Suite) checkPublicVehicles() bool {
	// Public reads must work without a token regardless of login state.
	public := NewClient(s.opts.BaseURL, s.opts.Timeout, s.opts.Retries)
	status, body, err := public.Get("/vehicles")
	if err != nil {
		return s.log("Vehicles (Public)", false, fmt.Sprintf("request failed: %v", err), nil)
	}
	if status != http.StatusOK {
		return s.log("Vehicles (Public)", false, fmt.Sprintf("HTTP %d: %s", status, truncate(body, 300)), nil)
	}

	count, ok := decodeList(body)
	if !ok {
		return s.log("Vehicles (Public)", false, "response lacks success envelope with data array", nil)
	}
	return s.log("Vehicles (Public)", true, fmt.Sprintf("retrieved %d vehicles", count), map[string]int{"count": count})
}

func (s *Suite) checkAdminVehicles() bool {
	status, body, err := s.client.Get("/admin/vehicles")
	if err != nil {
		return s.log("Vehicles (Admin GET)", false, fmt.Sprintf("request failed: %v", err), nil)
	}
	if status != http.StatusOK {
		return s.log("Vehicles (Admin GET)", false, fmt.Sprintf("HTTP %d: %s", status, truncate(body, 300)), nil)
	}
	if _, ok := decodeList(body); !ok {
		return s.log("Vehicles (Admin GET)", false, "response lacks success envelope with data array", nil)
	}
	return s.log("Vehicles (Admin GET)", true, "admin vehicles list fetched", nil)
}

func (s *Suite) checkAdminProtection() bool {
	// Fresh client, no token: the admin route must refuse it.
	anon := NewClient(s.opts.BaseURL, s.opts.Timeout, 0)
	status, _, err := anon.Get("/admin/vehicles")
	if err != nil {
		return s.log("Admin Protection", false, fmt.Sprintf("request failed: %v", err), nil)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return s.log("Admin Protection", true, fmt.Sprintf("blocked with %d", status), nil)
	}
	return s.log("Admin Protection", false, fmt.Sprintf("unexpected status %d", status), nil)
}

func (s *Suite) checkVehicleCRUD() bool {
	if !s.opts.Destructive {
		return s.log("Vehicles (Admin CRUD)", true, "skipped (destructive tests disabled)", nil)
	}

	if !s.createVehicle() {
		return false
	}
	if !s.checkListOrder() {
		return false
	}
	if !s.updateVehicle() {
		return false
	}
	if !s.deleteVehicle() {
		return false
	}
	return s.deleteVehicleAgain()
}

func (s *Suite) createVehicle() bool {
	payload := map[string]interface{}{
		"vehicleType":    "sedan_dzire",
		"name":           "CI Test Sedan Vehicle",
		"model":          "CI Model",
		"capacity":       "4 Passengers",
		"price":          12.0,
		"priceUnit":      "per km",
		"features":       []string{"AC", "GPS"},
		"specifications": map[string]string{"fuelType": "petrol", "transmission": "manual"},
		"image":          "https://example.com/img.jpg",
		"badge":          "CI",
		"badgeColor":     "bg-blue-500",
		"isActive":       true,
		"isPopular":      false,
		"sortOrder":      999,
		"description":    "Created by CI tests",
	}
	status, body, err := s.client.Post("/admin/vehicles", payload)
	if err != nil {
		return s.log("Vehicles (Create)", false, fmt.Sprintf("request failed: %v", err), nil)
	}
	if status != http.StatusOK {
		return s.log("Vehicles (Create)", false, fmt.Sprintf("HTTP %d: %s", status, truncate(body, 300)), nil)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Status != "success" {
		return s.log("Vehicles (Create)", false, "response lacks success envelope", nil)
	}
	var created struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == "" {
		return s.log("Vehicles (Create)", false, "no id in response", string(body))
	}
	if created.Name != "CI Test Sedan Vehicle" || created.Price != 12.0 {
		return s.log("Vehicles (Create)", false, "created vehicle does not echo the input", created)
	}

	s.createdVehicleID = created.ID
	return s.log("Vehicles (Create)", true, "created vehicle id="+created.ID, nil)
}

// checkListOrder creates a second vehicle and verifies the admin list comes
// back newest-first: the later creation must precede the earlier one, and
// creation timestamps must never increase down the list.
func (s *Suite) checkListOrder() bool {
	status, body, err := s.client.Post("/admin/vehicles", map[string]interface{}{
		"name":  "CI Test Sedan Vehicle B",
		"price": 9.0,
	})
	if err != nil {
		return s.log("Vehicles (List Order)", false, fmt.Sprintf("second create failed: %v", err), nil)
	}
	var env envelope
	if status != http.StatusOK || json.Unmarshal(body, &env) != nil || env.Status != "success" {
		return s.log("Vehicles (List Order)", false, fmt.Sprintf("second create status=%d", status), nil)
	}
	var second struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &second); err != nil || second.ID == "" {
		return s.log("Vehicles (List Order)", false, "second create: no id in response", nil)
	}

	status, body, err = s.client.Get("/admin/vehicles")
	if err != nil || status != http.StatusOK {
		return s.log("Vehicles (List Order)", false, fmt.Sprintf("list failed: status=%d err=%v", status, err), nil)
	}
	var listEnv struct {
		Status string `json:"status"`
		Data   []struct {
			ID        string    `json:"id"`
			CreatedAt time.Time `json:"createdAt"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &listEnv); err != nil || listEnv.Status != "success" {
		return s.log("Vehicles (List Order)", false, "list lacks success envelope", nil)
	}

	firstIdx, secondIdx := -1, -1
	for i, item := range listEnv.Data {
		if item.ID == s.createdVehicleID {
			firstIdx = i
		}
		if item.ID == second.ID {
			secondIdx = i
		}
		if i > 0 && item.CreatedAt.After(listEnv.Data[i-1].CreatedAt) {
			return s.log("Vehicles (List Order)", false,
				fmt.Sprintf("createdAt increases at position %d", i), nil)
		}
	}
	if firstIdx == -1 || secondIdx == -1 {
		return s.log("Vehicles (List Order)", false, "created vehicles missing from list", nil)
	}
	if secondIdx >= firstIdx {
		return s.log("Vehicles (List Order)", false,
			fmt.Sprintf("newer vehicle listed at %d, older at %d", secondIdx, firstIdx), nil)
	}

	status, _, err = s.client.Delete("/admin/vehicles/" + second.ID)
	if err != nil || status != http.StatusOK {
		return s.log("Vehicles (List Order)", false, fmt.Sprintf("cleanup delete status=%d err=%v", status, err), nil)
	}
	return s.log("Vehicles (List Order)", true, "list is newest-first", nil)
}

func (s *Suite) updateVehicle() bool {
	status, body, err := s.client.Put("/admin/vehicles/"+s.createdVehicleID, map[string]interface{}{
		"price": 18.0,
		"name":  "CI Updated",
	})
	if err != nil {
		return s.log("Vehicles (Update)", false, fmt.Sprintf("request failed: %v", err), nil)
	}
	var env envelope
	if status != http.StatusOK || json.Unmarshal(body, &env) != nil || env.Status != "success" {
		return s.log("Vehicles (Update)", false, fmt.Sprintf("update status=%d", status), nil)
	}

	// Partial update must stick and leave untouched fields intact.
	status, body, err = s.client.Get("/admin/vehicles/" + s.createdVehicleID)
	if err != nil || status != http.StatusOK {
		return s.log("Vehicles (Update)", false, fmt.Sprintf("verify get failed: status=%d err=%v", status, err), nil)
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return s.log("Vehicles (Update)", false, "verify get: bad JSON", nil)
	}
	var got struct {
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		PriceUnit string  `json:"priceUnit"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		return s.log("Vehicles (Update)", false, "verify get: bad data", nil)
	}
	if got.Price != 18.0 || got.Name != "CI Updated" || got.PriceUnit != "per km" {
		return s.log("Vehicles (Update)", false, "updated vehicle has unexpected fields", got)
	}
	return s.log("Vehicles (Update)", true, "partial update verified", nil)
}

func (s *Suite) deleteVehicle() bool {
	status, body, err := s.client.Delete("/admin/vehicles/" + s.createdVehicleID)
	if err != nil {
		return s.log("Vehicles (Delete)", false, fmt.Sprintf("request failed: %v", err), nil)
	}
	var env envelope
	if status != http.StatusOK || json.Unmarshal(body, &env) != nil || env.Status != "success" {
		return s.log("Vehicles (Delete)", false, fmt.Sprintf("delete status=%d", status), nil)
	}

	// The id must be gone now.
	status, _, err = s.client.Get("/admin/vehicles/" + s.createdVehicleID)
	if err != nil {
		return s.log("Vehicles (Delete)", false, fmt.Sprintf("verify get failed: %v", err), nil)
	}
	if status != http.StatusNotFound {
		return s.log("Vehicles (Delete)", false, fmt.Sprintf("deleted vehicle still answers %d", status), nil)
	}
	return s.log("Vehicles (Delete)", true, "delete verified", nil)
}

// deleteVehicleAgain repeats the delete: the first removal succeeded, so
// the same id must now answer not-found rather than success.
func (s *Suite) deleteVehicleAgain() bool {
	status, _, err := s.client.Delete("/admin/vehicles/" + s.createdVehicleID)
	if err != nil {
		return s.log("Vehicles (Delete Again)", false, fmt.Sprintf("request failed: %v", err), nil)
	}
	if status != http.StatusNotFound {
		return s.log("Vehicles (Delete Again)", false, fmt.Sprintf("second delete returned %d, want 404", status), nil)
	}
	return s.log("Vehicles (Delete Again)", true, "second delete reported not found", nil)
}

func decodeList(body []byte) (int, bool) {
	var env struct {
		Status string            `json:"status"`
		Data   []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Status != "success" || env.Data == nil {
		return 0, false
	}
	return len(env.Data), true
}

func truncate(b []byte, n int) string {
	s := string(b)
	if len(s) > n {
		return s[:n]
	}
	return s
}

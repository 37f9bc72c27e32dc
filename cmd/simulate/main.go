// simulate fires concurrent booking requests at a running api-server and
// reports how many same-slot attempts were rejected with a conflict. It is a
// smoke test for the double-booking guard, not a benchmark.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type simConfig struct {
	baseURL string
	workers int
	rounds  int
	timeout time.Duration
}

type metrics struct {
	total     int64
	created   int64
	conflicts int64
	errors    int64

	mu        sync.Mutex
	latencies []time.Duration
}

func (m *metrics) record(latency time.Duration, status int) {
	atomic.AddInt64(&m.total, 1)
	switch {
	case status == http.StatusCreated:
		atomic.AddInt64(&m.created, 1)
	case status == http.StatusConflict:
		atomic.AddInt64(&m.conflicts, 1)
	default:
		atomic.AddInt64(&m.errors, 1)
	}

	m.mu.Lock()
	m.latencies = append(m.latencies, latency)
	m.mu.Unlock()
}

func (m *metrics) percentile(p int) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.latencies) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

type entityResponse struct {
	ID uuid.UUID `json:"id"`
}

func main() {
	cfg := simConfig{}
	flag.StringVar(&cfg.baseURL, "base-url", "http://localhost:8080", "api-server base URL")
	flag.IntVar(&cfg.workers, "workers", 10, "concurrent workers per contested slot")
	flag.IntVar(&cfg.rounds, "rounds", 20, "number of contested slots to fight over")
	flag.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	client := &http.Client{Timeout: cfg.timeout}

	log.Printf("simulate starting against %s (%d workers x %d rounds)", cfg.baseURL, cfg.workers, cfg.rounds)

	customerID, err := createCustomer(client, cfg.baseURL)
	if err != nil {
		log.Fatalf("create customer: %v", err)
	}
	staffID, err := createStaff(client, cfg.baseURL)
	if err != nil {
		log.Fatalf("create staff: %v", err)
	}
	serviceID, err := createService(client, cfg.baseURL)
	if err != nil {
		log.Fatalf("create service: %v", err)
	}

	m := &metrics{}
	start := time.Now()

	for round := 0; round < cfg.rounds; round++ {
		date := time.Now().UTC().AddDate(0, 0, 1+round%30).Format("2006-01-02")
		clock := fmt.Sprintf("%02d:00", 9+round%9)

		var wg sync.WaitGroup
		for w := 0; w < cfg.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				bookSlot(client, cfg.baseURL, m, customerID, staffID, serviceID, date, clock)
			}()
		}
		wg.Wait()
	}

	elapsed := time.Since(start)

	fmt.Println()
	fmt.Println("=== simulation results ===")
	fmt.Printf("duration:   %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("requests:   %d\n", atomic.LoadInt64(&m.total))
	fmt.Printf("created:    %d\n", atomic.LoadInt64(&m.created))
	fmt.Printf("conflicts:  %d\n", atomic.LoadInt64(&m.conflicts))
	fmt.Printf("errors:     %d\n", atomic.LoadInt64(&m.errors))
	fmt.Printf("p50:        %s\n", m.percentile(50).Round(time.Millisecond))
	fmt.Printf("p95:        %s\n", m.percentile(95).Round(time.Millisecond))

	created := atomic.LoadInt64(&m.created)
	if created == int64(cfg.rounds) {
		fmt.Println("PASS: exactly one booking won each contested slot")
	} else {
		fmt.Printf("FAIL: expected %d winners, got %d\n", cfg.rounds, created)
	}
}

func bookSlot(client *http.Client, baseURL string, m *metrics, customerID, staffID, serviceID uuid.UUID, date, clock string) {
	payload := map[string]any{
		"customer_id":      customerID,
		"staff_id":         staffID,
		"service_id":       serviceID,
		"appointment_date": date,
		"appointment_time": clock,
	}

	start := time.Now()
	status, _, err := postJSON(client, baseURL+"/api/v1/appointments/", payload)
	latency := time.Since(start)
	if err != nil {
		m.record(latency, 0)
		return
	}
	m.record(latency, status)
}

func createCustomer(client *http.Client, baseURL string) (uuid.UUID, error) {
	return createEntity(client, baseURL+"/api/v1/customers/", map[string]any{
		"name":  "Sim Customer",
		"email": fmt.Sprintf("sim.customer.%d@example.com", time.Now().UnixNano()),
	})
}

func createStaff(client *http.Client, baseURL string) (uuid.UUID, error) {
	return createEntity(client, baseURL+"/api/v1/staff/", map[string]any{
		"name":  "Sim Stylist",
		"email": fmt.Sprintf("sim.staff.%d@example.com", time.Now().UnixNano()),
		"role":  "stylist",
	})
}

func createService(client *http.Client, baseURL string) (uuid.UUID, error) {
	return createEntity(client, baseURL+"/api/v1/services/", map[string]any{
		"name":     fmt.Sprintf("Sim Haircut %d", time.Now().UnixNano()),
		"duration": 30,
		"price":    "45.00",
		"category": "Hair",
	})
}

func createEntity(client *http.Client, url string, payload map[string]any) (uuid.UUID, error) {
	status, body, err := postJSON(client, url, payload)
	if err != nil {
		return uuid.Nil, err
	}
	if status != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("unexpected status %d: %s", status, body)
	}

	var resp entityResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.ID, nil
}

func postJSON(client *http.Client, url string, payload map[string]any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

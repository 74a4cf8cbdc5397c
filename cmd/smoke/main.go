// Command smoke drives a running carelens server through the note lifecycle
// and the distribution report, exiting non-zero on the first failure.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	wait := flag.Duration("wait", 2*time.Second, "time to wait for the server to start")
	flag.Parse()

	time.Sleep(*wait)
	c := &smoke{base: *baseURL, http: &http.Client{Timeout: 5 * time.Minute}}

	fmt.Println("Starting smoke test...")

	fmt.Println("1. Creating client...")
	var client struct {
		ID string `json:"id"`
	}
	c.must(http.MethodPost, "/api/clients/careclients", map[string]string{
		"first_name":    "Smoke",
		"last_name":     fmt.Sprintf("Test-%d", time.Now().Unix()),
		"date_of_birth": "1950-01-01",
		"gender":        "Other",
	}, http.StatusCreated, &client)

	fmt.Println("2. Creating notes...")
	texts := []string{
		"Client enjoyed the music session and sang along with staff.",
		"Client was tearful after a phone call and refused dinner.",
	}
	var noteID string
	for _, text := range texts {
		var note struct {
			ID        string `json:"id"`
			Sentiment string `json:"sentiment"`
		}
		c.must(http.MethodPost, "/api/clients/client-notes", map[string]string{
			"care_client": client.ID,
			"created_by":  "smoke",
			"note_text":   text,
		}, http.StatusCreated, &note)
		fmt.Printf("   note %s sentiment=%s\n", note.ID, note.Sentiment)
		noteID = note.ID
	}

	fmt.Println("3. Editing note text...")
	c.must(http.MethodPatch, "/api/clients/client-notes/"+noteID, map[string]string{
		"note_text": "Client was tearful after a phone call but ate a small dinner later.",
	}, http.StatusOK, nil)

	fmt.Println("4. Fetching distribution...")
	c.must(http.MethodGet, "/api/clients/analytics/client/"+client.ID+"/note-distribution", nil, http.StatusOK, nil)

	fmt.Println("5. Cleaning up...")
	c.must(http.MethodDelete, "/api/clients/careclients/"+client.ID, nil, http.StatusNoContent, nil)

	fmt.Println("PASSED")
}

type smoke struct {
	base string
	http *http.Client
}

// must sends the request and exits unless the expected status comes back.
// When out is non-nil the response body is decoded into it.
func (s *smoke) must(method, endpoint string, payload any, want int, out any) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			fail("encoding request", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, s.base+endpoint, body)
	if err != nil {
		fail("creating request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		fail("sending request", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		fmt.Printf("FAILED: %s %s returned %d: %s\n", method, endpoint, resp.StatusCode, respBody)
		os.Exit(1)
	}
	if len(respBody) > 0 {
		fmt.Printf("   %s\n", respBody)
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			fail("decoding response", err)
		}
	}
}

func fail(step string, err error) {
	fmt.Printf("FAILED: %s: %v\n", step, err)
	os.Exit(1)
}

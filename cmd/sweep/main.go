// Command sweep triggers one housekeeping sweep against a running server
// and prints the aggregate result.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Alok0227/rallly/internal/server/auth"
	"github.com/Alok0227/rallly/internal/server/housekeeping"
)

func main() {

	endpoint := flag.String("e", "http://localhost:8080/api/housekeeping", "housekeeping endpoint URL")
	secret := flag.String("s", "", "secret key shared with the server")
	flag.Parse()

	if *secret == "" {
		log.Fatal("secret key is required (-s)")
	}

	token, err := auth.GenerateToken(auth.ScopeHousekeeping, []byte(*secret), time.Minute)
	if err != nil {
		log.Fatalf("token error: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, *endpoint, nil)
	if err != nil {
		log.Fatalf("request error: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("sweep failed: %s", resp.Status)
	}

	var result housekeeping.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("decode error: %v", err)
	}

	fmt.Printf("softDeleted=%d deleted=%d\n", result.SoftDeleted, result.Deleted)
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const baseURL = "http://localhost:8080"

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint("GET", "/health", nil, 200)

	// 2. Create a user and walk KYC through review
	user := checkEndpoint("POST", "/users", map[string]interface{}{
		"name":  "E2E User",
		"email": fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano()),
		"bank_account": map[string]string{
			"bank_name": "HDFC Bank", "account_number": "50100012345678", "ifsc": "HDFC0000123",
		},
	}, 201)
	userID := user["id"].(string)
	checkEndpoint("POST", "/users/"+userID+"/kyc", map[string]string{"document_name": "pan.pdf"}, 200)
	checkEndpoint("POST", "/users/"+userID+"/kyc/review", map[string]string{"decision": "approve"}, 200)
	checkEndpoint("POST", "/users/"+userID+"/bank-account/review", map[string]string{"decision": "approve"}, 200)
	checkEndpoint("POST", "/users/"+userID+"/nominees", map[string]string{"name": "Asha", "relationship": "Spouse"}, 201)

	// 3. Quotes, activity and portfolio
	checkEndpoint("POST", "/quotes", map[string]string{"symbol": "INFY", "price": "1520.40", "change": "1.35"}, 201)
	checkEndpoint("POST", "/users/"+userID+"/transactions", map[string]interface{}{"type": "Deposit", "amount": "50000"}, 201)
	checkEndpoint("POST", "/users/"+userID+"/transactions", map[string]interface{}{
		"type": "Buy", "symbol": "INFY", "name": "Infosys", "quantity": 10, "price": "1500.25",
	}, 201)
	checkEndpoint("GET", "/users/"+userID+"/transactions?type=All", nil, 200)
	checkEndpoint("GET", "/users/"+userID+"/portfolio", nil, 200)
	checkEndpoint("GET", "/users/"+userID, nil, 200)

	// 4. Investments ledger
	rec := checkEndpoint("POST", "/investments", map[string]interface{}{"script": "RELIANCE", "qty": 100, "purchase_rate": "1000"}, 201)
	recID := rec["id"].(string)
	checkEndpoint("PUT", "/investments/"+recID, map[string]interface{}{"sell_rate": "1200", "sold_qty": 60}, 200)
	checkEndpoint("GET", "/investments?segment=equity&sort=growthRatio", nil, 200)
	checkEndpoint("DELETE", "/investments/"+recID, nil, 409)
	checkEndpoint("DELETE", "/investments/"+recID+"?confirm=true", nil, 200)

	// 5. Mail and reports
	checkEndpoint("POST", "/users/"+userID+"/invite", nil, 201)
	checkEndpoint("GET", "/emails", nil, 200)
	checkEndpoint("GET", "/reports/summary", nil, 200)

	// 6. Cleanup
	checkEndpoint("DELETE", "/users/"+userID, nil, 200)
	checkEndpoint("GET", "/users/"+userID, nil, 404)

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(method, path string, body interface{}, expectedStatus int) map[string]interface{} {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, baseURL+path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))

	var res map[string]interface{}
	_ = json.Unmarshal(respBody, &res)
	return res
}

// internal/handlers/status/models.go
package status

// Input carries the receipt identifier and the customer's last-4 phone
// challenge. POST supplies it as a JSON body, GET as query parameters.
type Input struct {
	ReceiptTitle string `json:"receiptTitle"`
	Last4        string `json:"last4"`
}

type Output struct {
	Success      bool   `json:"success"`
	ReceiptTitle string `json:"receiptTitle"`
	Status       string `json:"status"`
	Tracking     string `json:"tracking"`
	LastEdited   string `json:"lastEdited"`
}

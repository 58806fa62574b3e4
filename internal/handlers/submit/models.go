// internal/handlers/submit/models.go
package submit

// Input is the intake form payload. Website is the honeypot field hidden in
// the form; humans leave it empty.
type Input struct {
	CustomerName  string `json:"customerName"`
	Phone         string `json:"phone"`
	Postcode      string `json:"postcode"`
	BaseAddress   string `json:"baseAddress"`
	DetailAddress string `json:"detailAddress"`
	FullAddress   string `json:"fullAddress"`
	Request       string `json:"request"`
	Website       string `json:"website"`
}

type Output struct {
	Success      bool   `json:"success"`
	ReceiptTitle string `json:"receiptTitle"`
}

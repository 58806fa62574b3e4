package intake

import (
	"time"

	"intake-api/internal/notion"
)

// Property names of the production intake database. These must match the
// database schema exactly; renaming a column in Notion breaks the handlers.
const (
	PropReceipt       = "접수번호" // title
	PropCustomerName  = "고객명"
	PropPhone         = "연락처"
	PropPostcode      = "우편번호"
	PropBaseAddress   = "기본주소"
	PropDetailAddress = "상세주소"
	PropFullAddress   = "전체주소"
	PropRequestNote   = "요청사항"
	PropStatus        = "처리상태" // status
	PropTracking      = "송장번호"
	PropTrackingAlt   = "운송장번호"
)

// StatusReceived is the label every new record starts with. Staff move it
// forward in Notion directly.
const StatusReceived = "접수"

// Submission is one validated intake form.
type Submission struct {
	CustomerName  string
	Phone         string
	Postcode      string
	BaseAddress   string
	DetailAddress string
	FullAddress   string
	RequestNote   string
}

// Properties maps the submission to the database schema for page creation.
func (s Submission) Properties(receiptID string) map[string]notion.Property {
	return map[string]notion.Property{
		PropReceipt:       notion.NewTitle(receiptID),
		PropCustomerName:  notion.NewRichText(s.CustomerName),
		PropPhone:         notion.NewRichText(s.Phone),
		PropPostcode:      notion.NewRichText(s.Postcode),
		PropBaseAddress:   notion.NewRichText(s.BaseAddress),
		PropDetailAddress: notion.NewRichText(s.DetailAddress),
		PropFullAddress:   notion.NewRichText(s.FullAddress),
		PropRequestNote:   notion.NewRichText(s.RequestNote),
		PropStatus:        notion.NewStatus(StatusReceived),
	}
}

// StatusRecord is the caller-visible view of a stored intake record.
type StatusRecord struct {
	ReceiptTitle   string
	Status         string
	TrackingNumber string
	LastEdited     time.Time
}

// StatusFromPage extracts and normalizes the status fields from a matched
// page. Status defaults to received when the column is empty; the tracking
// number is read from both known column names, first non-empty wins.
func StatusFromPage(page notion.Page) StatusRecord {
	rec := StatusRecord{
		ReceiptTitle: page.Properties[PropReceipt].Text(),
		Status:       page.Properties[PropStatus].OptionName(),
		LastEdited:   page.LastEditedTime,
	}
	if rec.Status == "" {
		rec.Status = StatusReceived
	}

	rec.TrackingNumber = page.Properties[PropTracking].Text()
	if rec.TrackingNumber == "" {
		rec.TrackingNumber = page.Properties[PropTrackingAlt].Text()
	}

	return rec
}

// PhoneFromPage reads the stored phone number used for the last-4 challenge.
func PhoneFromPage(page notion.Page) string {
	return page.Properties[PropPhone].Text()
}

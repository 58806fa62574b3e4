// internal/intake/record_test.go
package intake

import (
	"testing"
	"time"

	"intake-api/internal/notion"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func titleProp(value string) notion.Property {
	return notion.Property{
		Type:  "title",
		Title: []notion.RichText{{PlainText: value}},
	}
}

func richTextProp(value string) notion.Property {
	return notion.Property{
		Type:     "rich_text",
		RichText: []notion.RichText{{PlainText: value}},
	}
}

func statusProp(name string) notion.Property {
	return notion.Property{
		Type:   "status",
		Status: &notion.Option{Name: name},
	}
}

func testPage(props map[string]notion.Property) notion.Page {
	return notion.Page{
		ID:             "page-1",
		LastEditedTime: time.Date(2026, 2, 26, 16, 0, 0, 0, time.UTC),
		Properties:     props,
	}
}

// ==========================
// Submission Mapping Tests
// ==========================

func TestSubmission_Properties(t *testing.T) {
	sub := Submission{
		CustomerName:  "김민수",
		Phone:         "010-1234-5678",
		Postcode:      "06236",
		BaseAddress:   "서울특별시 강남구 테헤란로 123",
		DetailAddress: "101동 202호",
		FullAddress:   "서울특별시 강남구 테헤란로 123 101동 202호",
		RequestNote:   "부재시 경비실에 맡겨주세요",
	}

	props := sub.Properties("260226-153045-김민수-5678")

	assert.Len(t, props, 9)
	assert.Equal(t, "260226-153045-김민수-5678", props[PropReceipt].Title[0].Text.Content)
	assert.Equal(t, "김민수", props[PropCustomerName].RichText[0].Text.Content)
	assert.Equal(t, "010-1234-5678", props[PropPhone].RichText[0].Text.Content)
	assert.Equal(t, "06236", props[PropPostcode].RichText[0].Text.Content)
	assert.Equal(t, StatusReceived, props[PropStatus].Status.Name)
}

// ==========================
// Status Extraction Tests
// ==========================

func TestStatusFromPage(t *testing.T) {
	tests := []struct {
		name     string
		props    map[string]notion.Property
		expected StatusRecord
	}{
		{
			name: "fully populated record",
			props: map[string]notion.Property{
				PropReceipt:  titleProp("260226-153045-김민수-5678"),
				PropStatus:   statusProp("배송중"),
				PropTracking: richTextProp("1234567890"),
			},
			expected: StatusRecord{
				ReceiptTitle:   "260226-153045-김민수-5678",
				Status:         "배송중",
				TrackingNumber: "1234567890",
			},
		},
		{
			name: "empty status falls back to received",
			props: map[string]notion.Property{
				PropReceipt: titleProp("260226-153045-김민수-5678"),
			},
			expected: StatusRecord{
				ReceiptTitle: "260226-153045-김민수-5678",
				Status:       StatusReceived,
			},
		},
		{
			name: "tracking read from alternate column",
			props: map[string]notion.Property{
				PropReceipt:     titleProp("260226-153045-김민수-5678"),
				PropStatus:      statusProp("발송완료"),
				PropTrackingAlt: richTextProp("9876543210"),
			},
			expected: StatusRecord{
				ReceiptTitle:   "260226-153045-김민수-5678",
				Status:         "발송완료",
				TrackingNumber: "9876543210",
			},
		},
		{
			name: "primary tracking column wins over alternate",
			props: map[string]notion.Property{
				PropReceipt:     titleProp("260226-153045-김민수-5678"),
				PropStatus:      statusProp("발송완료"),
				PropTracking:    richTextProp("1111"),
				PropTrackingAlt: richTextProp("2222"),
			},
			expected: StatusRecord{
				ReceiptTitle:   "260226-153045-김민수-5678",
				Status:         "발송완료",
				TrackingNumber: "1111",
			},
		},
		{
			name: "select status column still readable",
			props: map[string]notion.Property{
				PropReceipt: titleProp("260226-153045-김민수-5678"),
				PropStatus: {
					Type:   "select",
					Select: &notion.Option{Name: "처리완료"},
				},
			},
			expected: StatusRecord{
				ReceiptTitle: "260226-153045-김민수-5678",
				Status:       "처리완료",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := testPage(tt.props)
			got := StatusFromPage(page)

			assert.Equal(t, tt.expected.ReceiptTitle, got.ReceiptTitle)
			assert.Equal(t, tt.expected.Status, got.Status)
			assert.Equal(t, tt.expected.TrackingNumber, got.TrackingNumber)
			assert.Equal(t, page.LastEditedTime, got.LastEdited)
		})
	}
}

func TestPhoneFromPage(t *testing.T) {
	page := testPage(map[string]notion.Property{
		PropPhone: richTextProp("010-1234-5678"),
	})
	assert.Equal(t, "010-1234-5678", PhoneFromPage(page))

	empty := testPage(map[string]notion.Property{})
	assert.Equal(t, "", PhoneFromPage(empty))
}

package sponsorship

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"schoolsite-backend/internal/domain/sponsorship"
)

const payloadVersion = "1"

type donationPayload struct {
	Version json.RawMessage `json:"version"`
	EventID string          `json:"event_id"`
	Data    *struct {
		TransactionID string `json:"transaction_id"`
		Status        string `json:"status"`
		Amount        *struct {
			Value    json.Number `json:"value"`
			Currency string      `json:"currency"`
		} `json:"amount"`
		Frequency string `json:"frequency"`
		Donor     *struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"donor"`
		CustomFields *struct {
			ChildID string `json:"child_id"`
		} `json:"custom_fields"`
	} `json:"data"`
}

// ParseDonationEvent validates a webhook body. Nothing is assumed present.
func ParseDonationEvent(body []byte) (DonationEvent, error) {
	var p donationPayload
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return DonationEvent{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if v := strings.Trim(string(p.Version), `"`); v != payloadVersion {
		return DonationEvent{}, fmt.Errorf("%w: unsupported version %q", ErrInvalidPayload, v)
	}
	d := p.Data
	if d == nil {
		return DonationEvent{}, fmt.Errorf("%w: missing data", ErrInvalidPayload)
	}
	ev := DonationEvent{
		EventID:       strings.TrimSpace(p.EventID),
		TransactionID: strings.TrimSpace(d.TransactionID),
		RawStatus:     strings.ToLower(strings.TrimSpace(d.Status)),
	}
	if ev.TransactionID == "" {
		return DonationEvent{}, fmt.Errorf("%w: missing data.transaction_id", ErrInvalidPayload)
	}
	if ev.RawStatus == "" {
		return DonationEvent{}, fmt.Errorf("%w: missing data.status", ErrInvalidPayload)
	}
	ev.Completed = ev.RawStatus == "completed" || ev.RawStatus == "succeeded"

	if d.CustomFields == nil || strings.TrimSpace(d.CustomFields.ChildID) == "" {
		return DonationEvent{}, fmt.Errorf("%w: missing data.custom_fields.child_id", ErrInvalidPayload)
	}
	ev.ChildID = strings.TrimSpace(d.CustomFields.ChildID)

	if d.Amount == nil {
		return DonationEvent{}, fmt.Errorf("%w: missing data.amount", ErrInvalidPayload)
	}
	amount, err := d.Amount.Value.Float64()
	if err != nil || amount <= 0 {
		return DonationEvent{}, fmt.Errorf("%w: data.amount.value must be a positive number", ErrInvalidPayload)
	}
	ev.Amount = amount
	ev.Currency = strings.ToUpper(strings.TrimSpace(d.Amount.Currency))
	if len(ev.Currency) != 3 {
		return DonationEvent{}, fmt.Errorf("%w: data.amount.currency must be a 3-letter code", ErrInvalidPayload)
	}

	freq, ok := parseFrequency(d.Frequency)
	if !ok {
		return DonationEvent{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidPayload, d.Frequency)
	}
	ev.Frequency = freq

	if d.Donor != nil {
		ev.DonorName = strings.TrimSpace(d.Donor.Name)
		ev.DonorEmail = strings.TrimSpace(d.Donor.Email)
	}
	return ev, nil
}

func parseFrequency(s string) (sponsorship.Frequency, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "one_time", "one-time", "once", "single":
		return sponsorship.FrequencyOneTime, true
	case "monthly", "month":
		return sponsorship.FrequencyMonthly, true
	case "yearly", "annual", "annually", "year":
		return sponsorship.FrequencyYearly, true
	}
	return "", false
}

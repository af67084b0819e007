package domain

import "time"

// TrackingStatus represents the current global status of a shipment.
type TrackingStatus string

const (
	// TrackingStatusPosted indicates the parcel was handed to the carrier.
	TrackingStatusPosted TrackingStatus = "POSTED"
	// TrackingStatusInTransit indicates the parcel is moving between facilities.
	TrackingStatusInTransit TrackingStatus = "IN_TRANSIT"
	// TrackingStatusOutForDelivery indicates the parcel left for the recipient.
	TrackingStatusOutForDelivery TrackingStatus = "OUT_FOR_DELIVERY"
	// TrackingStatusDelivered indicates the parcel has been delivered.
	TrackingStatusDelivered TrackingStatus = "DELIVERED"
)

// TrackingHistory represents the complete tracking information for a shipment.
type TrackingHistory struct {
	// Code is the carrier tracking code.
	Code string `json:"code"`
	// GlobalStatus is the overall status of the shipment.
	GlobalStatus TrackingStatus `json:"global_status"`
	// History contains the chronological events for the shipment.
	History []TrackingEvent `json:"history"`
}

// TrackingEvent represents a single event in the shipment's tracking history.
type TrackingEvent struct {
	// Date is the timestamp when the event occurred.
	Date time.Time `json:"date"`
	// Status is the short carrier label for the event.
	Status string `json:"status"`
	// Text is the description of the tracking event.
	Text string `json:"text"`
	// City is the location where the event occurred.
	City string `json:"city"`
}

// TrackingCode derives the Correios tracking code of an order: "BR" followed by
// the last 13 characters of the order id.
func TrackingCode(orderID string) string {
	if len(orderID) > 13 {
		orderID = orderID[len(orderID)-13:]
	}
	return "BR" + orderID
}

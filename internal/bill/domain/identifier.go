package domain

import "strings"

// IdentifierField names the one bill identifier column that matching for a
// given utility type is allowed to use. The remaining identifier columns on
// a bill are incidental metadata.
type IdentifierField string

const (
	FieldConsumerNumber        IdentifierField = "consumer_number"
	FieldWaterConnectionNumber IdentifierField = "water_connection_number"
	FieldGasConsumerID         IdentifierField = "gas_consumer_id"
	FieldWifiConsumerID        IdentifierField = "wifi_consumer_id"
	FieldDthSubscriberID       IdentifierField = "dth_subscriber_id"
)

// classifications is evaluated top to bottom against the lowercased utility
// type label. Substring matching, not equality: "Electricity (Residential)"
// still classifies as electricity.
var classifications = []struct {
	substr string
	field  IdentifierField
}{
	{"electricity", FieldConsumerNumber},
	{"water", FieldWaterConnectionNumber},
	{"gas", FieldGasConsumerID},
	{"wifi", FieldWifiConsumerID},
	{"dth", FieldDthSubscriberID},
}

// ClassifyUtilityType resolves the identifier field owned by a utility type
// label. The second return is false when the label matches no known
// category; callers must treat that as a validation failure, never as an
// unfiltered match.
func ClassifyUtilityType(label string) (IdentifierField, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return "", false
	}
	for _, c := range classifications {
		if strings.Contains(normalized, c.substr) {
			return c.field, true
		}
	}
	return "", false
}

// IdentifierValues carries the per-type identifier values submitted with a
// lookup or filter.
type IdentifierValues struct {
	ConsumerNumber        string
	WaterConnectionNumber string
	GasConsumerID         string
	WifiConsumerID        string
	DthSubscriberID       string
}

// Value returns the submitted value for a resolved identifier field.
func (v IdentifierValues) Value(field IdentifierField) string {
	switch field {
	case FieldConsumerNumber:
		return v.ConsumerNumber
	case FieldWaterConnectionNumber:
		return v.WaterConnectionNumber
	case FieldGasConsumerID:
		return v.GasConsumerID
	case FieldWifiConsumerID:
		return v.WifiConsumerID
	case FieldDthSubscriberID:
		return v.DthSubscriberID
	default:
		return ""
	}
}

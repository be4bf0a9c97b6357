package domain

import "testing"

func TestClassifyUtilityType(t *testing.T) {
	cases := []struct {
		label string
		field IdentifierField
		ok    bool
	}{
		{"electricity", FieldConsumerNumber, true},
		{"Electricity (Residential)", FieldConsumerNumber, true},
		{"water", FieldWaterConnectionNumber, true},
		{"Water Supply", FieldWaterConnectionNumber, true},
		{"gas", FieldGasConsumerID, true},
		{"piped gas", FieldGasConsumerID, true},
		{"wifi", FieldWifiConsumerID, true},
		{"WiFi Broadband", FieldWifiConsumerID, true},
		{"dth", FieldDthSubscriberID, true},
		{"DTH Service", FieldDthSubscriberID, true},
		{"telephone", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tc := range cases {
		field, ok := ClassifyUtilityType(tc.label)
		if ok != tc.ok {
			t.Fatalf("ClassifyUtilityType(%q) ok = %v, want %v", tc.label, ok, tc.ok)
		}
		if field != tc.field {
			t.Fatalf("ClassifyUtilityType(%q) = %q, want %q", tc.label, field, tc.field)
		}
	}
}

func TestClassifyUtilityTypeOrder(t *testing.T) {
	// A label matching several categories resolves to the first match in
	// classification order.
	field, ok := ClassifyUtilityType("electricity and water combo")
	if !ok || field != FieldConsumerNumber {
		t.Fatalf("expected electricity to win, got %q (ok=%v)", field, ok)
	}
}

func TestIdentifierValuesValue(t *testing.T) {
	values := IdentifierValues{
		ConsumerNumber:        "EC-1",
		WaterConnectionNumber: "WC-2",
		GasConsumerID:         "GC-3",
		WifiConsumerID:        "WF-4",
		DthSubscriberID:       "DT-5",
	}

	if got := values.Value(FieldConsumerNumber); got != "EC-1" {
		t.Fatalf("consumer_number = %q", got)
	}
	if got := values.Value(FieldWaterConnectionNumber); got != "WC-2" {
		t.Fatalf("water_connection_number = %q", got)
	}
	if got := values.Value(FieldGasConsumerID); got != "GC-3" {
		t.Fatalf("gas_consumer_id = %q", got)
	}
	if got := values.Value(FieldWifiConsumerID); got != "WF-4" {
		t.Fatalf("wifi_consumer_id = %q", got)
	}
	if got := values.Value(FieldDthSubscriberID); got != "DT-5" {
		t.Fatalf("dth_subscriber_id = %q", got)
	}
	if got := values.Value(IdentifierField("unknown")); got != "" {
		t.Fatalf("unknown field = %q, want empty", got)
	}
}

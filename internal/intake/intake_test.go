package intake

import "testing"

func TestNormalizeIssueType(t *testing.T) {
	cases := []struct {
		in   string
		want IssueType
	}{
		{"payment_dispute", IssuePaymentDispute},
		{"  Contract_Breach ", IssueContractBreach},
		{"defective_work", IssueDefectiveWork},
		{"unsolicited_advice", IssueOther},
		{"", IssueOther},
	}
	for _, tc := range cases {
		if got := NormalizeIssueType(tc.in); got != tc.want {
			t.Fatalf("NormalizeIssueType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateRequiresDescription(t *testing.T) {
	in := CaseIntake{IssueType: "payment_dispute"}
	if err := in.Validate(); err == nil {
		t.Fatal("expected error for empty description")
	}

	in.Description = "unpaid invoice for completed bathroom renovation"
	in.IssueType = "something_weird"
	in.Urgency = "ASAP"
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if in.IssueType != IssueOther {
		t.Fatalf("expected normalized issue type other, got %q", in.IssueType)
	}
	if in.Urgency != UrgencyMedium {
		t.Fatalf("expected normalized urgency medium, got %q", in.Urgency)
	}
}

func TestFormatAmount(t *testing.T) {
	amount := func(v float64) *float64 { return &v }

	cases := []struct {
		in   *float64
		want string
	}{
		{nil, AmountUndetermined},
		{amount(0), AmountUndetermined},
		{amount(950), "$950"},
		{amount(15000), "$15,000"},
		{amount(1234567), "$1,234,567"},
		{amount(15000.50), "$15,000.50"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Fatalf("FormatAmount = %q, want %q", got, tc.want)
		}
	}
}

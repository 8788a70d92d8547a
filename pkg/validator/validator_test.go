package validator

import "testing"

type supplierInput struct {
	Name  string `json:"name" validate:"required,max=150"`
	Phone string `json:"phone" validate:"required,phone"`
	GSTIN string `json:"gstin" validate:"required,gstin"`
}

func TestGSTIN(t *testing.T) {
	cases := map[string]bool{
		"29ABCDE1234F1Z5": true,
		"27AAPFU0939F1ZV": true,
		"29abcde1234f1z5": false,
		"29ABCDE1234F1Y5": false,
		"29ABCDE1234F0Z5": false,
		"":                false,
	}
	for in, want := range cases {
		if got := IsGSTIN(in); got != want {
			t.Errorf("IsGSTIN(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	SetPhoneRegion("IN")

	got, err := NormalizePhone("98765 43210")
	if err != nil {
		t.Fatalf("NormalizePhone: %v", err)
	}
	if got != "+919876543210" {
		t.Fatalf("got %q, want +919876543210", got)
	}

	if _, err := NormalizePhone("12"); err == nil {
		t.Fatal("expected an error for a short number")
	}
}

func TestValidateStruct(t *testing.T) {
	SetPhoneRegion("IN")

	ok := supplierInput{Name: "Acme", Phone: "+91 98765 43210", GSTIN: "29ABCDE1234F1Z5"}
	if errs := ValidateStruct(ok); len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs[0])
	}

	bad := supplierInput{Phone: "abc", GSTIN: "nope"}
	errs := ValidateStruct(bad)
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3", len(errs))
	}
	tags := map[string]bool{}
	for _, e := range errs {
		tags[e.Tag] = true
	}
	for _, want := range []string{"required", "phone", "gstin"} {
		if !tags[want] {
			t.Errorf("missing %q failure in %+v", want, errs)
		}
	}
}

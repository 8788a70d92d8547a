package service

import (
	"errors"
	"testing"

	"go-inventory-billing/internal/repository"
)

func validSupplier() SupplierInput {
	return SupplierInput{
		Name:    "Acme Traders",
		Phone:   "98765 43210",
		Address: "MG Road",
		Email:   "Sales@Acme.example",
		GSTIN:   "29abcde1234f1z5",
	}
}

func TestSupplierCreateNormalises(t *testing.T) {
	e := newEnv(t)
	sup, err := e.suppliers.Create(validSupplier())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sup.Phone != "+919876543210" || sup.GSTIN != "29ABCDE1234F1Z5" || sup.Email != "sales@acme.example" {
		t.Fatalf("supplier = %+v", sup)
	}

	dup := validSupplier()
	dup.Email = "other@acme.example"
	dup.GSTIN = "29ABCDE1234F1Z6"
	if _, err := e.suppliers.Create(dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate phone: err = %v, want ErrDuplicate", err)
	}
}

func TestSupplierValidation(t *testing.T) {
	e := newEnv(t)

	in := validSupplier()
	in.GSTIN = "29ABCDE1234F1Y5"
	var ve *ValidationError
	if _, err := e.suppliers.Create(in); !errors.As(err, &ve) || ve.Fields["gstin"] == "" {
		t.Fatalf("err = %v, want gstin field error", err)
	}

	in = validSupplier()
	in.Email = "not-an-email"
	if _, err := e.suppliers.Create(in); !errors.As(err, &ve) || ve.Fields["email"] == "" {
		t.Fatalf("err = %v, want email field error", err)
	}
}

func TestSupplierUpdateDeleteProfile(t *testing.T) {
	e := newEnv(t)
	sup, err := e.suppliers.Create(validSupplier())
	if err != nil {
		t.Fatal(err)
	}
	bolt := e.stock(t, "Bolt", "", 10, "1")
	if _, err := e.purchases.Create(sup.ID, PurchaseInput{Items: []LineInput{{StockID: bolt.ID, Quantity: 2, PerPrice: dec("1")}}}); err != nil {
		t.Fatal(err)
	}

	in := validSupplier()
	in.Address = "Brigade Road"
	updated, err := e.suppliers.Update(sup.ID, in)
	if err != nil || updated.Address != "Brigade Road" {
		t.Fatalf("Update = %+v, %v", updated, err)
	}

	profile, err := e.suppliers.Profile("Acme Traders", repository.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if profile.Bills.Total != 1 {
		t.Fatalf("profile bills = %d, want 1", profile.Bills.Total)
	}

	if err := e.suppliers.Delete(sup.ID); err != nil {
		t.Fatal(err)
	}
	page, _ := e.suppliers.List(repository.Page{})
	if page.Total != 0 {
		t.Fatalf("deleted supplier still listed")
	}
	if _, err := e.suppliers.Select(sup.ID); !errors.Is(err, ErrSupplierNotFound) {
		t.Fatalf("Select deleted: err = %v", err)
	}
	if _, err := e.suppliers.Profile("Nobody", repository.Page{}); !errors.Is(err, ErrSupplierNotFound) {
		t.Fatalf("Profile missing: err = %v", err)
	}
}

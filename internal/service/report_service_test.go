package service

import (
	"bytes"
	"testing"
	"time"

	"go-inventory-billing/internal/model"

	"github.com/xuri/excelize/v2"
)

func TestProductSalesSixMonths(t *testing.T) {
	e := newEnv(t)
	e.stock(t, "Bolt", "M6", 100, "1")
	e.stock(t, "Bolt", "M8", 100, "1")

	sell := func(at time.Time, sub string, qty int) {
		t.Helper()
		line := LineInput{Name: "Bolt", SubCategory: sub, Quantity: qty, PerPrice: dec("1")}
		res, err := e.sales.Create(saleInput(line))
		if err != nil {
			t.Fatal(err)
		}
		// backdate the bill; the create hook always stamps the current time
		err = e.db.Model(&model.SaleBill{}).
			Where("bill_no = ?", res.Bill.BillNo).
			UpdateColumn("time", at).Error
		if err != nil {
			t.Fatal(err)
		}
	}
	sell(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), "M6", 9) // outside the window
	sell(time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), "M6", 2)
	sell(time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), "M8", 4)
	sell(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "M6", 1)
	sell(time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), "M6", 3)

	got, err := e.reports.ProductSales("Bolt", time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	wantMonths := []string{"Feb 2024", "Mar 2024", "Apr 2024", "May 2024", "Jun 2024", "Jul 2024"}
	wantQty := []int{2, 0, 0, 5, 0, 3}
	for i := range wantMonths {
		if got.Months[i] != wantMonths[i] || got.Quantities[i] != wantQty[i] {
			t.Fatalf("got %v %v, want %v %v", got.Months, got.Quantities, wantMonths, wantQty)
		}
	}
}

func TestStatsAndHome(t *testing.T) {
	e := newEnv(t)
	e.stock(t, "Bolt", "M6", 4, "2.50")
	e.stock(t, "Nut", "", 10, "1")
	gone := e.stock(t, "Gone", "", 1, "100")
	_ = e.store.Stocks().SoftDelete(gone.ID)

	stats, err := e.reports.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalProducts != 2 || stats.LowStock != 1 || !stats.Valuation.Equal(dec("20")) {
		t.Fatalf("stats = %+v", stats)
	}

	home, err := e.reports.Home("")
	if err != nil {
		t.Fatal(err)
	}
	if len(home.Labels) != 2 || home.Labels[0] != "Nut" || home.Labels[1] != "Bolt (M6)" {
		t.Fatalf("labels = %v", home.Labels)
	}
	if len(home.ProductNames) != 2 {
		t.Fatalf("product names = %v", home.ProductNames)
	}

	one, err := e.reports.Home("Bolt")
	if err != nil {
		t.Fatal(err)
	}
	if len(one.Labels) != 1 || one.Quantities[0] != 4 {
		t.Fatalf("filtered home = %+v", one)
	}
}

func TestExportStock(t *testing.T) {
	e := newEnv(t)
	e.stock(t, "Bolt", "M6", 4, "2.50")

	var buf bytes.Buffer
	if err := e.reports.ExportStock(&buf); err != nil {
		t.Fatalf("ExportStock: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Stock")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0][1] != "Name" || rows[1][1] != "Bolt" {
		t.Fatalf("rows = %v", rows)
	}
}

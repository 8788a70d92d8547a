package service

import (
	"io"
	"time"

	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	recentBills  = 3
	salesHistory = 6 // months
)

// HomeView feeds the dashboard charts.
type HomeView struct {
	SelectedProduct string               `json:"selected_product"`
	Labels          []string             `json:"labels"`
	Quantities      []int                `json:"data"`
	Costs           []decimal.Decimal    `json:"cost_data"`
	SalesValues     []decimal.Decimal    `json:"sales_data"`
	RecentSales     []model.SaleBill     `json:"sales"`
	RecentPurchases []model.PurchaseBill `json:"purchases"`
	ProductNames    []string             `json:"product_items"`
}

type Stats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStock       int             `json:"low_stock"`
	Valuation      decimal.Decimal `json:"valuation"`
	TotalSuppliers int64           `json:"total_suppliers"`
}

// MonthlySales is quantity sold per calendar month, oldest first.
type MonthlySales struct {
	Product    string   `json:"product_name"`
	Months     []string `json:"months"`
	Quantities []int    `json:"monthly_sales_data"`
}

type ReportService interface {
	Home(product string) (*HomeView, error)
	Stats() (*Stats, error)
	ProductSales(name string, now time.Time) (*MonthlySales, error)
	ExportStock(w io.Writer) error
	ExportSales(w io.Writer) error
	ExportPurchases(w io.Writer) error
}

type reportService struct {
	store     repository.Store
	threshold int
}

func NewReportService(store repository.Store, threshold int) ReportService {
	return &reportService{store: store, threshold: threshold}
}

func (s *reportService) Home(product string) (*HomeView, error) {
	stocks, _, err := s.store.Stocks().List(repository.StockFilter{ExactName: product})
	if err != nil {
		return nil, err
	}

	view := &HomeView{
		SelectedProduct: product,
		Labels:          make([]string, 0, len(stocks)),
		Quantities:      make([]int, 0, len(stocks)),
		Costs:           make([]decimal.Decimal, 0, len(stocks)),
		SalesValues:     make([]decimal.Decimal, 0, len(stocks)),
	}
	for i := range stocks {
		st := &stocks[i]
		view.Labels = append(view.Labels, st.FullName())
		view.Quantities = append(view.Quantities, st.Quantity)
		view.Costs = append(view.Costs, st.Cost)
		view.SalesValues = append(view.SalesValues, st.TotalSalesValue)
	}

	latest := repository.Page{Number: 1, Limit: recentBills}
	if view.RecentSales, _, err = s.store.Sales().List(latest); err != nil {
		return nil, err
	}
	if view.RecentPurchases, _, err = s.store.Purchases().List(latest); err != nil {
		return nil, err
	}
	if view.ProductNames, err = s.store.Stocks().DistinctNames(); err != nil {
		return nil, err
	}
	if view.ProductNames == nil {
		view.ProductNames = []string{}
	}
	return view, nil
}

func (s *reportService) Stats() (*Stats, error) {
	stocks, total, err := s.store.Stocks().List(repository.StockFilter{})
	if err != nil {
		return nil, err
	}
	_, suppliers, err := s.store.Suppliers().List(false, repository.Page{})
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalProducts: total, Valuation: decimal.Zero, TotalSuppliers: suppliers}
	for i := range stocks {
		st := &stocks[i]
		if st.Quantity < st.Threshold(s.threshold) {
			stats.LowStock++
		}
		stats.Valuation = stats.Valuation.Add(model.LineTotal(st.Quantity, st.Cost))
	}
	return stats, nil
}

// ProductSales buckets every sale of stocks called name into the six calendar
// months ending with now's month.
func (s *reportService) ProductSales(name string, now time.Time) (*MonthlySales, error) {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	first := current.AddDate(0, -(salesHistory - 1), 0)

	lines, err := s.store.Sales().LinesForProduct(name, first)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]int, salesHistory)
	for _, l := range lines {
		byMonth[l.Time.In(now.Location()).Format("2006-01")] += l.Quantity
	}

	out := &MonthlySales{
		Product:    name,
		Months:     make([]string, 0, salesHistory),
		Quantities: make([]int, 0, salesHistory),
	}
	for i := 0; i < salesHistory; i++ {
		month := first.AddDate(0, i, 0)
		out.Months = append(out.Months, month.Format("Jan 2006"))
		out.Quantities = append(out.Quantities, byMonth[month.Format("2006-01")])
	}
	return out, nil
}

func (s *reportService) ExportStock(w io.Writer) error {
	stocks, _, err := s.store.Stocks().List(repository.StockFilter{})
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(stocks))
	for _, st := range stocks {
		rows = append(rows, []interface{}{
			st.ID, st.Name, st.SubCategory, st.Quantity,
			st.Cost.InexactFloat64(), st.TotalSalesValue.InexactFloat64(), st.Threshold(s.threshold),
		})
	}
	return writeSheet(w, "Stock",
		[]string{"ID", "Name", "Sub Category", "Quantity", "Cost", "Sales Value", "Reorder Point"}, rows)
}

func (s *reportService) ExportSales(w io.Writer) error {
	bills, _, err := s.store.Sales().List(repository.Page{})
	if err != nil {
		return err
	}

	var rows [][]interface{}
	for _, b := range bills {
		for _, item := range b.Items {
			rows = append(rows, []interface{}{
				b.BillNo, b.Time.Format(time.RFC3339), b.Name, b.Phone, stockLabel(item.Stock),
				item.Quantity, item.PerPrice.InexactFloat64(), item.TotalPrice.InexactFloat64(),
			})
		}
	}
	return writeSheet(w, "Sales",
		[]string{"Bill No", "Time", "Customer", "Phone", "Product", "Quantity", "Per Price", "Total"}, rows)
}

func (s *reportService) ExportPurchases(w io.Writer) error {
	bills, _, err := s.store.Purchases().List(repository.Page{})
	if err != nil {
		return err
	}

	var rows [][]interface{}
	for _, b := range bills {
		supplier := ""
		if b.Supplier != nil {
			supplier = b.Supplier.Name
		}
		for _, item := range b.Items {
			rows = append(rows, []interface{}{
				b.BillNo, b.Time.Format(time.RFC3339), supplier, b.AutoGenerated, stockLabel(item.Stock),
				item.Quantity, item.PerPrice.InexactFloat64(), item.TotalPrice.InexactFloat64(),
			})
		}
	}
	return writeSheet(w, "Purchases",
		[]string{"Bill No", "Time", "Supplier", "Auto", "Product", "Quantity", "Per Price", "Total"}, rows)
}

func stockLabel(st *model.Stock) string {
	if st == nil {
		return ""
	}
	return st.FullName()
}

// writeSheet renders one sheet with a heading row and streams the workbook to w.
func writeSheet(w io.Writer, sheet string, headings []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for col, h := range headings {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/ingestion"
	"github.com/verifyap/threeway/internal/money"
)

var header = []string{
	ingestion.ColOrderNumber, ingestion.ColVendorName, ingestion.ColVendorID,
	ingestion.ColOrderDate, ingestion.ColExpectedDelivery, ingestion.ColStatus,
	ingestion.ColItemID, ingestion.ColDescription, ingestion.ColQuantityOrdered,
	ingestion.ColUnitPrice, ingestion.ColLineTotal,
}

type vendor struct {
	name string
	id   string
}

type catalogItem struct {
	id    string
	desc  string
	price float64
}

func main() {
	rng := rand.New(rand.NewSource(42))
	baseDir := findTestdataDir()

	// Order dates: 2024-01-08 to 2024-01-21.
	startDate := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)
	dayRange := int(endDate.Sub(startDate).Hours() / 24)

	vendors := []vendor{
		{"McKesson Medical Supply", "V-1001"},
		{"Cardinal Health", "V-1002"},
		{"Henry Schein Inc.", "V-1003"},
		{"Medline Industries", "V-1004"},
		{"Owens & Minor", "V-1005"},
	}
	catalog := []catalogItem{
		{"GLV-001", "Nitrile Exam Gloves Medium", 5.00},
		{"GLV-002", "Nitrile Exam Gloves Large", 5.25},
		{"GZE-002", "Sterile Gauze Pads 4x4", 1.00},
		{"SYR-010", "Syringes 10ml Luer Lock", 0.35},
		{"ALC-020", "Alcohol Prep Pads", 0.02},
		{"BND-030", "Adhesive Bandages Assorted", 3.25},
		{"MSK-040", "Surgical Masks Level 3", 12.50},
		{"GWN-050", "Isolation Gowns Yellow", 18.00},
		{"TPE-060", "Medical Tape 1 inch", 1.10},
		{"TNG-070", "Tongue Depressors Sterile", 0.05},
		{"THR-080", "Digital Thermometer Covers", 0.04},
	}
	statuses := []string{"Open", "Open", "Open", "Partially Received"}

	var rows []domain.FeedRow
	for i := 1; i <= 60; i++ {
		v := vendors[rng.Intn(len(vendors))]
		ordered := startDate.AddDate(0, 0, rng.Intn(dayRange))
		expected := ordered.AddDate(0, 0, 5+rng.Intn(10))
		status := statuses[rng.Intn(len(statuses))]
		number := fmt.Sprintf("PO%05d", 20000+i)

		lineCount := 1 + rng.Intn(4)
		for _, idx := range rng.Perm(len(catalog))[:lineCount] {
			item := catalog[idx]
			qty := float64(5 * (1 + rng.Intn(40)))
			rows = append(rows, domain.FeedRow{
				OrderNumber:      number,
				VendorName:       v.name,
				VendorID:         v.id,
				OrderDate:        ordered.Format("2006-01-02"),
				ExpectedDelivery: expected.Format("2006-01-02"),
				Status:           status,
				ItemID:           item.id,
				Description:      item.desc,
				QuantityOrdered:  qty,
				UnitPrice:        item.price,
				LineTotal:        money.Extend(qty, item.price),
			})
		}
	}

	generateCSV(rows, baseDir)
	generateXLSX(rows, baseDir)
	generateDocuments(rng, rows, baseDir)

	fmt.Println("Test data generation complete.")
}

func record(r domain.FeedRow) []string {
	return []string{
		r.OrderNumber, r.VendorName, r.VendorID, r.OrderDate, r.ExpectedDelivery, r.Status,
		r.ItemID, r.Description,
		fmt.Sprintf("%g", r.QuantityOrdered),
		fmt.Sprintf("%.2f", r.UnitPrice),
		fmt.Sprintf("%.2f", r.LineTotal),
	}
}

func generateCSV(rows []domain.FeedRow, baseDir string) {
	filePath := filepath.Join(baseDir, "generated_pos.csv")
	f, err := os.Create(filePath)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write(header)
	for _, r := range rows {
		w.Write(record(r))
	}

	fmt.Printf("Generated %d feed rows -> generated_pos.csv\n", len(rows))
}

func generateXLSX(rows []domain.FeedRow, baseDir string) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Open POs"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		panic(err)
	}

	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		panic(err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			panic(err)
		}
		values := []any{
			r.OrderNumber, r.VendorName, r.VendorID, r.OrderDate, r.ExpectedDelivery, r.Status,
			r.ItemID, r.Description, r.QuantityOrdered, r.UnitPrice, r.LineTotal,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			panic(err)
		}
	}

	if err := f.SaveAs(filepath.Join(baseDir, "generated_pos.xlsx")); err != nil {
		panic(err)
	}
	fmt.Printf("Generated %d feed rows -> generated_pos.xlsx (sheet %q)\n", len(rows), sheet)
}

// generateDocuments writes a packing slip and an invoice for the first
// generated order, each with one deliberate problem.
func generateDocuments(rng *rand.Rand, rows []domain.FeedRow, baseDir string) {
	number := rows[0].OrderNumber
	var lines []domain.FeedRow
	for _, r := range rows {
		if r.OrderNumber == number {
			lines = append(lines, r)
		}
	}

	receipt := domain.Receipt{PONumber: number[2:], VendorName: lines[0].VendorName}
	invoice := domain.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%06d", rng.Intn(1000000)),
		PONumber:      number,
		VendorName:    lines[0].VendorName,
		InvoiceDate:   "2024-01-25",
	}

	var total float64
	for i, l := range lines {
		received := l.QuantityOrdered
		item := domain.ReceivedItem{Description: l.Description, QuantityReceived: received}
		if i == 0 {
			// Short shipment with a note on the slip.
			item.QuantityReceived = received - 5
			item.HasHandwrittenNotes = true
			item.HandwrittenNotes = "1 case damaged in transit"
		}
		receipt.Items = append(receipt.Items, item)

		price := l.UnitPrice
		if i == len(lines)-1 {
			// Billed 10% over contract price.
			price = money.Round2(price * 1.10)
		}
		lineTotal := money.Extend(l.QuantityOrdered, price)
		invoice.Lines = append(invoice.Lines, domain.InvoiceLine{
			Description: l.Description,
			Quantity:    l.QuantityOrdered,
			UnitPrice:   price,
			LineTotal:   lineTotal,
		})
		total = money.Sum(total, lineTotal)
	}
	invoice.TotalAmount = total

	writeJSONFile(filepath.Join(baseDir, "sample_receipt.json"), receipt)
	writeJSONFile(filepath.Join(baseDir, "sample_invoice_request.json"), map[string]any{
		"invoice": invoice,
		"receipt": receipt,
	})
	fmt.Printf("Generated sample documents for %s -> sample_receipt.json, sample_invoice_request.json\n", number)
}

func writeJSONFile(path string, v any) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		panic(err)
	}
}

func findTestdataDir() string {
	// Look for the testdata directory relative to common locations.
	candidates := []string{
		"testdata",
		"./testdata",
		"../testdata",
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	// Fallback.
	return "testdata"
}

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SibGlass/internal/model"
)

// buildTestOrder creates a realistic glass order for testing.
func buildTestOrder() model.Order {
	return model.NewOrder("ООО Окна Сибири", "Новосибирск, ул. Ленина 1", []model.OrderItem{
		{Index: 1, Formula: "4SGTemp Пл4-16TPSAr-4Пл4", Width: 1200, Height: 800, Count: 2},
		{Index: 2, Formula: "4Пл4-10TPS-4Пл4-10TPS-4Пл4", Width: 1450, Height: 910, Count: 1},
		{Index: 3, Formula: "СПД 32мм", Width: 600, Height: 400, Count: 3},
	})
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.pdf")

	err := ExportPDF(path, buildTestOrder(), PDFOptions{})
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.NewOrder("A", "B", nil), PDFOptions{})
	if err == nil {
		t.Fatal("expected error for empty order, got nil")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should be written for an empty order")
	}
}

func TestExportPDF_ManyItemsSpansPages(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "single.pdf")
	many := filepath.Join(dir, "many.pdf")

	items := make([]model.OrderItem, 120)
	for i := range items {
		items[i] = model.OrderItem{
			Index:   i + 1,
			Formula: fmt.Sprintf("4-%d-4", 10+i%10),
			Width:   500 + i,
			Height:  400 + i,
			Count:   1 + i%3,
		}
	}

	if err := ExportPDF(single, model.NewOrder("A", "B", items[:1]), PDFOptions{}); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	if err := ExportPDF(many, model.NewOrder("A", "B", items), PDFOptions{}); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	a, _ := os.Stat(single)
	b, _ := os.Stat(many)
	if b.Size() <= a.Size() {
		t.Errorf("multi-page PDF (%d bytes) should be larger than single row PDF (%d bytes)", b.Size(), a.Size())
	}
}

func TestExportPDF_MissingFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.pdf")
	opts := PDFOptions{FontPath: filepath.Join(t.TempDir(), "missing.ttf")}

	if err := ExportPDF(path, buildTestOrder(), opts); err == nil {
		t.Fatal("expected error for missing font file, got nil")
	}
}
